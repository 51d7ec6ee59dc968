package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-turrets/internal/core"
	"github.com/vovakirdan/tui-turrets/internal/games/turrets/engine"
)

const (
	appDir     = "turrets"
	configFile = "turrets.yaml"
)

// Sources reported by LoadTurretsFrom when no file was found.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadTurrets loads the game configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/turrets/turrets.yaml ->
// ./configs/turrets.yaml -> embedded default.
func LoadTurrets(customPath string) (TurretsConfig, error) {
	cfg, _, err := LoadTurretsFrom(customPath)
	return cfg, err
}

// LoadTurretsFrom is LoadTurrets that also reports which file was used.
// Keys missing from a file keep their default values.
func LoadTurretsFrom(customPath string) (TurretsConfig, string, error) {
	// A custom path must exist and parse
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	candidates := make([]string, 0, 2)
	if p, err := xdg.SearchConfigFile(filepath.Join(appDir, configFile)); err == nil {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, filepath.Join("configs", configFile))

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := readFile(path)
		if err != nil {
			return cfg, path, err
		}
		return cfg, path, nil
	}

	cfg := DefaultTurretsConfig()
	if err := yaml.Unmarshal(defaultTurretsYAML, &cfg); err != nil {
		return DefaultTurretsConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

func readFile(path string) (TurretsConfig, error) {
	cfg := DefaultTurretsConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks sizes, color names and the miss policy.
func (c TurretsConfig) Validate() error {
	if c.Board.CellWidth < 1 || c.Board.CellHeight < 1 {
		return fmt.Errorf("%w: cell size %dx%d must be at least 1x1",
			ErrInvalidConfig, c.Board.CellWidth, c.Board.CellHeight)
	}
	if c.Board.ColumnGap < 0 || c.Board.RowGap < 0 {
		return fmt.Errorf("%w: gaps must not be negative", ErrInvalidConfig)
	}

	colors := []struct {
		key, name string
	}{
		{"empty", c.Theme.Empty},
		{"white", c.Theme.White},
		{"black", c.Theme.Black},
		{"preview", c.Theme.Preview},
		{"target", c.Theme.Target},
		{"cursor", c.Theme.Cursor},
	}
	for _, col := range colors {
		if _, err := core.ParseColor(col.name); err != nil {
			return fmt.Errorf("%w: theme.%s: %v", ErrInvalidConfig, col.key, err)
		}
	}

	if _, err := engine.ParseMissPolicy(c.Rules.MissPolicy); err != nil {
		return fmt.Errorf("%w: rules.miss_policy: %v", ErrInvalidConfig, err)
	}
	return nil
}

// MissPolicy returns the parsed miss policy, MissIgnore when invalid.
func (c TurretsConfig) MissPolicy() engine.MissPolicy {
	p, err := engine.ParseMissPolicy(c.Rules.MissPolicy)
	if err != nil {
		return engine.MissIgnore
	}
	return p
}

// Save writes cfg to $XDG_CONFIG_HOME/turrets/turrets.yaml and returns the path.
func Save(cfg TurretsConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	path, err := xdg.ConfigFile(filepath.Join(appDir, configFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return path, nil
}

// DataPath returns the path of name under $XDG_DATA_HOME/turrets, creating
// the parent directories. The database, SSH host key and screenshots live
// there.
func DataPath(name string) (string, error) {
	path, err := xdg.DataFile(filepath.Join(appDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve data path %s: %w", name, err)
	}
	return path, nil
}
