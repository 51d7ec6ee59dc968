// Package config provides YAML-based configuration loading for the turrets
// board: layout, colors and rule options.
package config

import "errors"

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// TurretsConfig contains all configuration for the game and its shell.
type TurretsConfig struct {
	Board  BoardLayout `yaml:"board"`
	Theme  Theme       `yaml:"theme"`
	Rules  Rules       `yaml:"rules"`
	Player string      `yaml:"player"` // Name stored with finished games
}

// BoardLayout defines how board cells are laid out on screen, in characters.
type BoardLayout struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	ColumnGap  int `yaml:"column_gap"`
	RowGap     int `yaml:"row_gap"`
}

// Theme maps cell states to color names understood by core.ParseColor.
type Theme struct {
	Empty   string `yaml:"empty"`
	White   string `yaml:"white"`
	Black   string `yaml:"black"`
	Preview string `yaml:"preview"`
	Target  string `yaml:"target"`
	Cursor  string `yaml:"cursor"`
}

// Rules holds rule options.
type Rules struct {
	// MissPolicy is "ignore" (default) or "cancel": what a click outside the
	// armed preview does.
	MissPolicy string `yaml:"miss_policy"`
}
