// turrets is a two-player board game for the terminal: place pieces on a
// 16x16 board, build turrets and fire them to capture enemy regions.
//
// Usage:
//
//	turrets list                - List rule variants
//	turrets play [variant]      - Play a variant (default: turrets)
//	turrets menu                - Pick variants interactively
//	turrets history [variant]   - Show recorded games
//	turrets serve               - Serve a board to every SSH session
//	turrets config              - Show or write the configuration
//
// Global flags:
//
//	--db <path>        - History database (default: $XDG_DATA_HOME/turrets/history.db)
//	--log-file <path>  - Write logs to a file (TUI commands only)
//	--debug            - Log every move
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-turrets/internal/config"
	"github.com/vovakirdan/tui-turrets/internal/core"
	_ "github.com/vovakirdan/tui-turrets/internal/games/turrets" // Register variants
	"github.com/vovakirdan/tui-turrets/internal/platform/tui"
	"github.com/vovakirdan/tui-turrets/internal/storage"
)

var (
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
	flagConfig  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turrets",
	Short: "Turrets - a 16x16 turret battle for two players in your terminal",
	Long: `Turrets is a hot-seat board game for two players sharing one terminal.

Players alternately place pieces. A piece with three or more friendly
neighbours is a turret: click it to aim along the first open line, then
click a highlighted cell to convert it or the red target to capture the
whole enemy region behind it.

Available commands:
  list     - Show rule variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  history  - Recorded games and statistics
  serve    - Start SSH server for remote play
  config   - Show or write the configuration

Examples:
  turrets play
  turrets play turrets_strict
  turrets menu --log-file turrets.log --debug
  turrets serve --ssh :2222
  turrets history --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every move")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a turrets.yaml configuration")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// dbPath resolves the --db flag, defaulting to the data directory.
func dbPath() (string, error) {
	if flagDBPath != "" {
		return flagDBPath, nil
	}
	return config.DataPath("history.db")
}

// openStore opens the history database. Failures are logged and the
// returned store is nil: games still run without history.
func openStore(logger *log.Logger) *storage.Store {
	path, err := dbPath()
	if err != nil {
		logger.Warn("could not resolve history database", "error", err)
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open history database", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	logger.Debug("history database opened", "path", path)
	return store
}

// fileLogger builds the logger for TUI commands. The terminal belongs to the
// program, so logs only go to --log-file.
func fileLogger() (*log.Logger, func() error, error) {
	w, closeFn, err := tui.OpenLogFile(flagLogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return tui.NewLogger(w, "turrets", flagDebug), closeFn, nil
}

// loadGameConfig loads the configuration used for new boards.
func loadGameConfig(logger *log.Logger) (config.TurretsConfig, error) {
	cfg, source, err := config.LoadTurretsFrom(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("configuration loaded", "source", source)
	return cfg, nil
}

// runtimeConfig returns the terminal size, falling back to 80x24.
func runtimeConfig(player string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Player = player
	if cfg.Player == "" {
		cfg.Player = os.Getenv("USER")
	}
	return cfg
}
