package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-turrets/internal/games/turrets"
	"github.com/vovakirdan/tui-turrets/internal/platform/tui"
	"github.com/vovakirdan/tui-turrets/internal/registry"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start a hot-seat game of the given variant (default: turrets).

Controls:
  Mouse click        - Click a cell
  Arrows/hjkl        - Move the cursor
  Space/Enter        - Click the cell under the cursor
  Esc/X              - Drop an armed preview
  R                  - New game
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Examples:
  turrets play
  turrets play turrets_strict
  turrets play --config ./my-turrets.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with recorded games (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := turrets.IDStandard
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'turrets list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	gameCfg, err := loadGameConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.CreateConfigured(gameID, gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	player := flagPlayer
	if player == "" {
		player = gameCfg.Player
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	logger.Info("game started", "variant", gameID)
	if _, err := tui.Run(game, store, logger, runtimeConfig(player)); err != nil {
		logger.Error("program failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
