package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-turrets/internal/platform/tui"
	"github.com/vovakirdan/tui-turrets/internal/registry"
	"github.com/vovakirdan/tui-turrets/internal/storage"
)

var (
	flagLimit int
	flagClear bool
	flagStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recorded games",
	Long: `Display the most recent recorded games, newest first, with a summary
of wins per side. Without a variant every variant is listed.

Examples:
  turrets history
  turrets history turrets_strict --limit 50
  turrets history --stats
  turrets history turrets --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-variant statistics only")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded games")
}

func runHistory(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'turrets list' to see available variants.")
			os.Exit(1)
		}
	}

	path, err := dbPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearHistory(store, variant)
	case flagStats:
		err = printStats(store)
	default:
		err = printHistory(store, variant)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearHistory(store *storage.Store, variant string) error {
	n, err := store.DeleteGames(variant)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d game(s).\n", n)
	return nil
}

func printHistory(store *storage.Store, variant string) error {
	games, err := store.RecentGames(variant, flagLimit)
	if err != nil {
		return err
	}

	title := "all variants"
	if variant != "" {
		title = variant
	}
	fmt.Printf("Game history - %s\n\n", title)

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'turrets play' and finish a game to record it.")
		return nil
	}

	fmt.Printf("  %-16s  %-14s  %-10s  %-7s  %5s  %4s  %7s  %s\n",
		"Date", "Variant", "Result", "Score", "Moves", "Caps", "Time", "Player")
	fmt.Printf("  %-16s  %-14s  %-10s  %-7s  %5s  %4s  %7s  %s\n",
		"----", "-------", "------", "-----", "-----", "----", "----", "------")
	for _, g := range games {
		fmt.Printf("  %-16s  %-14s  %-10s  %-7s  %5d  %4d  %7s  %s\n",
			g.CreatedAt.Local().Format("2006-01-02 15:04"),
			g.Variant,
			tui.ResultText(g),
			fmt.Sprintf("%d-%d", g.WhiteScore, g.BlackScore),
			g.Moves,
			g.Captures,
			tui.FormatDuration(g.Duration),
			g.Player,
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	s := tui.Summary(stats, variant)
	fmt.Println()
	fmt.Printf("Total: %d games, White %d, Black %d, draws %d\n", s.Games, s.WhiteWins, s.BlackWins, s.Draws)
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %5s  %9s  %5s  %5s  %5s  %9s  %11s  %s\n",
		"Variant", "Games", "Completed", "White", "Black", "Draws", "Avg moves", "Max capture", "Last played")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-14s  %5d  %9d  %5d  %5d  %5d  %9.1f  %11d  %s\n",
			id, s.Games, s.Completed, s.WhiteWins, s.BlackWins, s.Draws,
			s.AvgMoves, s.MaxCapture, s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
