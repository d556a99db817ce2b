package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var flagInteractive bool

var scoresCmd = &cobra.Command{
	Use:   "scores [catalog]",
	Short: "Show best clear times",
	Long: `Display the best clear time of every level in a catalog.

Examples:
  maze scores classic
  maze scores -i`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all catalogs in a table")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagInteractive || len(args) == 0 {
		runScoreboard()
		return
	}

	catalogID := args[0]

	if !registry.Exists(catalogID) {
		fmt.Fprintf(os.Stderr, "Error: unknown catalog %q\n", catalogID)
		fmt.Fprintln(os.Stderr, "Run 'maze list' to see available catalogs.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening clears database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	cat := mustCatalog(catalogID)

	fmt.Printf("Best Times - %s\n", cat.Title())
	fmt.Println()

	fmt.Printf("  %-3s  %-16s  %9s  %-4s  %-10s  %s\n", "#", "Level", "Time", "Mode", "Player", "Date")
	fmt.Printf("  %-3s  %-16s  %9s  %-4s  %-10s  %s\n", "-", "-----", "----", "----", "------", "----")

	for i, l := range cat.Levels {
		best, err := store.BestClears(catalogID, l.ID(), 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving clears: %v\n", err)
			return
		}
		if len(best) == 0 {
			fmt.Printf("  %-3d  %-16s  %9s\n", i+1, l.ID(), "-")
			continue
		}

		c := best[0]
		mode := "1P"
		if c.Dual {
			mode = "2P"
		}
		player := c.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-3d  %-16s  %9s  %-4s  %-10s  %s\n",
			i+1, l.ID(), tui.FormatDuration(c.DurationMs), mode, player, c.CreatedAt.Format("2006-01-02"))
	}

	stats, err := store.GetCatalogStats(catalogID)
	if err == nil && stats.ClearsCount > 0 {
		fmt.Println()
		fmt.Printf("%d clears, %d of %d levels, %d in two-player mode\n",
			stats.ClearsCount, stats.LevelsSeen, len(cat.Levels), stats.DualClears)
	}
}

func runScoreboard() {
	store := openStore()
	cfg := runtimeConfig()
	err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
