package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var (
	flagDual  bool
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play <catalog>",
	Short: "Play a level catalog",
	Long: `Start playing the specified catalog.

Controls:
  W/A/S/D    - Move player 1
  Arrows     - Move player 2 (player 1 in single mode)
  R          - Reset the current level
  E          - Emergency reset: send players back to their starts
  M          - Switch between one and two players
  P          - Pause
  N          - New session from level 1
  Esc/B, Q   - Quit

Difficulty options:
  easy   - Slower movement, forgiving walls, longer pause between levels
  normal - Default settings
  hard   - Faster movement, shorter pause between levels

Examples:
  maze play classic
  maze play classic --dual
  maze play classic --level 3
  maze play intro --difficulty hard
  maze play classic --config ./my-maze.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDual, "dual", false, "Start with two players")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-indexed)")
}

func runPlay(cmd *cobra.Command, args []string) {
	catalogID := args[0]

	if !registry.Exists(catalogID) {
		fmt.Fprintf(os.Stderr, "Error: unknown catalog %q\n", catalogID)
		fmt.Fprintln(os.Stderr, "Run 'maze list' to see available catalogs.")
		os.Exit(1)
	}

	game, err := registry.Create(catalogID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagLevel < 1 || flagLevel > game.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: --level must be between 1 and %d\n", game.LevelCount())
		os.Exit(1)
	}

	cfg := runtimeConfig()
	cfg.Dual = flagDual
	cfg.StartLevel = flagLevel - 1

	store := openStore()
	runErr := tui.Run(game, cfg, sessionOptions(store))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game failed", "catalog", catalogID, "err", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
