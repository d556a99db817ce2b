// maze is a terminal maze game for one or two players.
//
// Usage:
//
//	maze                      - Start the catalog picker
//	maze list                 - List level catalogs
//	maze play <catalog>       - Play a catalog directly
//	maze levels show <id>     - Print a catalog's levels
//	maze levels export <id>   - Write a catalog as YAML
//	maze validate [catalog]   - Check level data against the entity size
//	maze scores <catalog>     - Show best clear times
//	maze serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.maze/clears.db)
//	--config <path>       - Custom maze config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--levels <dir>        - Extra catalog directory (default: ~/.maze/levels)
//	--log-file <path>     - Log destination (default: ~/.maze/maze.log)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagLogFile    string
	flagLogLevel   string

	logger  = log.New(os.Stderr)
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "maze",
	Short: "Maze - Steer through wall mazes in your terminal",
	Long: `Maze is a terminal game where one or two players steer a square
through a walled arena to reach the goal. Clearing a level loads the
next one after a short pause.

Running maze without a command opens the catalog picker.

Examples:
  maze
  maze list
  maze play classic --dual
  maze validate
  maze serve --ssh :2222`,
	PersistentPreRunE: setup,
	Run:               runSession,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.maze/clears.db", "Path to clear-times database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom maze config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of extra level catalogs (default ~/.maze/levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.maze/maze.log", "Log file path, '-' for stderr")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup runs before every command: logging, game settings and user catalogs.
func setup(cmd *cobra.Command, args []string) error {
	if err := setupLogger(); err != nil {
		return err
	}

	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
	}
	maze.SetConfigPath(flagConfig)
	maze.SetDifficultyPreset(flagDifficulty)

	dir := flagLevels
	if dir == "" {
		dir = levels.DefaultDir()
		if _, err := os.Stat(dir); err != nil {
			// No user catalogs
			return nil
		}
	}
	if dir == "" {
		return nil
	}

	cats, err := levels.RegisterDir(expandHome(dir))
	for _, c := range cats {
		logger.Debug("registered catalog", "id", c.ID, "levels", len(c.Levels), "file", c.FilePath)
	}
	if err != nil {
		if flagLevels != "" && len(cats) == 0 {
			return fmt.Errorf("loading catalogs from %s: %w", dir, err)
		}
		logger.Warn("some catalogs were skipped", "dir", dir, "err", err)
	}
	return nil
}

// setupLogger points the logger at the log file; the terminal belongs to the UI.
func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	if flagLogFile == "-" {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		})
		return nil
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "maze",
	})
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
	}
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// holdDurations reads the held-key windows from the maze config.
func holdDurations() (hold, first time.Duration) {
	_, cfg, err := maze.LoadSettings(flagFPS)
	if err != nil {
		logger.Warn("using default maze config", "err", err)
	}
	return time.Duration(cfg.Input.HoldMs) * time.Millisecond,
		time.Duration(cfg.Input.FirstHoldMs) * time.Millisecond
}

// openStore opens the clear-times database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open clears database: %v\n", err)
		logger.Warn("could not open clears database", "err", err)
		return nil
	}
	return store
}

func sessionOptions(store *storage.Store) tui.Options {
	hold, first := holdDurations()
	return tui.Options{
		Store:     store,
		Logger:    logger,
		Hold:      hold,
		FirstHold: first,
	}
}

func runSession(cmd *cobra.Command, args []string) {
	store := openStore()
	err := tui.RunSession(runtimeConfig(), sessionOptions(store))
	if store != nil {
		store.Close()
	}
	if err != nil {
		logger.Error("session failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
