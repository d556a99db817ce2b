package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/levels/formats"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog]",
	Short: "Check level data",
	Long: `Checks that every start position and goal fits inside its arena and
clear of walls at the configured entity size. Without an argument every
registered catalog is checked.

Examples:
  maze validate
  maze validate classic
  maze validate --config ./big-players.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	settings, _, err := maze.LoadSettings(flagFPS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	var catalogs []*formats.Catalog
	if len(args) == 1 {
		catalogs = []*formats.Catalog{mustCatalog(args[0])}
	} else {
		catalogs = levels.All()
	}

	failed := 0
	for _, cat := range catalogs {
		err := maze.ValidateAll(cat.Levels, settings.EntitySize)
		if err == nil {
			fmt.Printf("ok    %s (%d levels)\n", cat.ID, len(cat.Levels))
			continue
		}

		failed++
		fmt.Printf("FAIL  %s\n", cat.ID)
		for _, e := range flatten(err) {
			fmt.Printf("      %v\n", e)
		}
	}

	if failed > 0 {
		logger.Warn("invalid catalogs", "count", failed)
		closeLog()
		os.Exit(1)
	}
}

// flatten unpacks joined errors into one entry per problem.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
