package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze/levels"
	"github.com/vovakirdan/tui-maze/internal/maze/levels/formats"
)

var flagOutput string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Inspect level catalogs",
	Long: `Inspect registered level catalogs.

User catalogs are YAML files under ~/.maze/levels (or --levels).
Export a built-in catalog to start a new one from it.

Examples:
  maze levels show classic
  maze levels export classic -o ~/.maze/levels/mine.yaml`,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <catalog>",
	Short: "Print the levels of a catalog",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <catalog>",
	Short: "Write a catalog as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsExport,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default stdout)")

	levelsCmd.AddCommand(levelsShowCmd)
	levelsCmd.AddCommand(levelsExportCmd)
}

func mustCatalog(id string) *formats.Catalog {
	cat, ok := levels.Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown catalog %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'maze list' to see available catalogs.")
		os.Exit(1)
	}
	return cat
}

func runLevelsShow(cmd *cobra.Command, args []string) {
	cat := mustCatalog(args[0])

	source := "built-in"
	if cat.FilePath != "" {
		source = cat.FilePath
	}
	fmt.Printf("%s (%s) - %s\n", cat.Title(), cat.ID, source)
	fmt.Println()

	fmt.Printf("  %-3s  %-16s  %-20s  %9s  %5s  %-s\n", "#", "ID", "Name", "Arena", "Walls", "Goal")
	fmt.Printf("  %-3s  %-16s  %-20s  %9s  %5s  %-s\n", "-", "--", "----", "-----", "-----", "----")
	for i, l := range cat.Levels {
		arena := fmt.Sprintf("%dx%d", l.Bounds().W, l.Bounds().H)
		fmt.Printf("  %-3d  %-16s  %-20s  %9s  %5d  %s\n",
			i+1, l.ID(), l.Name(), arena, l.ObstacleCount(), formatPoint(l.Goal()))
	}
}

func formatPoint(p core.Point) string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func runLevelsExport(cmd *cobra.Command, args []string) {
	cat := mustCatalog(args[0])

	data, err := formats.MarshalYAML(cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding catalog: %v\n", err)
		os.Exit(1)
	}

	if flagOutput == "" {
		os.Stdout.Write(data)
		return
	}

	if err := os.WriteFile(expandHome(flagOutput), data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagOutput, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d levels)\n", flagOutput, len(cat.Levels))
}
