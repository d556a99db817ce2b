package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level catalogs",
	Long:  `Shows every level catalog that can be played, built-in and user supplied.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	catalogs := registry.List()

	if len(catalogs) == 0 {
		fmt.Println("No catalogs available.")
		return
	}

	fmt.Println("Available catalogs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, c := range catalogs {
		maxIDLen = max(maxIDLen, len(c.ID))
	}

	fmt.Printf("  %-*s  %6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, c := range catalogs {
		fmt.Printf("  %-*s  %6d  %s\n", maxIDLen, c.ID, c.Levels, c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'maze play <id>' to play a catalog.")
}
