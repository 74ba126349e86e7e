package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade3d/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all built-in games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Levels", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "------", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-6d  %s\n", maxIDLen, g.ID, g.Levels, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade3d play <id>' to play a game.")
}
