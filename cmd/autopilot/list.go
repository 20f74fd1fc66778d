package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-autopilot/internal/autoplay"
	"github.com/vovakirdan/snake-autopilot/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board presets",
	Long:  `Shows every registered preset with its board size and edge mode.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No presets available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Available presets:")
	fmt.Println()
	fmt.Printf("  %-*s  %-8s  %-7s  %s\n", maxIDLen, "ID", "Board", "Edges", "Title")
	fmt.Printf("  %-*s  %-8s  %-7s  %s\n", maxIDLen, "--", "-----", "-----", "-----")

	for _, g := range games {
		board, edges := "?", "?"
		if p, ok := autoplay.FindPreset(g.ID); ok {
			if pc, err := autoplay.ConfigFor(p); err == nil {
				board = fmt.Sprintf("%dx%d", pc.Board.Width, pc.Board.Height)
				edges = "wrap"
				if pc.Board.Walled {
					edges = "walls"
				}
			}
		}
		fmt.Printf("  %-*s  %-8s  %-7s  %s\n", maxIDLen, g.ID, board, edges, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'autopilot watch <id>' to watch a game.")
}
