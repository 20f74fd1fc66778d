package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-autopilot/internal/platform/tui"
	"github.com/vovakirdan/snake-autopilot/internal/registry"
	"github.com/vovakirdan/snake-autopilot/internal/storage"
)

var (
	flagLimit int
	flagTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <preset>",
	Short: "Show the best stored runs for a preset",
	Long: `Display the best runs stored for the preset, highest score first.
With --tui, browse every preset interactively.

Examples:
  autopilot scores autopilot
  autopilot scores autopilot_large --limit 25
  autopilot scores autopilot --tui`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	id := args[0]
	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("%w, run 'autopilot list' to see available presets", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, id, width, height)
		return err
	}

	runs, err := store.TopRuns(id, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'autopilot run %s' to record some.\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "Rank", "Score", "Length", "Moves", "Outcome", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "----", "-----", "------", "-----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-7d  %-8s  %s\n",
			i+1, r.Score, r.Length, r.Moves, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if n, err := store.RunCount(id); err == nil {
		if best, err := store.BestScore(id); err == nil {
			fmt.Printf("Best: %d over %d runs\n", best, n)
		}
	}
	return nil
}
