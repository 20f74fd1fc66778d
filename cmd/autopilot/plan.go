package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-autopilot/internal/config"
	"github.com/vovakirdan/snake-autopilot/internal/planner"
	"github.com/vovakirdan/snake-autopilot/internal/search"
)

var planCmd = &cobra.Command{
	Use:   "plan <board.yaml>",
	Short: "Print the planner's decision for one board position",
	Long: `Load a board snapshot and print what the planner would do from it.

A snapshot lists the grid, the body from tail to head, the heading and
optionally the food:

  width: 8
  height: 8
  walled: false
  heading: down
  body: [{x: 0, y: 0}, {x: 0, y: 1}, {x: 0, y: 2}]
  food: {x: 5, y: 6}`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(_ *cobra.Command, args []string) error {
	s, err := config.LoadBoard(args[0])
	if err != nil {
		return err
	}

	d, err := planner.Decide(s)
	if err != nil {
		return err
	}

	moves := make([]string, len(d.Path))
	for i, m := range d.Path {
		moves[i] = m.String()
	}

	fmt.Printf("Board:    %dx%d %s\n", s.Grid.Width, s.Grid.Height, edgeName(s.Grid.Walled))
	fmt.Printf("Head:     %v heading %s, length %d\n", s.Head(), s.Heading, s.Len())
	if s.HasFood {
		fmt.Printf("Food:     %v\n", s.Food)
	} else {
		fmt.Println("Food:     none")
	}
	fmt.Printf("Strategy: %s\n", d.Strategy)
	fmt.Printf("Moves:    %s (%d)\n", strings.Join(moves, " "), len(d.Path))

	end := s.Follow(d.Path)
	fmt.Printf("After:    head %v, dead %v, tail reachable %v\n", end.Head(), end.Dead, search.TailReachable(end))

	logger.Debug("plan", "board", args[0], "strategy", d.Strategy, "moves", len(d.Path))
	return nil
}

func edgeName(walled bool) string {
	if walled {
		return "walled"
	}
	return "wrapped"
}
