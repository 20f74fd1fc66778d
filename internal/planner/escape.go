package planner

import (
	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/search"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// LongestEscape picks the single move after which the path back to the tail
// is longest. Moves that hit a wall or the body on a walled grid, or that
// kill the snake, are skipped, as are moves that leave no tail path at all.
//
// Only a strictly longer tail path replaces the current best, so ties go to
// the earlier move in grid.Moves.
func LongestEscape(s snake.State) (grid.Move, bool) {
	var (
		best  grid.Move
		found bool
		dist  = -1
	)

	head := s.Head()
	for _, m := range grid.Moves {
		if s.Grid.Walled && s.Collides(head.Add(m)) {
			continue
		}

		next := s.Apply(m)
		if next.Dead {
			continue
		}

		res, err := search.TailPath(next)
		if err != nil || !res.Found {
			continue
		}
		if len(res.Path) > dist {
			best = m
			dist = len(res.Path)
			found = true
		}
	}

	return best, found
}
