// Package snake models the simulated snake: an immutable value holding the
// body, heading and food that the planner reasons about and the game loop
// advances one move at a time.
package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
)

// ErrInvalidState is returned when a state cannot describe a real board.
var ErrInvalidState = errors.New("snake: invalid state")

// State is a snapshot of the snake on its grid.
// Values are treated as immutable: Apply and Follow return new states and
// never modify the receiver's body.
type State struct {
	Grid    grid.Grid
	Body    []grid.Cell // Tail at index 0, head last
	Heading grid.Move
	Dead    bool
	Food    grid.Cell
	HasFood bool // false once the board has no free cell left for food
	Eaten   int  // Food eaten since the state was created
}

// New creates a live state without food. The body is copied.
func New(g grid.Grid, body []grid.Cell, heading grid.Move) State {
	return State{
		Grid:    g,
		Body:    append([]grid.Cell(nil), body...),
		Heading: heading,
	}
}

// WithFood returns a copy of the state with food placed at c.
func (s State) WithFood(c grid.Cell) State {
	next := s.Clone()
	next.Food = c
	next.HasFood = true
	return next
}

// WithoutFood returns a copy of the state with no food on the board.
func (s State) WithoutFood() State {
	next := s.Clone()
	next.HasFood = false
	return next
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	next := s
	next.Body = append(make([]grid.Cell, 0, len(s.Body)+1), s.Body...)
	return next
}

// Head returns the head cell. The body must not be empty.
func (s State) Head() grid.Cell {
	return s.Body[len(s.Body)-1]
}

// Tail returns the tail cell. The body must not be empty.
func (s State) Tail() grid.Cell {
	return s.Body[0]
}

// Len returns the number of body cells.
func (s State) Len() int {
	return len(s.Body)
}

// Full returns true when the body covers every cell of the grid.
func (s State) Full() bool {
	return len(s.Body) >= s.Grid.CellCount()
}

// Occupied returns true if c is part of the body.
func (s State) Occupied(c grid.Cell) bool {
	return grid.OccupiesBody(c, s.Body, false)
}

// FreeCells returns every cell not covered by the body, in row-major order.
func (s State) FreeCells() []grid.Cell {
	taken := make(map[grid.Cell]struct{}, len(s.Body))
	for _, c := range s.Body {
		taken[c] = struct{}{}
	}

	free := make([]grid.Cell, 0, s.Grid.CellCount()-len(taken))
	for _, c := range s.Grid.Cells() {
		if _, ok := taken[c]; !ok {
			free = append(free, c)
		}
	}
	return free
}

// Collides reports whether moving the head onto next would end the game:
// a wall hit on a walled grid, or a bite into the body. The tail is not
// counted because it retracts on the same step.
func (s State) Collides(next grid.Cell) bool {
	if s.Grid.BoundaryCollision(next) {
		return true
	}
	return grid.OccupiesBody(next, s.Body, true)
}

// Apply advances the snake by one move and returns the resulting state.
//
// A move opposite to the current heading is ignored and the snake keeps
// going straight. The tail retracts unless the new head lands on the food,
// in which case the snake grows and the food is consumed.
func (s State) Apply(m grid.Move) State {
	next := s.Clone()
	if s.Dead || len(s.Body) == 0 {
		return next
	}

	dir := m
	if grid.Opposite(m, s.Heading) {
		dir = s.Heading
	}
	next.Heading = dir

	head := s.Grid.Step(s.Head(), dir)
	if s.Collides(head) {
		next.Dead = true
		return next
	}

	next.Body = append(next.Body, head)
	if s.HasFood && head == s.Food {
		next.Eaten++
		next.HasFood = false
		return next
	}
	next.Body = next.Body[1:]
	return next
}

// Follow applies every move of path in order, stopping early if the snake dies.
func (s State) Follow(path []grid.Move) State {
	cur := s.Clone()
	for _, m := range path {
		cur = cur.Apply(m)
		if cur.Dead {
			break
		}
	}
	return cur
}

// Validate checks the state describes a well-formed board: positive grid,
// a non-empty body of distinct in-bounds cells, and food on a free in-bounds
// cell.
func (s State) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if len(s.Body) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidState)
	}

	seen := make(map[grid.Cell]struct{}, len(s.Body))
	for _, c := range s.Body {
		if !s.Grid.InBounds(c) {
			return fmt.Errorf("%w: body cell %v outside %dx%d grid", ErrInvalidState, c, s.Grid.Width, s.Grid.Height)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: duplicate body cell %v", ErrInvalidState, c)
		}
		seen[c] = struct{}{}
	}

	if s.HasFood {
		if !s.Grid.InBounds(s.Food) {
			return fmt.Errorf("%w: food %v outside grid", ErrInvalidState, s.Food)
		}
		if _, onBody := seen[s.Food]; onBody {
			return fmt.Errorf("%w: food %v on the body", ErrInvalidState, s.Food)
		}
	}
	return nil
}
