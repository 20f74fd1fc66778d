// Package grid provides the board geometry used by the autopilot: cells,
// moves, grid dimensions and the wrap/walled boundary rules.
// It has no dependencies on game state so it can be shared by the planner
// and the game loop alike.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-autopilot/internal/core"
)

// ErrInvalidGrid is returned when grid dimensions are not positive.
var ErrInvalidGrid = errors.New("grid: invalid dimensions")

// Cell is a single grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell one step away in the direction of m.
// The result is not wrapped or bounds-checked.
func (c Cell) Add(m Move) Cell {
	dx, dy := m.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the Manhattan distance between two cells.
// Wrapping is not taken into account.
func Manhattan(a, b Cell) int {
	return core.Abs(a.X-b.X) + core.Abs(a.Y-b.Y)
}

// Move is one of the four unit steps on the grid.
type Move int

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
)

// Moves is the fixed enumeration order used wherever moves are tried in turn.
// Search expansion and the escape heuristic both depend on this order.
var Moves = [4]Move{MoveUp, MoveDown, MoveLeft, MoveRight}

// Delta returns the unit vector of the move. Y grows downwards.
func (m Move) Delta() (dx, dy int) {
	switch m {
	case MoveUp:
		return 0, -1
	case MoveDown:
		return 0, 1
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Reverse returns the opposite move.
func (m Move) Reverse() Move {
	switch m {
	case MoveUp:
		return MoveDown
	case MoveDown:
		return MoveUp
	case MoveLeft:
		return MoveRight
	default:
		return MoveLeft
	}
}

// String returns a lower-case name for the move.
func (m Move) String() string {
	switch m {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseMove parses a move name as produced by Move.String.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return MoveUp, nil
	case "down", "d":
		return MoveDown, nil
	case "left", "l":
		return MoveLeft, nil
	case "right", "r":
		return MoveRight, nil
	default:
		return 0, fmt.Errorf("grid: unknown move %q", s)
	}
}

// Opposite reports whether a and b point in opposite directions.
func Opposite(a, b Move) bool {
	ax, ay := a.Delta()
	bx, by := b.Delta()
	return ax == -bx && ay == -by
}

// Grid describes the board the snake moves on.
type Grid struct {
	Width  int
	Height int
	Walled bool // true: leaving the board kills, false: edges wrap around
}

// New creates a grid with the given dimensions and boundary mode.
func New(width, height int, walled bool) Grid {
	return Grid{Width: width, Height: height, Walled: walled}
}

// Validate checks that both dimensions are positive.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Width, g.Height)
	}
	return nil
}

// CellCount returns the number of cells on the grid.
func (g Grid) CellCount() int {
	return g.Width * g.Height
}

// InBounds returns true if c lies within [0,Width) x [0,Height).
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// Wrap maps c back onto the grid, treating both axes as cyclic.
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.Width), Y: mod(c.Y, g.Height)}
}

// BoundaryCollision returns true if walls are enabled and c is off the grid.
func (g Grid) BoundaryCollision(c Cell) bool {
	return g.Walled && !g.InBounds(c)
}

// Step moves c one cell in direction m, wrapping when the grid is not walled.
// On a walled grid the result may be out of bounds.
func (g Grid) Step(c Cell, m Move) Cell {
	next := c.Add(m)
	if !g.Walled {
		next = g.Wrap(next)
	}
	return next
}

// Cells returns every cell of the grid in row-major order.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.CellCount())
	for y := range g.Height {
		for x := range g.Width {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}

// OccupiesBody reports whether pos is part of body (tail first).
// With excludeTail the tail cell is ignored, since it vacates on the same
// step the head moves.
func OccupiesBody(pos Cell, body []Cell, excludeTail bool) bool {
	start := 0
	if excludeTail {
		start = 1
	}
	for i := start; i < len(body); i++ {
		if body[i] == pos {
			return true
		}
	}
	return false
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
