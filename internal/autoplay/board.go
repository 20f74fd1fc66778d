// Package autoplay runs the planner against a real game: a board that spawns
// food, a registry game that replays the planner's moves tick by tick, a
// background precomputer that plans ahead, and a headless runner.
package autoplay

import (
	"math/rand"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// Outcome is the state of a game from the outside.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeDead            // Snake hit a wall or itself
	OutcomeFull            // No free cell left for food
)

// String returns a lower-case name for the outcome, as stored in the database.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeDead:
		return "dead"
	case OutcomeFull:
		return "full"
	default:
		return "unknown"
	}
}

// Board is the authoritative state of one game.
type Board struct {
	state   snake.State
	rng     *rand.Rand
	moves   int
	outcome Outcome
}

// NewBoard starts a game from start and places the first food.
func NewBoard(start snake.State, seed int64) *Board {
	b := &Board{
		state: start.WithoutFood(),
		rng:   rand.New(rand.NewSource(seed)),
	}
	b.spawnFood()
	return b
}

// spawnFood places food on a uniformly chosen free cell.
func (b *Board) spawnFood() {
	free := b.state.FreeCells()
	if len(free) == 0 {
		b.state = b.state.WithoutFood()
		b.outcome = OutcomeFull
		return
	}
	b.state = b.state.WithFood(free[b.rng.Intn(len(free))])
}

// SetFood moves the food to c. Used when replaying moves planned on another
// board, where the food sequence must match the one the planner saw.
func (b *Board) SetFood(c grid.Cell) {
	b.state = b.state.WithFood(c)
}

// Step moves the snake once and reports the outcome afterwards.
// Steps on a finished board are ignored.
func (b *Board) Step(m grid.Move) Outcome {
	if b.outcome != OutcomeRunning {
		return b.outcome
	}

	eaten := b.state.Eaten
	b.state = b.state.Apply(m)
	b.moves++

	if b.state.Dead {
		b.outcome = OutcomeDead
		return b.outcome
	}
	if b.state.Eaten > eaten {
		b.spawnFood()
	}
	return b.outcome
}

// State returns a copy of the current snake state.
func (b *Board) State() snake.State { return b.state.Clone() }

// Score is the number of food eaten.
func (b *Board) Score() int { return b.state.Eaten }

// Length is the current body length.
func (b *Board) Length() int { return b.state.Len() }

// Moves is the number of moves made so far.
func (b *Board) Moves() int { return b.moves }

// Outcome reports whether the game is still going.
func (b *Board) Outcome() Outcome { return b.outcome }
