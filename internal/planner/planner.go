// Package planner decides where the snake goes next.
//
// Plan tries, in order: a food path that keeps the tail reachable, the single
// move with the longest escape route to the tail, and finally the current
// heading. It keeps no state between calls, so it is safe to call from
// several goroutines on independent snapshots.
package planner

import (
	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/search"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// Strategy names the rule that produced a decision.
type Strategy int

const (
	StrategyFood     Strategy = iota // Tail-safe path to the food
	StrategyEscape                   // Longest escape move
	StrategyStraight                 // Keep the current heading
)

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyFood:
		return "food"
	case StrategyEscape:
		return "escape"
	case StrategyStraight:
		return "straight"
	default:
		return "unknown"
	}
}

// Decision is the planner's answer for one snapshot.
type Decision struct {
	Path     []grid.Move
	Strategy Strategy
}

// Plan returns the moves the snake should make from s.
// The result is never empty for a valid state.
func Plan(s snake.State) ([]grid.Move, error) {
	d, err := Decide(s)
	if err != nil {
		return nil, err
	}
	return d.Path, nil
}

// Decide is Plan with the chosen strategy attached.
func Decide(s snake.State) (Decision, error) {
	if err := s.Validate(); err != nil {
		return Decision{}, err
	}

	res, err := search.FoodPath(s)
	if err != nil {
		return Decision{}, err
	}
	if res.Found && len(res.Path) > 0 {
		return Decision{Path: res.Path, Strategy: StrategyFood}, nil
	}

	if m, ok := LongestEscape(s); ok {
		return Decision{Path: []grid.Move{m}, Strategy: StrategyEscape}, nil
	}

	return Decision{Path: []grid.Move{s.Heading}, Strategy: StrategyStraight}, nil
}
