// Package config provides YAML-based configuration loading for the
// autopilot: board geometry, the starting snake, playback pacing and board
// snapshot files for one-off planning.
package config

import (
	"fmt"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

// Config is the full autopilot configuration.
type Config struct {
	Board BoardConfig `yaml:"board"`
	Snake SnakeConfig `yaml:"snake"`
	Play  PlayConfig  `yaml:"play"`
}

// BoardConfig defines the grid the snake plays on.
type BoardConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Walled bool `yaml:"walled"` // false = edges wrap around
}

// SnakeConfig defines the snake at the start of every game.
type SnakeConfig struct {
	Start   []CellConfig `yaml:"start"`   // Tail first
	Heading string       `yaml:"heading"` // up, down, left, right
}

// CellConfig is a grid cell as written in YAML.
type CellConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// PlayConfig controls how games are played out.
type PlayConfig struct {
	MoveEveryTicks int  `yaml:"move_every_ticks"` // Ticks between snake moves when watching
	Precompute     bool `yaml:"precompute"`       // Plan ahead on a background goroutine
	Lookahead      int  `yaml:"lookahead"`        // Max precomputed segments waiting
	MaxMoves       int  `yaml:"max_moves"`        // Stop a headless run after this many moves, 0 = no limit
}

// Cell converts to a grid cell.
func (c CellConfig) Cell() grid.Cell {
	return grid.Cell{X: c.X, Y: c.Y}
}

// Grid returns the configured grid.
func (c Config) Grid() grid.Grid {
	return grid.New(c.Board.Width, c.Board.Height, c.Board.Walled)
}

// StartState builds the initial snake state, without food.
func (c Config) StartState() (snake.State, error) {
	heading, err := grid.ParseMove(c.Snake.Heading)
	if err != nil {
		return snake.State{}, fmt.Errorf("config: snake heading: %w", err)
	}

	body := make([]grid.Cell, 0, len(c.Snake.Start))
	for _, cc := range c.Snake.Start {
		body = append(body, cc.Cell())
	}

	s := snake.New(c.Grid(), body, heading)
	if err := s.Validate(); err != nil {
		return snake.State{}, fmt.Errorf("config: start state: %w", err)
	}
	return s, nil
}

// Validate checks the configuration can produce a playable game.
func (c Config) Validate() error {
	if _, err := c.StartState(); err != nil {
		return err
	}
	if c.Play.MoveEveryTicks < 1 {
		return fmt.Errorf("config: move_every_ticks must be at least 1, got %d", c.Play.MoveEveryTicks)
	}
	if c.Play.Precompute && c.Play.Lookahead < 1 {
		return fmt.Errorf("config: lookahead must be at least 1 when precompute is on, got %d", c.Play.Lookahead)
	}
	if c.Play.MaxMoves < 0 {
		return fmt.Errorf("config: max_moves cannot be negative")
	}
	return nil
}
