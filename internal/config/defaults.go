package config

import (
	_ "embed"
	"fmt"
)

//go:embed defaults/autopilot.yaml
var defaultAutopilotYAML []byte

// DefaultConfig returns the built-in configuration: the 8x8 wrapped board
// with a three-cell snake in the top-left column.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
			Walled: false,
		},
		Snake: SnakeConfig{
			Start:   []CellConfig{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
			Heading: "down",
		},
		Play: PlayConfig{
			MoveEveryTicks: 2,
			Precompute:     true,
			Lookahead:      8,
			MaxMoves:       20000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultAutopilotYAML
}

// Preset names a board size.
type Preset string

const (
	PresetSmall  Preset = "small"
	PresetMedium Preset = "medium"
	PresetLarge  Preset = "large"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetSmall, PresetMedium, PresetLarge}
}

// ApplyPreset resizes the board for the preset. The starting snake is kept,
// since the default one fits every preset.
func ApplyPreset(cfg *Config, preset Preset) error {
	switch preset {
	case PresetSmall, "":
		cfg.Board.Width, cfg.Board.Height = 8, 8
	case PresetMedium:
		cfg.Board.Width, cfg.Board.Height = 16, 12
	case PresetLarge:
		cfg.Board.Width, cfg.Board.Height = 24, 16
	default:
		return fmt.Errorf("config: unknown preset %q", preset)
	}
	return nil
}
