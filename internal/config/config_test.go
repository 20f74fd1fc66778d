package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML(), &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
board: {width: 5, height: 4, walled: true}
snake:
  start: [{x: 1, y: 1}, {x: 2, y: 1}]
  heading: right
play: {move_every_ticks: 1, precompute: false, lookahead: 0, max_moves: 100}
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, grid.New(5, 4, true), cfg.Grid())

	s, err := cfg.StartState()
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 2, Y: 1}, s.Head())
	assert.Equal(t, grid.MoveRight, s.Heading)
	assert.False(t, s.HasFood)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad heading", func(c *Config) { c.Snake.Heading = "sideways" }},
		{"empty snake", func(c *Config) { c.Snake.Start = nil }},
		{"snake off board", func(c *Config) { c.Snake.Start = []CellConfig{{X: 20, Y: 0}} }},
		{"zero board", func(c *Config) { c.Board.Width = 0 }},
		{"zero ticks", func(c *Config) { c.Play.MoveEveryTicks = 0 }},
		{"no lookahead", func(c *Config) { c.Play.Lookahead = 0 }},
		{"negative max moves", func(c *Config) { c.Play.MaxMoves = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyPreset(t *testing.T) {
	for _, p := range Presets() {
		cfg := DefaultConfig()
		require.NoError(t, ApplyPreset(&cfg, p))
		assert.NoError(t, cfg.Validate(), "preset %s", p)
	}

	cfg := DefaultConfig()
	require.NoError(t, ApplyPreset(&cfg, PresetLarge))
	assert.Equal(t, 24, cfg.Board.Width)
	assert.Equal(t, 16, cfg.Board.Height)

	assert.Error(t, ApplyPreset(&cfg, "huge"))
}

func TestParseBoard(t *testing.T) {
	s, err := ParseBoard([]byte(`
width: 3
height: 3
walled: false
heading: down
body: [{x: 0, y: 0}, {x: 0, y: 1}, {x: 0, y: 2}]
food: {x: 1, y: 0}
`))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.HasFood)
	assert.Equal(t, grid.Cell{X: 1, Y: 0}, s.Food)
	assert.Equal(t, grid.MoveDown, s.Heading)
}

func TestParseBoardErrors(t *testing.T) {
	_, err := ParseBoard([]byte("width: [oops"))
	assert.Error(t, err)

	_, err = ParseBoard([]byte("width: 3\nheight: 3\nheading: up\nbody: []\n"))
	assert.ErrorIs(t, err, snake.ErrInvalidState)

	_, err = ParseBoard([]byte("width: 3\nheight: 3\nheading: up\nbody: [{x: 0, y: 0}]\nfood: {x: 5, y: 5}\n"))
	assert.ErrorIs(t, err, snake.ErrInvalidState)

	// Food under the body can never be reached
	_, err = ParseBoard([]byte("width: 3\nheight: 3\nheading: down\nbody: [{x: 0, y: 0}, {x: 0, y: 1}]\nfood: {x: 0, y: 0}\n"))
	assert.ErrorIs(t, err, snake.ErrInvalidState)
}

func TestBoardRoundTripThroughFile(t *testing.T) {
	orig := snake.New(grid.New(6, 5, true),
		[]grid.Cell{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}},
		grid.MoveDown,
	).WithFood(grid.Cell{X: 4, Y: 4})

	data, err := MarshalBoard(orig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := LoadBoard(path)
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}
