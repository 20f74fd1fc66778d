package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/snake"
)

const configFile = "autopilot.yaml"

// Load loads the autopilot configuration.
// Search order: customPath -> ~/.autopilot/configs/autopilot.yaml -> ./configs/autopilot.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultAutopilotYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".autopilot", "configs", filename)
}

// BoardFile is a single board snapshot, used to ask the planner about one
// position.
type BoardFile struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	Walled  bool         `yaml:"walled"`
	Heading string       `yaml:"heading"`
	Body    []CellConfig `yaml:"body"` // Tail first
	Food    *CellConfig  `yaml:"food"` // Omit when the board has no food
}

// State converts the snapshot into a validated snake state.
func (b BoardFile) State() (snake.State, error) {
	heading, err := grid.ParseMove(b.Heading)
	if err != nil {
		return snake.State{}, fmt.Errorf("config: board heading: %w", err)
	}

	body := make([]grid.Cell, 0, len(b.Body))
	for _, c := range b.Body {
		body = append(body, c.Cell())
	}

	s := snake.New(grid.New(b.Width, b.Height, b.Walled), body, heading)
	if b.Food != nil {
		s = s.WithFood(b.Food.Cell())
	}
	if err := s.Validate(); err != nil {
		return snake.State{}, fmt.Errorf("config: board: %w", err)
	}
	return s, nil
}

// ParseBoard decodes a board snapshot from YAML.
func ParseBoard(data []byte) (snake.State, error) {
	var b BoardFile
	if err := yaml.Unmarshal(data, &b); err != nil {
		return snake.State{}, fmt.Errorf("config: cannot parse board: %w", err)
	}
	return b.State()
}

// LoadBoard reads a board snapshot file.
func LoadBoard(path string) (snake.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snake.State{}, fmt.Errorf("failed to read board %s: %w", path, err)
	}
	return ParseBoard(data)
}

// BoardFromState is the inverse of BoardFile.State, used when exporting a
// position for later inspection.
func BoardFromState(s snake.State) BoardFile {
	b := BoardFile{
		Width:   s.Grid.Width,
		Height:  s.Grid.Height,
		Walled:  s.Grid.Walled,
		Heading: s.Heading.String(),
		Body:    make([]CellConfig, 0, len(s.Body)),
	}
	for _, c := range s.Body {
		b.Body = append(b.Body, CellConfig{X: c.X, Y: c.Y})
	}
	if s.HasFood {
		b.Food = &CellConfig{X: s.Food.X, Y: s.Food.Y}
	}
	return b
}

// MarshalBoard encodes a state as a board snapshot.
func MarshalBoard(s snake.State) ([]byte, error) {
	return yaml.Marshal(BoardFromState(s))
}
