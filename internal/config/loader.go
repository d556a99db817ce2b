package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMaze loads the maze configuration.
// Search order: customPath -> ~/.maze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadMaze(customPath string) (MazeConfig, error) {
	cfg := DefaultMazeConfig()

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
	if userCfgPath := userConfigPath("maze.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultMazeConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/maze.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultMazeConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMazeYAML, &cfg); err != nil {
		return DefaultMazeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c MazeConfig) Validate() error {
	switch {
	case c.Entity.Size <= 0:
		return fmt.Errorf("config: entity.size must be positive, got %d", c.Entity.Size)
	case c.Entity.Speed <= 0:
		return fmt.Errorf("config: entity.speed must be positive, got %d", c.Entity.Speed)
	case c.Collision.MotionTolerance < 0 || c.Collision.TouchTolerance < 0:
		return fmt.Errorf("config: collision tolerances cannot be negative")
	case c.Timing.AdvanceDelayMs < 0:
		return fmt.Errorf("config: timing.advance_delay_ms cannot be negative")
	case c.Input.HoldMs < 0 || c.Input.FirstHoldMs < 0:
		return fmt.Errorf("config: input hold windows cannot be negative")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", "configs", filename)
}

// ApplyMazePreset modifies the config based on a difficulty preset.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Entity.Speed = 4
		cfg.Collision.MotionTolerance = 2
		cfg.Timing.AdvanceDelayMs = 3000
	case DifficultyHard:
		cfg.Entity.Speed = 7
		cfg.Collision.MotionTolerance = 1
		cfg.Timing.AdvanceDelayMs = 1000
	}
}
