package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Entity: EntityConfig{
			Size:  20,
			Speed: 5,
		},
		Collision: CollisionConfig{
			MotionTolerance: 1,
			TouchTolerance:  0,
		},
		Timing: TimingConfig{
			AdvanceDelayMs: 2000,
			TouchNoticeMs:  1000,
			NoticeMs:       2000,
		},
		Input: InputConfig{
			HoldMs:      120,
			FirstHoldMs: 500,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMazeYAML
}
