// Package config provides YAML-based game configuration loading and
// difficulty presets for the maze game.
package config

// MazeConfig contains all configuration for the maze game.
type MazeConfig struct {
	Entity    EntityConfig    `yaml:"entity"`
	Collision CollisionConfig `yaml:"collision"`
	Timing    TimingConfig    `yaml:"timing"`
	Input     InputConfig     `yaml:"input"`
}

// EntityConfig defines the controllable entities.
type EntityConfig struct {
	Size  int `yaml:"size"`
	Speed int `yaml:"speed"`
}

// CollisionConfig defines collision tolerances.
type CollisionConfig struct {
	MotionTolerance int `yaml:"motion_tolerance"`
	TouchTolerance  int `yaml:"touch_tolerance"`
}

// TimingConfig defines message and transition durations in milliseconds.
type TimingConfig struct {
	AdvanceDelayMs int `yaml:"advance_delay_ms"`
	TouchNoticeMs  int `yaml:"touch_notice_ms"`
	NoticeMs       int `yaml:"notice_ms"`
}

// InputConfig defines keyboard handling.
type InputConfig struct {
	HoldMs      int `yaml:"hold_ms"`       // Terminals report no key release; a repeat is held this long
	FirstHoldMs int `yaml:"first_hold_ms"` // Hold for a fresh press, covering the terminal's initial repeat delay
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// Ticks converts a duration in milliseconds to simulation ticks, at least one.
func Ticks(ms, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	t := ms * tickRate / 1000
	if t < 1 {
		t = 1
	}
	return t
}
