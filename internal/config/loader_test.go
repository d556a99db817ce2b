package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg MazeConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultMazeConfig() {
		t.Errorf("embedded default %+v differs from DefaultMazeConfig %+v", cfg, DefaultMazeConfig())
	}
}

func TestLoadMazeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := []byte("entity:\n  speed: 8\ntiming:\n  advance_delay_ms: 500\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if cfg.Entity.Speed != 8 {
		t.Errorf("speed = %d, expected 8", cfg.Entity.Speed)
	}
	if cfg.Timing.AdvanceDelayMs != 500 {
		t.Errorf("advance delay = %d, expected 500", cfg.Timing.AdvanceDelayMs)
	}
	// Unset fields keep defaults
	if cfg.Entity.Size != 20 {
		t.Errorf("size = %d, expected default 20", cfg.Entity.Size)
	}
}

func TestLoadMazeMissingCustomPath(t *testing.T) {
	if _, err := LoadMaze(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}
}

func TestLoadMazeRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("entity:\n  size: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMaze(path); err == nil {
		t.Error("expected validation error for zero entity size")
	}
}

func TestLoadMazeHoldWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("input:\n  first_hold_ms: 650\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if cfg.Input.FirstHoldMs != 650 || cfg.Input.HoldMs != 120 {
		t.Errorf("input = %+v, expected first 650 and the default repeat hold", cfg.Input)
	}

	if err := os.WriteFile(path, []byte("input:\n  hold_ms: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMaze(path); err == nil {
		t.Error("expected validation error for a negative hold window")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in    string
		want  DifficultyPreset
		valid bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"insane", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		if got != tc.want || ok != tc.valid {
			t.Errorf("ParsePreset(%q) = (%q, %v), expected (%q, %v)", tc.in, got, ok, tc.want, tc.valid)
		}
	}

	cfg := DefaultMazeConfig()
	ApplyMazePreset(&cfg, DifficultyHard)
	if cfg.Entity.Speed <= DefaultMazeConfig().Entity.Speed {
		t.Error("hard preset should increase speed")
	}
	cfg = DefaultMazeConfig()
	ApplyMazePreset(&cfg, DifficultyNormal)
	if cfg != DefaultMazeConfig() {
		t.Error("normal preset should leave the config unchanged")
	}
}

func TestTicks(t *testing.T) {
	if got := Ticks(2000, 60); got != 120 {
		t.Errorf("Ticks(2000, 60) = %d, expected 120", got)
	}
	if got := Ticks(1, 60); got != 1 {
		t.Errorf("Ticks(1, 60) = %d, expected at least 1", got)
	}
	if got := Ticks(1000, 0); got != 60 {
		t.Errorf("Ticks(1000, 0) = %d, expected fallback rate 60", got)
	}
}
