package maze

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestGameStepReportsClears(t *testing.T) {
	g := NewGame("test", "Test", []*Level{sprintLevel("a"), sprintLevel("b")})
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	var clear *core.ClearRecord
	for i := 0; i < 10; i++ {
		res := g.Step(holding(core.Slot1, core.ActionRight))
		if res.Clear != nil {
			clear = res.Clear
			break
		}
	}
	if clear == nil {
		t.Fatal("expected a clear record")
	}
	if clear.LevelIndex != 0 || clear.LevelID != "a" || clear.Dual {
		t.Errorf("unexpected clear record: %+v", clear)
	}

	st := g.State()
	if st.Level != 1 || st.Levels != 2 || st.Cleared != 1 || st.Finished {
		t.Errorf("unexpected state: %+v", st)
	}
}

func TestGameResetHonorsRuntimeConfig(t *testing.T) {
	g := NewGame("test", "Test", []*Level{sprintLevel("a"), sprintLevel("b")})

	cfg := core.DefaultConfig()
	cfg.Dual = true
	cfg.StartLevel = 1
	g.Reset(cfg)

	st := g.Sim().State()
	if st.LevelIndex != 1 {
		t.Errorf("LevelIndex = %d, expected 1", st.LevelIndex)
	}
	if st.Mode != ModeDual {
		t.Errorf("Mode = %v, expected Dual", st.Mode)
	}

	cfg.StartLevel = 5
	g.Reset(cfg)
	if !errors.Is(g.Err(), ErrIndexOutOfRange) {
		t.Errorf("Err() = %v, expected ErrIndexOutOfRange", g.Err())
	}
}

func TestGameResetKeepsPresetOnBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("entity:\n  size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("hard")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})

	g := NewGame("test", "Test", []*Level{sprintLevel("a")})
	g.Reset(core.DefaultConfig())
	if err := g.Err(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if g.ConfigErr() == nil {
		t.Error("expected the rejected config to be reported")
	}

	got := g.Sim().Settings()
	if got.Speed != 7 || got.MotionTolerance != 1 {
		t.Errorf("settings = %+v, expected the hard preset on top of defaults", got)
	}
	if got.EntitySize != config.DefaultMazeConfig().Entity.Size {
		t.Errorf("EntitySize = %d, expected the default", got.EntitySize)
	}
}

func TestGameStateDualNeedsTwoEntities(t *testing.T) {
	solo := MustLevel("solo", "", core.Size{W: 200, H: 100},
		nil,
		[]core.Point{{X: 0, Y: 0}},
		core.Point{X: 30, Y: 0},
	)
	g := NewGame("test", "Test", []*Level{solo})
	cfg := core.DefaultConfig()
	cfg.Dual = true
	g.Reset(cfg)

	if g.State().Dual {
		t.Error("State().Dual should be false with a single start")
	}

	var clear *core.ClearRecord
	for i := 0; i < 10; i++ {
		if res := g.Step(holding(core.Slot1, core.ActionRight)); res.Clear != nil {
			clear = res.Clear
			break
		}
	}
	if clear == nil || clear.Dual {
		t.Errorf("clear record = %+v, expected a single player clear", clear)
	}
}

func TestGameRender(t *testing.T) {
	g := NewGame("test", "Test", []*Level{sprintLevel("a"), sprintLevel("b")})
	g.Reset(core.DefaultConfig())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Level 1/2") {
		t.Errorf("HUD missing level counter:\n%s", out)
	}
	if !strings.ContainsRune(out, Player1) {
		t.Error("player 1 glyph not rendered")
	}
	if strings.ContainsRune(out, Player2) {
		t.Error("inactive player 2 should not be rendered")
	}
	if !strings.ContainsRune(out, GoalChar) {
		t.Error("goal not rendered")
	}
}

func TestGameRenderInvalidLevel(t *testing.T) {
	broken := MustLevel("broken", "", core.Size{W: 200, H: 100},
		[]core.Rect{core.NewRect(0, 0, 50, 50)},
		[]core.Point{{X: 10, Y: 10}},
		core.Point{X: 150, Y: 50},
	)
	g := NewGame("test", "Test", []*Level{broken})
	g.Reset(core.DefaultConfig())

	if !errors.Is(g.Err(), ErrInvalidLevelData) {
		t.Fatalf("Err() = %v, expected ErrInvalidLevelData", g.Err())
	}
	// Stepping a broken game is a no-op
	g.Step(holding(core.Slot1, core.ActionRight))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Invalid level data") {
		t.Error("expected invalid level overlay")
	}
}

func TestGameRenderSmallWindow(t *testing.T) {
	g := NewGame("test", "Test", []*Level{sprintLevel("a")})
	g.Reset(core.DefaultConfig())

	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected small window overlay:\n%s", screen.String())
	}
}

func TestSettingsFromConfigConvertsMilliseconds(t *testing.T) {
	got := SettingsFromConfig(config.DefaultMazeConfig(), 60)
	if got != DefaultSettings() {
		t.Errorf("SettingsFromConfig(defaults, 60) = %+v, expected %+v", got, DefaultSettings())
	}

	slow := SettingsFromConfig(config.DefaultMazeConfig(), 30)
	if slow.AdvanceDelay != 60 || slow.TouchNotice != 30 {
		t.Errorf("at 30 ticks/s: advance %d notice %d, expected 60/30", slow.AdvanceDelay, slow.TouchNotice)
	}
}
