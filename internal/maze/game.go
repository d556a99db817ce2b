package maze

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

// Package-level variables for config/difficulty, set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the config file path used on the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used on the next Reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// LoadSettings resolves the configured settings for the given tick rate.
func LoadSettings(tickRate int) (Settings, config.MazeConfig, error) {
	cfg, err := config.LoadMaze(configPath)
	if err != nil {
		cfg = config.DefaultMazeConfig()
	}
	if preset, ok := config.ParsePreset(difficultyPreset); ok {
		config.ApplyMazePreset(&cfg, preset)
	}
	return SettingsFromConfig(cfg, tickRate), cfg, err
}

// SettingsFromConfig converts YAML configuration to simulation settings.
func SettingsFromConfig(cfg config.MazeConfig, tickRate int) Settings {
	return Settings{
		EntitySize:      cfg.Entity.Size,
		Speed:           cfg.Entity.Speed,
		MotionTolerance: cfg.Collision.MotionTolerance,
		TouchTolerance:  cfg.Collision.TouchTolerance,
		AdvanceDelay:    config.Ticks(cfg.Timing.AdvanceDelayMs, tickRate),
		TouchNotice:     config.Ticks(cfg.Timing.TouchNoticeMs, tickRate),
		Notice:          config.Ticks(cfg.Timing.NoticeMs, tickRate),
	}
}

// Game adapts a level catalog and its simulation to the registry.Game interface.
type Game struct {
	id     string
	title  string
	levels []*Level
	logger *log.Logger

	sim      *Sim
	settings Settings
	lastTick TickEvents
	err      error // Set when the catalog cannot be played with the current settings
	cfgErr   error // Set when the user config was rejected and defaults were used

	// Screen dimensions
	screenW  int
	screenH  int
	tickRate int
}

// NewGame creates a game over a catalog of levels.
func NewGame(id, title string, levels []*Level) *Game {
	return &Game{
		id:       id,
		title:    title,
		levels:   levels,
		settings: DefaultSettings(),
	}
}

var (
	_ registry.Game   = (*Game)(nil)
	_ registry.Logged = (*Game)(nil)
)

// ID returns the catalog identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// LevelCount returns the number of levels in the catalog.
func (g *Game) LevelCount() int {
	return len(g.levels)
}

// Levels returns the catalog's levels in play order.
func (g *Game) Levels() []*Level {
	return append([]*Level(nil), g.levels...)
}

// SetLogger mirrors status messages into logger for sims created by
// subsequent Resets. A later call replaces the earlier logger.
func (g *Game) SetLogger(logger *log.Logger) {
	g.logger = logger
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	g.lastTick = TickEvents{}
	g.err = nil

	// A rejected config still yields playable defaults with the preset applied
	settings, _, cfgErr := LoadSettings(cfg.TickRate)
	g.settings = settings
	g.cfgErr = cfgErr
	if cfgErr != nil && g.logger != nil {
		g.logger.Warn("using default maze config", "err", cfgErr)
	}

	if err := ValidateAll(g.levels, settings.EntitySize); err != nil {
		g.sim = nil
		g.err = err
		return
	}

	mode := ModeSingle
	if cfg.Dual {
		mode = ModeDual
	}
	opts := []Option{WithMode(mode), WithStartLevel(cfg.StartLevel)}
	if g.logger != nil {
		opts = append(opts, WithSink(NewLogSink(g.logger)))
	}

	sim, err := NewSim(g.levels, settings, opts...)
	if err != nil {
		g.sim = nil
		g.err = err
		return
	}
	g.sim = sim
}

// Err returns the reason the catalog cannot be played, if any.
func (g *Game) Err() error {
	return g.err
}

// ConfigErr returns the error from the last config load, if any. Play
// continues on defaults when it is set.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Sim returns the running simulation, nil before Reset or on error.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Resize updates the screen dimensions without touching the simulation.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}

	g.lastTick = g.sim.Step(in)
	result := core.StepResult{State: g.State()}
	if c := g.lastTick.Cleared; c != nil {
		result.Clear = &core.ClearRecord{
			LevelIndex: c.LevelIndex,
			LevelID:    c.LevelID,
			Ticks:      c.Ticks,
			Dual:       c.Mode == ModeDual,
		}
	}
	return result
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{Levels: len(g.levels)}
	}
	st := g.sim.State()
	return core.GameState{
		Level:    st.LevelIndex + 1,
		Levels:   g.sim.LevelCount(),
		Cleared:  g.sim.Cleared(),
		Finished: st.Status == StatusAllCleared,
		Paused:   g.sim.Paused(),
		Dual:     g.sim.Dual(),
	}
}
