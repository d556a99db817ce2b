package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the key help.
const helpHeight = 1

// Options configures a GameModel.
type Options struct {
	Store     *storage.Store     // Clear times are saved here when set
	Logger    *log.Logger        // nil discards log output
	Hold      time.Duration      // Held-key window after a repeat, DefaultHold when zero
	FirstHold time.Duration      // Held-key window after a fresh press, DefaultFirstHold when zero
	Player    string             // Recorded with each clear; empty for local play
	Renderer  *lipgloss.Renderer // nil means the default renderer
	Now       func() time.Time   // Clock for held keys, time.Now when nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// frameCache survives value copies of the model between View calls.
type frameCache struct {
	last        string
	renderFault bool
}

// GameModel is the Bubble Tea model for playing one level catalog.
type GameModel struct {
	game    registry.Game
	screen  *core.Screen
	painter *Painter
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	held    *HeldKeys
	now     func() time.Time
	player  string

	keys     GameKeyMap
	help     help.Model
	frame    *frameCache
	state    core.GameState
	gen      uint64 // Tick loop owned by this model
	quitting bool

	backToMenu bool
	exitOnBack bool // Standalone play has no menu to return to
}

// NewGameModel creates a game model for the given game.
// cfg.ScreenH is the full window height; one row is kept for the key help.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	h := help.New()
	h.Width = cfg.ScreenW

	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 1)

	logger := opts.logger().With("catalog", game.ID())
	if lg, ok := game.(registry.Logged); ok {
		lg.SetLogger(logger)
	}

	return GameModel{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter: NewPainter(opts.Renderer),
		store:   opts.Store,
		logger:  logger,
		config:  cfg,
		held:    NewHeldKeys(opts.Hold, opts.FirstHold),
		now:     now,
		player:  opts.Player,
		keys:    DefaultGameKeyMap(),
		help:    h,
		frame:   &frameCache{},
		state:   core.GameState{Dual: cfg.Dual},
		gen:     nextTickGen(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "dual", m.config.Dual, "level", m.config.StartLevel+1)
	return tickCmd(m.gen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// m.state lags one tick behind Reset and mode changes
	res, ok := m.keys.Resolve(msg, m.game.State().Dual)
	if !ok {
		return m, nil
	}

	switch {
	case res.Held:
		m.held.Press(res.Slot, res.Action, m.now())
	case res.Action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case res.Action == core.ActionBack:
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	default:
		m.held.Trigger(res.Action)
	}

	return m, nil
}

// handleResize processes window resize events.
// The simulation keeps running; only the projection changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpHeight, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	in := m.held.Snapshot(m.now())
	result := m.game.Step(in)

	if result.State.Dual != m.state.Dual {
		// Mode changed: keys held for the old mapping no longer mean the same thing
		m.held.ReleaseAll()
	}
	m.state = result.State

	if result.Clear != nil {
		m.saveClear(*result.Clear)
	}

	return m, tickCmd(m.gen, m.config.TickRate)
}

// saveClear records a clear in the store. Failures are logged, play continues.
func (m GameModel) saveClear(c core.ClearRecord) {
	m.logger.Info("level cleared", "level", c.LevelID, "ticks", c.Ticks, "dual", c.Dual)
	if m.store == nil {
		return
	}

	rate := m.config.TickRate
	if rate <= 0 {
		rate = 60
	}
	entry := storage.ClearEntry{
		CatalogID:  m.game.ID(),
		LevelID:    c.LevelID,
		LevelIndex: c.LevelIndex,
		Ticks:      c.Ticks,
		DurationMs: int64(c.Ticks) * 1000 / int64(rate), //#nosec G115 -- tick counts stay far below overflow
		Dual:       c.Dual,
		Player:     m.player,
	}
	if _, err := m.store.SaveClear(entry); err != nil {
		m.logger.Error("cannot save clear", "level", c.LevelID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".maze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderGame())
	sb.WriteRune('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// renderGame draws the game, falling back to the previous frame if drawing panics.
func (m GameModel) renderGame() (out string) {
	defer func() {
		if r := recover(); r != nil {
			if !m.frame.renderFault {
				m.logger.Error("render failed", "panic", r)
				m.frame.renderFault = true
			}
			out = m.frame.last
		}
	}()

	m.game.Render(m.screen)
	m.frame.last = m.painter.Render(m.screen)
	return m.frame.last
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewGameModel(game, cfg, opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
