package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Mode selects how many entity slots are under player control.
type Mode int

const (
	ModeSingle Mode = iota
	ModeDual
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "Single"
	case ModeDual:
		return "Dual"
	default:
		return "Unknown"
	}
}

// Status is the level progression state.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelCleared
	StatusAllCleared
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelCleared:
		return "level_cleared"
	case StatusAllCleared:
		return "all_cleared"
	default:
		return "unknown"
	}
}

// Status messages shown to players.
const (
	msgTouchingWall = "You're touching a wall! Be careful."
	msgGoalReached  = "Congratulations! You reached the goal!"
	msgAllCleared   = "Congratulations! You cleared every level!"
	msgEmergency    = "Emergency reset applied!"
	msgDualMode     = "Two-player mode: WASD and arrow keys"
	msgSingleMode   = "Single-player mode"
	msgOneStart     = "This level has room for one player only"
)

// Settings tunes entities, collision and timing for a simulation.
type Settings struct {
	EntitySize      int
	Speed           int
	MotionTolerance int
	TouchTolerance  int
	AdvanceDelay    int // Ticks between clearing a level and loading the next
	TouchNotice     int // Ticks the touching-wall warning stays up
	Notice          int // Ticks for control confirmations
}

// DefaultSettings returns the settings of the classic game at 60 ticks per second.
func DefaultSettings() Settings {
	return Settings{
		EntitySize:      20,
		Speed:           5,
		MotionTolerance: core.MotionTolerance,
		TouchTolerance:  core.TouchTolerance,
		AdvanceDelay:    120,
		TouchNotice:     60,
		Notice:          120,
	}
}

// SimulationState is the mutable state of a play session.
type SimulationState struct {
	LevelIndex int
	Entities   []Entity
	Mode       Mode
	Status     Status
	Tick       uint64
}

// ClearEvent describes a cleared level.
type ClearEvent struct {
	LevelIndex int
	LevelID    string
	Ticks      uint64      // Ticks spent on the level
	Mode       Mode        // Mode the level was played in
	Slot       core.SlotID // Entity that reached the goal
	Last       bool        // The level was the last of the catalog
}

// TickEvents reports what happened during one Step.
type TickEvents struct {
	Cleared  *ClearEvent // Set when a level was cleared this tick
	Advanced bool        // The next level was loaded this tick
}

// Option configures a Sim.
type Option func(*Sim)

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(s *Sim) { s.state.Mode = m }
}

// WithStartLevel sets the level index a session starts on.
func WithStartLevel(index int) Option {
	return func(s *Sim) { s.startIndex = index }
}

// WithSink adds a message sink that receives every status message.
func WithSink(sink MessageSink) Option {
	return func(s *Sim) { s.sinks = append(s.sinks, sink) }
}

// Sim is the tick driver. It owns the simulation state, the pending
// level-advance timer and the message board.
type Sim struct {
	levels     []*Level
	settings   Settings
	resolver   Resolver
	state      SimulationState
	level      *Level
	startIndex int
	levelTick  uint64 // Tick the current level was loaded on
	cleared    int
	paused     bool
	advance    Timer
	board      Board
	sinks      []MessageSink
}

// NewSim creates a simulation over a level catalog and starts a session.
func NewSim(levels []*Level, settings Settings, opts ...Option) (*Sim, error) {
	s := &Sim{
		levels:   levels,
		settings: settings,
		resolver: Resolver{Tolerance: settings.MotionTolerance},
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := LoadLevel(levels, s.startIndex); err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	s.NewSession()
	return s, nil
}

// NewSession restarts from the start level, cancelling any pending advance.
// This is the only way out of StatusAllCleared.
func (s *Sim) NewSession() {
	s.advance.Cancel()
	s.clearMessages()
	s.paused = false
	s.cleared = 0
	s.load(s.startIndex)
}

// ResetLevel reloads the current level. No-op once every level is cleared.
func (s *Sim) ResetLevel() {
	if s.state.Status == StatusAllCleared {
		return
	}
	s.advance.Cancel()
	s.clearMessages()
	s.load(s.state.LevelIndex)
}

// EmergencyReset snaps every entity back to its start position.
// No-op once every level is cleared.
func (s *Sim) EmergencyReset() {
	if s.state.Status == StatusAllCleared {
		return
	}
	for i := range s.state.Entities {
		e := &s.state.Entities[i]
		if p, ok := s.level.Start(e.ID); ok {
			e.Pos = p
		}
	}
	s.post(msgEmergency, MessageInfo, s.settings.Notice)
}

// ToggleMode switches between single and dual mode. A newly activated
// entity is placed on its start position. Switching to dual is refused on a
// level with a single start, and the mode is frozen once every level is cleared.
func (s *Sim) ToggleMode() {
	if s.state.Status == StatusAllCleared {
		return
	}
	if s.state.Mode == ModeSingle {
		if len(s.state.Entities) < 2 {
			s.post(msgOneStart, MessageWarning, s.settings.Notice)
			return
		}
		s.state.Mode = ModeDual
	} else {
		s.state.Mode = ModeSingle
	}
	for i := range s.state.Entities {
		e := &s.state.Entities[i]
		active := s.slotActive(e.ID)
		if active && !e.Active {
			if p, ok := s.level.Start(e.ID); ok {
				e.Pos = p
			}
		}
		e.Active = active
	}

	if s.state.Mode == ModeDual {
		s.post(msgDualMode, MessageInfo, s.settings.Notice)
	} else {
		s.post(msgSingleMode, MessageInfo, s.settings.Notice)
	}
}

// TogglePause pauses or resumes the simulation.
func (s *Sim) TogglePause() {
	s.paused = !s.paused
}

// Step advances the simulation by one tick using a snapshot of the input.
func (s *Sim) Step(in core.InputFrame) TickEvents {
	var ev TickEvents
	s.state.Tick++

	s.applyControls(in)
	if s.paused {
		return ev
	}

	s.board.Advance()
	if s.advance.Advance() {
		ev.Advanced = true
		return ev
	}

	if s.state.Status != StatusPlaying {
		return ev
	}

	for i := range s.state.Entities {
		e := &s.state.Entities[i]
		if !e.Active {
			continue
		}
		dx, dy := in.Intent(e.ID)
		e.Pos = s.resolver.Resolve(s.level, *e, dx, dy)
	}

	if s.anyTouching() {
		s.post(msgTouchingWall, MessageWarning, s.settings.TouchNotice)
	}

	if slot, ok := s.goalReachedBy(); ok {
		ev.Cleared = s.clearLevel(slot)
	}
	return ev
}

// applyControls runs one-shot session controls from the input frame.
func (s *Sim) applyControls(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		s.NewSession()
		return
	}
	if in.Has(core.ActionResetLevel) {
		s.ResetLevel()
	}
	if in.Has(core.ActionEmergency) {
		s.EmergencyReset()
	}
	if in.Has(core.ActionToggleMode) {
		s.ToggleMode()
	}
	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
}

// goalReachedBy returns the first active entity that reached the goal.
func (s *Sim) goalReachedBy() (core.SlotID, bool) {
	for _, e := range s.state.Entities {
		if e.Active && ReachedGoal(s.level, e) {
			return e.ID, true
		}
	}
	return 0, false
}

func (s *Sim) anyTouching() bool {
	for _, e := range s.state.Entities {
		if !e.Active {
			continue
		}
		box := e.Hitbox()
		for _, o := range s.level.obstacles {
			if core.Overlaps(box, o, s.settings.TouchTolerance) {
				return true
			}
		}
	}
	return false
}

// clearLevel moves to LevelCleared or AllCleared and schedules the advance.
func (s *Sim) clearLevel(slot core.SlotID) *ClearEvent {
	last := s.state.LevelIndex == len(s.levels)-1
	mode := ModeSingle
	if s.Dual() {
		mode = ModeDual
	}
	ev := &ClearEvent{
		LevelIndex: s.state.LevelIndex,
		LevelID:    s.level.ID(),
		Ticks:      s.state.Tick - s.levelTick,
		Mode:       mode,
		Slot:       slot,
		Last:       last,
	}
	s.cleared++

	if last {
		s.state.Status = StatusAllCleared
		s.advance.Cancel()
		s.post(msgAllCleared, MessageSuccess, 0)
	} else {
		s.state.Status = StatusLevelCleared
		s.post(msgGoalReached, MessageSuccess, 0)
		s.advance.Schedule(s.settings.AdvanceDelay, s.nextLevel)
	}
	return ev
}

// nextLevel loads the level after the current one.
func (s *Sim) nextLevel() {
	s.clearMessages()
	s.load(s.state.LevelIndex + 1)
}

// load installs the level at index with fresh entities.
// An out-of-range index here is a programming error.
func (s *Sim) load(index int) {
	level, err := LoadLevel(s.levels, index)
	if err != nil {
		panic(err)
	}

	s.level = level
	s.levelTick = s.state.Tick
	s.state.LevelIndex = index
	s.state.Status = StatusPlaying

	slots := core.Min(level.Slots(), core.MaxSlots)
	s.state.Entities = make([]Entity, slots)
	for i := 0; i < slots; i++ {
		id := core.SlotID(i)
		start, _ := level.Start(id)
		s.state.Entities[i] = Entity{
			ID:     id,
			Pos:    start,
			Size:   s.settings.EntitySize,
			Speed:  s.settings.Speed,
			Active: s.slotActive(id),
		}
	}
}

func (s *Sim) slotActive(id core.SlotID) bool {
	return id == core.Slot1 || s.state.Mode == ModeDual
}

func (s *Sim) post(text string, kind MessageKind, ttl int) {
	s.board.Post(text, kind, ttl)
	for _, sink := range s.sinks {
		sink.Post(text, kind, ttl)
	}
}

func (s *Sim) clearMessages() {
	s.board.Clear()
	for _, sink := range s.sinks {
		sink.Clear()
	}
}

// State returns a copy of the simulation state.
func (s *Sim) State() SimulationState {
	st := s.state
	st.Entities = append([]Entity(nil), s.state.Entities...)
	return st
}

// Level returns the level currently loaded.
func (s *Sim) Level() *Level { return s.level }

// LevelCount returns the number of levels in the catalog.
func (s *Sim) LevelCount() int { return len(s.levels) }

// Cleared returns how many levels were cleared this session.
func (s *Sim) Cleared() int { return s.cleared }

// Dual reports whether two entities are under control. A level with a
// single start keeps one entity even when the mode is dual.
func (s *Sim) Dual() bool {
	return s.state.Mode == ModeDual && len(s.state.Entities) > 1
}

// Paused reports whether the simulation is paused.
func (s *Sim) Paused() bool { return s.paused }

// AdvancePending reports whether a level advance is scheduled.
func (s *Sim) AdvancePending() bool { return s.advance.Pending() }

// Message returns the status message on display, if any.
func (s *Sim) Message() (Message, bool) { return s.board.Current() }

// Settings returns the simulation settings.
func (s *Sim) Settings() Settings { return s.settings }
