package maze

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// sprintLevel has the goal 30 units right of slot 1, reached on the third tick of holding right.
func sprintLevel(id string) *Level {
	return MustLevel(id, "Sprint "+id, core.Size{W: 200, H: 100},
		nil,
		[]core.Point{{X: 0, Y: 0}, {X: 0, Y: 60}},
		core.Point{X: 30, Y: 0},
	)
}

func testSettings() Settings {
	s := DefaultSettings()
	s.AdvanceDelay = 3
	s.TouchNotice = 2
	s.Notice = 4
	return s
}

func newTestSim(t *testing.T, levels []*Level, opts ...Option) *Sim {
	t.Helper()
	s, err := NewSim(levels, testSettings(), opts...)
	if err != nil {
		t.Fatalf("NewSim failed: %v", err)
	}
	return s
}

func holding(slot core.SlotID, actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(slot, a)
	}
	return in
}

func pressing(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// stepUntilCleared holds right for slot until a level is cleared or the limit is hit.
func stepUntilCleared(t *testing.T, s *Sim, slot core.SlotID, limit int) TickEvents {
	t.Helper()
	for i := 0; i < limit; i++ {
		ev := s.Step(holding(slot, core.ActionRight))
		if ev.Cleared != nil {
			return ev
		}
	}
	t.Fatalf("no level cleared within %d ticks", limit)
	return TickEvents{}
}

func TestNewSimInitialState(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a"), sprintLevel("b")})

	st := s.State()
	if st.LevelIndex != 0 || st.Status != StatusPlaying || st.Mode != ModeSingle {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if len(st.Entities) != 2 {
		t.Fatalf("expected 2 entity slots, got %d", len(st.Entities))
	}
	if !st.Entities[0].Active || st.Entities[1].Active {
		t.Error("single mode should activate slot 1 only")
	}
	if st.Entities[1].Pos != (core.Point{X: 0, Y: 60}) {
		t.Errorf("slot 2 start = %v, expected (0,60)", st.Entities[1].Pos)
	}
}

func TestNewSimRejectsBadStartLevel(t *testing.T) {
	levels := []*Level{sprintLevel("a")}

	_, err := NewSim(levels, testSettings(), WithStartLevel(1))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("NewSim with start level 1 of 1: error = %v, expected ErrIndexOutOfRange", err)
	}
}

func TestStepMovesActiveEntitiesOnly(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a")})

	in := holding(core.Slot1, core.ActionDown)
	in.Hold(core.Slot2, core.ActionRight)
	s.Step(in)

	st := s.State()
	if st.Entities[0].Pos != (core.Point{X: 0, Y: 5}) {
		t.Errorf("slot 1 = %v, expected (0,5)", st.Entities[0].Pos)
	}
	if st.Entities[1].Pos != (core.Point{X: 0, Y: 60}) {
		t.Errorf("inactive slot 2 moved to %v", st.Entities[1].Pos)
	}
}

func TestStepIsIdempotentWithoutInput(t *testing.T) {
	s := newTestSim(t, []*Level{wallLevel()})
	before := s.State()

	for i := 0; i < 50; i++ {
		s.Step(core.NewInputFrame())
	}

	after := s.State()
	for i := range before.Entities {
		if before.Entities[i].Pos != after.Entities[i].Pos {
			t.Errorf("entity %d moved without input: %v -> %v", i, before.Entities[i].Pos, after.Entities[i].Pos)
		}
	}
	if after.Status != StatusPlaying {
		t.Errorf("status = %v, expected playing", after.Status)
	}
}

func TestLevelClearSchedulesAdvance(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a"), sprintLevel("b")})

	ev := stepUntilCleared(t, s, core.Slot1, 10)
	if ev.Cleared.LevelID != "a" || ev.Cleared.Last {
		t.Errorf("unexpected clear event: %+v", ev.Cleared)
	}
	if ev.Cleared.Ticks != 3 {
		t.Errorf("clear took %d ticks, expected 3", ev.Cleared.Ticks)
	}
	if s.State().Status != StatusLevelCleared {
		t.Fatalf("status = %v, expected level_cleared", s.State().Status)
	}
	if !s.AdvancePending() {
		t.Fatal("advance should be pending after a non-final clear")
	}
	if msg, ok := s.Message(); !ok || msg.Text != msgGoalReached {
		t.Errorf("message = %q, expected %q", msg.Text, msgGoalReached)
	}

	// Movement is frozen while the advance is pending
	pos := s.State().Entities[0].Pos
	s.Step(holding(core.Slot1, core.ActionRight))
	if s.State().Entities[0].Pos != pos {
		t.Error("entity moved during level-cleared pause")
	}

	s.Step(core.NewInputFrame())
	next := s.Step(core.NewInputFrame())
	if !next.Advanced {
		t.Fatal("expected the advance to fire on the third tick")
	}

	st := s.State()
	if st.LevelIndex != 1 || st.Status != StatusPlaying {
		t.Errorf("after advance: level %d status %v, expected level 1 playing", st.LevelIndex, st.Status)
	}
	if st.Entities[0].Pos != (core.Point{X: 0, Y: 0}) {
		t.Errorf("entity not placed at the new start: %v", st.Entities[0].Pos)
	}
	if _, ok := s.Message(); ok {
		t.Error("messages should be cleared when the next level loads")
	}
}

func TestLastLevelClearIsTerminal(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a")})

	ev := stepUntilCleared(t, s, core.Slot1, 10)
	if !ev.Cleared.Last {
		t.Error("clear of the only level should be marked last")
	}
	if s.State().Status != StatusAllCleared {
		t.Fatalf("status = %v, expected all_cleared", s.State().Status)
	}
	if s.AdvancePending() {
		t.Fatal("no advance should be scheduled after the last level")
	}

	// Neither time, movement nor a level reset leaves the terminal state
	for i := 0; i < 20; i++ {
		s.Step(holding(core.Slot1, core.ActionLeft))
	}
	s.Step(pressing(core.ActionResetLevel))
	if s.State().Status != StatusAllCleared {
		t.Fatalf("status = %v after reset, expected all_cleared", s.State().Status)
	}
	if msg, ok := s.Message(); !ok || msg.Text != msgAllCleared {
		t.Errorf("completion message = %q, expected %q", msg.Text, msgAllCleared)
	}

	s.Step(pressing(core.ActionRestart))
	st := s.State()
	if st.Status != StatusPlaying || st.LevelIndex != 0 || s.Cleared() != 0 {
		t.Errorf("after new session: %+v cleared=%d", st, s.Cleared())
	}
}

func TestResetLevelCancelsAdvance(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a"), sprintLevel("b")})

	stepUntilCleared(t, s, core.Slot1, 10)
	s.Step(pressing(core.ActionResetLevel))

	if s.AdvancePending() {
		t.Fatal("reset should cancel the pending advance")
	}
	for i := 0; i < 10; i++ {
		if ev := s.Step(core.NewInputFrame()); ev.Advanced {
			t.Fatal("cancelled advance fired")
		}
	}

	st := s.State()
	if st.LevelIndex != 0 || st.Status != StatusPlaying {
		t.Errorf("after reset: level %d status %v, expected level 0 playing", st.LevelIndex, st.Status)
	}
	if st.Entities[0].Pos != (core.Point{X: 0, Y: 0}) {
		t.Errorf("entity = %v, expected start position", st.Entities[0].Pos)
	}
}

func TestEmergencyReset(t *testing.T) {
	s := newTestSim(t, []*Level{wallLevel()})

	for i := 0; i < 4; i++ {
		s.Step(holding(core.Slot1, core.ActionDown))
	}
	if s.State().Entities[0].Pos == (core.Point{X: 40, Y: 40}) {
		t.Fatal("entity should have moved")
	}

	s.Step(pressing(core.ActionEmergency))
	if got := s.State().Entities[0].Pos; got != (core.Point{X: 40, Y: 40}) {
		t.Errorf("after emergency reset: %v, expected (40,40)", got)
	}
	msg, ok := s.Message()
	if !ok || msg.Text != msgEmergency || msg.Kind != MessageInfo {
		t.Errorf("message = %+v, expected emergency notice", msg)
	}
}

func TestToggleMode(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a")})

	s.Step(pressing(core.ActionToggleMode))
	st := s.State()
	if st.Mode != ModeDual {
		t.Fatalf("mode = %v, expected Dual", st.Mode)
	}
	if !st.Entities[1].Active || st.Entities[1].Pos != (core.Point{X: 0, Y: 60}) {
		t.Errorf("slot 2 = %+v, expected active at its start", st.Entities[1])
	}
	if msg, _ := s.Message(); msg.Text != msgDualMode {
		t.Errorf("message = %q, expected %q", msg.Text, msgDualMode)
	}

	s.Step(pressing(core.ActionToggleMode))
	if st := s.State(); st.Mode != ModeSingle || st.Entities[1].Active {
		t.Errorf("after second toggle: %+v", st)
	}
}

func TestToggleModeNeedsTwoStarts(t *testing.T) {
	solo := MustLevel("solo", "", core.Size{W: 200, H: 100},
		nil,
		[]core.Point{{X: 0, Y: 0}},
		core.Point{X: 150, Y: 0},
	)
	s := newTestSim(t, []*Level{solo})

	s.Step(pressing(core.ActionToggleMode))
	st := s.State()
	if st.Mode != ModeSingle || s.Dual() {
		t.Fatalf("mode = %v dual=%v, expected single on a one-start level", st.Mode, s.Dual())
	}
	if msg, _ := s.Message(); msg.Text != msgOneStart || msg.Kind != MessageWarning {
		t.Errorf("message = %+v, expected one-start warning", msg)
	}

	// The lone entity still answers to slot 1
	s.Step(holding(core.Slot1, core.ActionRight))
	if got := s.State().Entities[0].Pos; got != (core.Point{X: 5, Y: 0}) {
		t.Errorf("entity = %v, expected (5,0)", got)
	}
}

func TestDualModeOnOneStartLevel(t *testing.T) {
	solo := MustLevel("solo", "", core.Size{W: 200, H: 100},
		nil,
		[]core.Point{{X: 0, Y: 0}},
		core.Point{X: 150, Y: 0},
	)
	s := newTestSim(t, []*Level{solo}, WithMode(ModeDual))

	if s.Dual() {
		t.Error("a one-start level should not report two players")
	}
	if len(s.State().Entities) != 1 || !s.State().Entities[0].Active {
		t.Errorf("entities = %+v, expected one active entity", s.State().Entities)
	}
}

func TestAllClearedFreezesControls(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a")})
	stepUntilCleared(t, s, core.Slot1, 10)

	before := s.State()
	s.Step(pressing(core.ActionEmergency))
	s.Step(pressing(core.ActionToggleMode))
	after := s.State()

	if after.Mode != before.Mode {
		t.Errorf("mode changed to %v after all levels were cleared", after.Mode)
	}
	for i := range before.Entities {
		if after.Entities[i] != before.Entities[i] {
			t.Errorf("entity %d changed from %+v to %+v", i, before.Entities[i], after.Entities[i])
		}
	}
	if msg, _ := s.Message(); msg.Text != msgAllCleared {
		t.Errorf("message = %q, expected the completion message to stay", msg.Text)
	}
}

func TestDualModeEitherEntityClears(t *testing.T) {
	level := MustLevel("dual", "", core.Size{W: 200, H: 100},
		nil,
		[]core.Point{{X: 0, Y: 0}, {X: 0, Y: 60}},
		core.Point{X: 30, Y: 60},
	)
	s := newTestSim(t, []*Level{level}, WithMode(ModeDual))

	ev := stepUntilCleared(t, s, core.Slot2, 10)
	if ev.Cleared.Slot != core.Slot2 {
		t.Errorf("cleared by %v, expected Player 2", ev.Cleared.Slot)
	}
	if ev.Cleared.Mode != ModeDual {
		t.Errorf("clear mode = %v, expected Dual", ev.Cleared.Mode)
	}
}

func TestTouchingWallNotice(t *testing.T) {
	level := MustLevel("touch", "", core.Size{W: 400, H: 300},
		[]core.Rect{core.NewRect(100, 0, 20, 180)},
		[]core.Point{{X: 76, Y: 40}},
		core.Point{X: 360, Y: 260},
	)
	s := newTestSim(t, []*Level{level})

	s.Step(holding(core.Slot1, core.ActionRight))
	if got := s.State().Entities[0].Pos; got != (core.Point{X: 81, Y: 40}) {
		t.Fatalf("entity = %v, expected (81,40)", got)
	}
	msg, ok := s.Message()
	if !ok || msg.Text != msgTouchingWall || msg.Kind != MessageWarning {
		t.Fatalf("message = %+v, expected touching warning", msg)
	}

	// Backing off lets the notice expire
	s.Step(holding(core.Slot1, core.ActionLeft))
	s.Step(core.NewInputFrame())
	s.Step(core.NewInputFrame())
	if _, ok := s.Message(); ok {
		t.Error("touching notice should have expired")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSim(t, []*Level{sprintLevel("a")})

	s.Step(pressing(core.ActionPause))
	if !s.Paused() {
		t.Fatal("expected paused")
	}
	for i := 0; i < 5; i++ {
		s.Step(holding(core.Slot1, core.ActionRight))
	}
	if got := s.State().Entities[0].Pos; got != (core.Point{X: 0, Y: 0}) {
		t.Errorf("entity moved while paused: %v", got)
	}

	s.Step(pressing(core.ActionPause))
	s.Step(holding(core.Slot1, core.ActionRight))
	if got := s.State().Entities[0].Pos; got != (core.Point{X: 5, Y: 0}) {
		t.Errorf("entity = %v after resume, expected (5,0)", got)
	}
}

func TestMessageSinkReceivesPosts(t *testing.T) {
	sink := &recordingSink{}
	s := newTestSim(t, []*Level{wallLevel()}, WithSink(sink))

	s.Step(pressing(core.ActionEmergency))
	s.Step(pressing(core.ActionResetLevel))

	if len(sink.posts) != 1 || sink.posts[0] != msgEmergency {
		t.Errorf("sink posts = %v", sink.posts)
	}
	// NewSession and ResetLevel both clear
	if sink.clears != 2 {
		t.Errorf("sink clears = %d, expected 2", sink.clears)
	}
}

type recordingSink struct {
	posts  []string
	clears int
}

func (r *recordingSink) Post(text string, _ MessageKind, _ int) { r.posts = append(r.posts, text) }
func (r *recordingSink) Clear()                                 { r.clears++ }

func TestSimDeterminism(t *testing.T) {
	levels := []*Level{mazeLevel(), sprintLevel("b")}

	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%40 < 15:
			inputs[i].Hold(core.Slot1, core.ActionDown)
		case i%40 < 30:
			inputs[i].Hold(core.Slot1, core.ActionRight)
		default:
			inputs[i].Hold(core.Slot1, core.ActionUp)
			inputs[i].Hold(core.Slot2, core.ActionRight)
		}
		if i == 100 {
			inputs[i].Set(core.ActionToggleMode)
		}
		if i == 200 {
			inputs[i].Set(core.ActionEmergency)
		}
	}

	run := func() Snapshot {
		s := newTestSim(t, levels)
		for _, in := range inputs {
			s.Step(in)
		}
		return s.Snapshot()
	}

	snap1 := run()
	snap2 := run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != 300 {
		t.Errorf("Tick = %d, expected 300", snap1.Tick)
	}
}
