package maze

// Timer is a tick-counted one-shot action.
// It fires at most once per Schedule and can be cancelled before it fires.
type Timer struct {
	remaining int
	action    func()
}

// Schedule arranges for fn to run after the given number of Advance calls.
// Any previously scheduled action is replaced.
func (t *Timer) Schedule(ticks int, fn func()) {
	if ticks < 1 {
		ticks = 1
	}
	t.remaining = ticks
	t.action = fn
}

// Cancel drops the pending action, if any.
func (t *Timer) Cancel() {
	t.remaining = 0
	t.action = nil
}

// Pending reports whether an action is waiting to fire.
func (t *Timer) Pending() bool {
	return t.action != nil
}

// Remaining returns the number of ticks left before the action fires.
func (t *Timer) Remaining() int {
	return t.remaining
}

// Advance counts down one tick and runs the action when it is due.
// Returns true if the action fired.
func (t *Timer) Advance() bool {
	if t.action == nil {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}
	fn := t.action
	t.action = nil
	t.remaining = 0
	fn()
	return true
}
