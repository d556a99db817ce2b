package maze

// Snapshot contains the complete simulation state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	LevelIndex int
	LevelTick  uint64
	Mode       int
	Status     int
	Cleared    int
	Paused     bool

	// Entity state (each entity is 4 ints: Slot, X, Y, Active)
	EntityData []int

	// Pending advance, 0 when nothing is scheduled
	AdvanceRemaining int
}

// Snapshot returns the current simulation state as a Snapshot.
func (s *Sim) Snapshot() Snapshot {
	entityData := make([]int, len(s.state.Entities)*4)
	for i, e := range s.state.Entities {
		idx := i * 4
		entityData[idx] = int(e.ID)
		entityData[idx+1] = e.Pos.X
		entityData[idx+2] = e.Pos.Y
		if e.Active {
			entityData[idx+3] = 1
		}
	}

	snap := Snapshot{
		Tick:       s.state.Tick,
		LevelIndex: s.state.LevelIndex,
		LevelTick:  s.levelTick,
		Mode:       int(s.state.Mode),
		Status:     int(s.state.Status),
		Cleared:    s.cleared,
		Paused:     s.paused,
		EntityData: entityData,
	}
	if s.advance.Pending() {
		snap.AdvanceRemaining = s.advance.Remaining()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.LevelIndex) //#nosec G115 -- hash computation
	h = h*31 + snap.LevelTick
	h = h*31 + uint64(snap.Mode)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Status)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cleared) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.AdvanceRemaining) //#nosec G115 -- hash computation

	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
