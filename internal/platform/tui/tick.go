// Package tui provides the Bubble Tea integration for the maze game.
// It handles the terminal UI loop, held-key input, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
// Gen identifies the tick loop so a game model ignores ticks left over from
// an earlier game in the same session.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick loop identifier.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
// The next tick is only requested once the current one has been handled.
func tickCmd(gen uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
