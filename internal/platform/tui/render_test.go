package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func TestPainterPlainOutput(t *testing.T) {
	// A renderer without a terminal strips colors
	p := NewPainter(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(6, 2)
	s.SetColored(0, 0, '@', core.ColorBrightCyan)
	s.SetColored(1, 0, '&', core.ColorBrightMagenta)
	s.DrawTextColored(2, 1, "◎◎", core.ColorBrightYellow)

	if got, want := p.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, expected %q", got, want)
	}
}
