package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Visual characters for rendering
const (
	WallChar   = '█'
	GoalChar   = '◎'
	Player1    = '@'
	Player2    = '&'
	hudHeight  = 2 // Status line + message line
	minArenaW  = 16
	minArenaH  = 6
	borderSize = 2
)

var slotGlyphs = [core.MaxSlots]struct {
	r rune
	c core.Color
}{
	{Player1, core.ColorBrightCyan},
	{Player2, core.ColorBrightMagenta},
}

// projection maps arena units onto terminal cells.
type projection struct {
	offX, offY     int // Screen cell of arena origin
	scaleX, scaleY int // Arena units per cell
	cellsW, cellsH int // Arena size in cells
}

func newProjection(bounds core.Size, screenW, screenH int) (projection, bool) {
	availW := screenW - borderSize
	availH := screenH - hudHeight - borderSize
	if availW < minArenaW || availH < minArenaH {
		return projection{}, false
	}

	p := projection{
		scaleX: ceilDiv(bounds.W, availW),
		scaleY: ceilDiv(bounds.H, availH),
	}
	p.cellsW = ceilDiv(bounds.W, p.scaleX)
	p.cellsH = ceilDiv(bounds.H, p.scaleY)
	p.offX = (screenW - p.cellsW) / 2
	p.offY = hudHeight + 1
	return p, true
}

// rect projects an arena rectangle, rounding outward so thin walls stay visible.
func (p projection) rect(r core.Rect) core.Rect {
	x0 := r.X / p.scaleX
	y0 := r.Y / p.scaleY
	x1 := ceilDiv(r.Right(), p.scaleX)
	y1 := ceilDiv(r.Bottom(), p.scaleY)
	return core.NewRect(p.offX+x0, p.offY+y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// point projects the center of a square of the given side.
func (p projection) point(pt core.Point, side int) (int, int) {
	cx := (pt.X + side/2) / p.scaleX
	cy := (pt.Y + side/2) / p.scaleY
	return p.offX + core.Clamp(cx, 0, p.cellsW-1), p.offY + core.Clamp(cy, 0, p.cellsH-1)
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderOverlay(dst, "Invalid level data", "Run 'maze validate "+g.id+"' for details")
		return
	}
	if g.sim == nil {
		return
	}

	st := g.sim.State()
	level := g.sim.Level()

	g.renderHUD(dst, st)

	proj, ok := newProjection(level.Bounds(), dst.Width(), dst.Height())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	// Arena border
	dst.DrawBox(core.NewRect(proj.offX-1, proj.offY-1, proj.cellsW+2, proj.cellsH+2))

	for _, o := range level.obstacles {
		dst.DrawRectColored(proj.rect(o), WallChar, core.ColorGray)
	}

	gx, gy := proj.point(level.Goal(), g.settings.EntitySize)
	dst.SetColored(gx, gy, GoalChar, core.ColorBrightYellow)

	for _, e := range st.Entities {
		if !e.Active {
			continue
		}
		x, y := proj.point(e.Pos, e.Size)
		glyph := slotGlyphs[int(e.ID)%core.MaxSlots]
		dst.SetColored(x, y, glyph.r, glyph.c)
	}

	// Draw overlays
	switch {
	case st.Status == StatusAllCleared:
		g.renderOverlay(dst, "All levels cleared!", "Press N for a new session")
	case st.Status == StatusLevelCleared:
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", st.LevelIndex+1), "Next: "+g.nextLevelName(st.LevelIndex))
	case g.sim.Paused():
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line and the message line.
func (g *Game) renderHUD(dst *core.Screen, st SimulationState) {
	level := g.sim.Level()
	name := level.Name()
	if name == "" {
		name = level.ID()
	}
	seconds := float64(st.Tick-g.sim.levelTick) / float64(g.ticksPerSecond())
	hud := fmt.Sprintf(" %s — Level %d/%d: %s  Mode: %s  Time: %.1fs",
		g.title, st.LevelIndex+1, g.sim.LevelCount(), name, st.Mode, seconds)
	dst.DrawText(0, 0, hud)

	msg, ok := g.sim.Message()
	if !ok {
		return
	}
	color := core.ColorWhite
	switch msg.Kind {
	case MessageWarning:
		color = core.ColorOrange
	case MessageSuccess:
		color = core.ColorBrightGreen
	}
	dst.DrawTextCenteredColored(1, msg.Text, color)
}

func (g *Game) nextLevelName(index int) string {
	if index+1 >= len(g.levels) {
		return ""
	}
	next := g.levels[index+1]
	if next.Name() != "" {
		return next.Name()
	}
	return next.ID()
}

func (g *Game) ticksPerSecond() int {
	if g.tickRate > 0 {
		return g.tickRate
	}
	return 60
}

// renderOverlay draws a centered two-line box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := core.Max(len([]rune(title)), len([]rune(subtitle))) + 6
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	dst.DrawRect(core.NewRect(x, y, w, h), ' ')
	dst.DrawBox(core.NewRect(x, y, w, h))
	dst.DrawTextCenteredColored(y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(y+3, subtitle)
}
