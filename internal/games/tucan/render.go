package tucan

import (
	"math"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/scene"
)

// Render draws the scene into dst. Scene points are scaled to the screen
// size; scene y grows upwards, screen rows grow downwards.
func (g *Game) Render(dst *core.Screen) {
	w := g.world
	p := newProjection(w.Size(), dst.Width(), dst.Height())

	dst.SetBackground(w.scene.Background)
	dst.Clear()

	// Segments only cover the band while they line up; paint it whole first.
	ground := w.scroller.frame
	paintFrame(dst, p.rect(0, 0, w.Size().X, ground.Height), ground)

	for _, n := range w.scene.Root().Drawables() {
		f, err := g.frames.Frame(n.Frame)
		if err != nil {
			continue
		}
		drawNode(dst, p, n, f)
	}

	g.drawHUD(dst)
}

func (g *Game) drawHUD(dst *core.Screen) {
	switch {
	case g.paused:
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
		dst.DrawTextCentered(dst.Height()/2+1, " press p to resume ")
	case g.machine.Phase() == PhaseGameOver:
		dst.DrawTextCentered(dst.Height()/2-1, " GAME OVER ")
		dst.DrawTextCentered(dst.Height()/2, " hit the "+g.machine.LastHit().String()+" ")
		dst.DrawTextCentered(dst.Height()/2+1, " tap to fly again ")
	}
}

// projection maps scene points to screen cells.
type projection struct {
	sx, sy float64
	sceneH float64
}

func newProjection(size core.Vec2, cols, rows int) projection {
	p := projection{sceneH: size.Y}
	if size.X > 0 {
		p.sx = float64(cols) / size.X
	}
	if size.Y > 0 {
		p.sy = float64(rows) / size.Y
	}
	return p
}

func (p projection) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

func (p projection) row(y float64) int {
	return int(math.Floor((p.sceneH - y) * p.sy))
}

// rect returns the cells covered by the scene box with bottom-left (x, y).
// Non-empty boxes cover at least one cell.
func (p projection) rect(x, y, w, h float64) core.Rect {
	left, right := p.col(x), p.col(x+w)
	top, bottom := p.row(y+h), p.row(y)
	if right <= left {
		right = left + 1
	}
	if bottom <= top {
		bottom = top + 1
	}
	return core.NewRect(left, top, right-left, bottom-top)
}

func drawNode(dst *core.Screen, p projection, n *scene.Node, f assets.Frame) {
	pos := n.WorldPosition()
	if len(f.Glyphs) > 0 {
		cx, cy := p.col(pos.X), p.row(pos.Y)
		top := cy - len(f.Glyphs)/2
		for i, line := range f.Glyphs {
			runes := []rune(line)
			left := cx - len(runes)/2
			for j, r := range runes {
				if r == ' ' {
					continue
				}
				dst.SetColored(left+j, top+i, r, f.Color)
			}
		}
		return
	}
	box := p.rect(pos.X-f.Width/2, pos.Y-f.Height/2, f.Width, f.Height)
	paintFrame(dst, box, f)
}

func paintFrame(dst *core.Screen, box core.Rect, f assets.Frame) {
	if f.Background != core.ColorDefault {
		dst.PaintRect(box, f.Background)
	}
	if f.Fill != 0 {
		dst.DrawRect(box, f.Fill, f.Color)
	}
	if f.Cap == 0 {
		return
	}
	switch f.CapSide {
	case assets.CapTop:
		dst.DrawHLine(box.X, box.Y, box.W, f.Cap, f.Color)
	case assets.CapBottom:
		dst.DrawHLine(box.X, box.Bottom()-1, box.W, f.Cap, f.Color)
	}
}
