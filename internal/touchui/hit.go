package touchui

import (
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
)

// Button is an axis-aligned rectangle in screen space.
type Button struct {
	ID       Target
	Min, Max mgl32.Vec2
}

func (b Button) Contains(p mgl32.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// RectHitTester hit-tests a flat list of buttons. Earlier buttons are
// treated as nearer.
type RectHitTester struct {
	Buttons []Button
}

func (r RectHitTester) RaycastScreenPoint(p mgl32.Vec2) []Target {
	var out []Target
	for _, b := range r.Buttons {
		if b.Contains(p) {
			out = append(out, b.ID)
		}
	}
	return out
}

// StackedButtons lays ids out top to bottom across a panel, in the
// panel-local screen space PanelProjector produces, leaving gap metres
// between neighbours.
func StackedButtons(panel geom.Surface, gap float32, ids ...Target) RectHitTester {
	if len(ids) == 0 {
		return RectHitTester{}
	}
	h := panel.HalfExtents()
	n := float32(len(ids))
	slot := (2*h.Y() - gap*(n-1)) / n
	buttons := make([]Button, len(ids))
	top := h.Y()
	for i, id := range ids {
		buttons[i] = Button{
			ID:  id,
			Min: mgl32.Vec2{-h.X(), top - slot},
			Max: mgl32.Vec2{h.X(), top},
		}
		top -= slot + gap
	}
	return RectHitTester{Buttons: buttons}
}
