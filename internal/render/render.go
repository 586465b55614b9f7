package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
)

// Renderable is one line's visual representation as provided by the
// rendering backend. Points are in the drawing surface's local space.
type Renderable interface {
	SetActive(active bool)
	SetPointCount(n int)
	SetPoint(i int, p mgl32.Vec3)
	SetColor(c geom.Color)
	// Destroy permanently frees the backend resource.
	Destroy()
}

// Line is an in-memory Renderable used by headless sessions and tests.
type Line struct {
	ID        int
	Active    bool
	Destroyed bool
	Color     geom.Color
	Points    []mgl32.Vec3
}

var _ Renderable = (*Line)(nil)

func (l *Line) SetActive(active bool) { l.Active = active }

func (l *Line) SetPointCount(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(l.Points) {
		l.Points = l.Points[:n]
		return
	}
	l.Points = append(l.Points, make([]mgl32.Vec3, n-len(l.Points))...)
}

func (l *Line) SetPoint(i int, p mgl32.Vec3) {
	if i < 0 || i >= len(l.Points) {
		return
	}
	l.Points[i] = p
}

func (l *Line) SetColor(c geom.Color) { l.Color = c }

func (l *Line) Destroy() {
	l.Active = false
	l.Destroyed = true
	l.Points = nil
}

// LineFactory hands out numbered Lines and remembers every one it made.
type LineFactory struct {
	Made []*Line
}

func (f *LineFactory) New() *Line {
	l := &Line{ID: len(f.Made) + 1}
	f.Made = append(f.Made, l)
	return l
}

// NewRenderable adapts New to the factory signature the pool expects.
func (f *LineFactory) NewRenderable() Renderable {
	return f.New()
}
