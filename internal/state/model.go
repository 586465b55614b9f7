package state

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
	"HandSketch/internal/render"
)

// Stroke is one continuous polyline drawn in a single colour. Points are
// local to the drawing surface and only ever appended.
type Stroke struct {
	ID      string
	Color   geom.Color
	Created time.Time

	points    []mgl32.Vec3
	line      render.Renderable
	finalized bool
}

// NewStroke binds a fresh stroke to the renderable that will display it.
func NewStroke(line render.Renderable, c geom.Color) *Stroke {
	line.SetColor(c)
	line.SetPointCount(0)
	return &Stroke{
		ID:      NewStrokeID(),
		Color:   c,
		Created: time.Now(),
		line:    line,
	}
}

// Append adds p to the stroke and its renderable. It returns false once
// the stroke has been finalized.
func (s *Stroke) Append(p mgl32.Vec3) bool {
	if s.finalized {
		return false
	}
	s.points = append(s.points, p)
	n := len(s.points)
	s.line.SetPointCount(n)
	s.line.SetPoint(n-1, p)
	return true
}

// Fill replaces the stroke's points wholesale, used when loading a saved
// drawing. The stroke is finalized afterwards.
func (s *Stroke) Fill(points []mgl32.Vec3) {
	s.points = append(s.points[:0], points...)
	s.line.SetPointCount(len(s.points))
	for i, p := range s.points {
		s.line.SetPoint(i, p)
	}
	s.finalized = true
}

func (s *Stroke) Finalize() { s.finalized = true }

func (s *Stroke) Finalized() bool { return s.finalized }

func (s *Stroke) Len() int { return len(s.points) }

// Last returns the last committed point.
func (s *Stroke) Last() (mgl32.Vec3, bool) {
	if len(s.points) == 0 {
		return mgl32.Vec3{}, false
	}
	return s.points[len(s.points)-1], true
}

// Points returns a copy of the stroke's points.
func (s *Stroke) Points() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(s.points))
	copy(out, s.points)
	return out
}

// Line is the renderable currently owned by the stroke.
func (s *Stroke) Line() render.Renderable { return s.line }

// Record is the plain shape of a stroke: what gets saved and loaded.
type Record struct {
	Color  geom.Color
	Points []mgl32.Vec3
}

// Record snapshots the stroke.
func (s *Stroke) Record() Record {
	return Record{Color: s.Color, Points: s.Points()}
}
