package ui

import (
	"fyne.io/fyne/v2/canvas"
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
	"HandSketch/internal/render"
)

const strokeWidth = 3

// canvasLine draws a polyline as a run of canvas.Line segments on the
// board.
type canvasLine struct {
	board    *BoardWidget
	points   []mgl32.Vec3
	segments []*canvas.Line
	color    geom.Color
	visible  bool
	gone     bool
}

var _ render.Renderable = (*canvasLine)(nil)

func (l *canvasLine) SetActive(active bool) {
	l.visible = active
	for _, s := range l.segments {
		if active {
			s.Show()
		} else {
			s.Hide()
		}
	}
}

func (l *canvasLine) SetPointCount(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(l.points) {
		l.points = l.points[:n]
	} else {
		l.points = append(l.points, make([]mgl32.Vec3, n-len(l.points))...)
	}
	want := max(n-1, 0)
	for len(l.segments) > want {
		last := l.segments[len(l.segments)-1]
		l.board.content.Remove(last)
		l.segments = l.segments[:len(l.segments)-1]
	}
	for len(l.segments) < want {
		s := canvas.NewLine(l.color.NRGBA())
		s.StrokeWidth = strokeWidth
		if !l.visible {
			s.Hide()
		}
		l.board.content.Add(s)
		l.segments = append(l.segments, s)
	}
}

func (l *canvasLine) SetPoint(i int, p mgl32.Vec3) {
	if i < 0 || i >= len(l.points) {
		return
	}
	l.points[i] = p
	if i > 0 {
		l.placeSegment(i - 1)
	}
	if i < len(l.segments) {
		l.placeSegment(i)
	}
}

func (l *canvasLine) SetColor(c geom.Color) {
	l.color = c
	for _, s := range l.segments {
		s.StrokeColor = c.NRGBA()
		s.Refresh()
	}
}

func (l *canvasLine) Destroy() {
	for _, s := range l.segments {
		l.board.content.Remove(s)
	}
	l.segments = nil
	l.points = nil
	l.gone = true
	for i, other := range l.board.lines {
		if other == l {
			l.board.lines = append(l.board.lines[:i], l.board.lines[i+1:]...)
			break
		}
	}
}

func (l *canvasLine) placeSegment(i int) {
	s := l.segments[i]
	s.Position1 = l.board.toPixel(l.points[i])
	s.Position2 = l.board.toPixel(l.points[i+1])
	s.Refresh()
}

func (l *canvasLine) layout() {
	for i := range l.segments {
		l.placeSegment(i)
	}
}
