// Package export renders a drawing to PDF, viewed straight on to the
// drawing surface.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"HandSketch/internal/state"
)

const (
	pageW  = 297.0 // A4 landscape, mm
	pageH  = 210.0
	margin = 10.0
)

// Page maps surface-local metres onto the page.
type Page struct {
	Width, Height float32 // surface size in metres
}

func (pg Page) scale() float64 {
	sx := (pageW - 2*margin) / float64(pg.Width)
	sy := (pageH - 2*margin) / float64(pg.Height)
	return min(sx, sy)
}

// toPage converts a local point (origin at the surface centre, Y up) to
// page millimetres (origin top-left, Y down).
func (pg Page) toPage(x, y float32) (float64, float64) {
	s := pg.scale()
	return pageW/2 + float64(x)*s, pageH/2 - float64(y)*s
}

func render(strokes []state.Record, pg Page) (*gofpdf.Fpdf, error) {
	if pg.Width <= 0 || pg.Height <= 0 {
		return nil, fmt.Errorf("export: surface size %gx%g", pg.Width, pg.Height)
	}
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("HandSketch drawing", true)
	p.AddPage()
	p.SetLineWidth(0.6)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	// surface outline
	p.SetDrawColor(200, 200, 200)
	x0, y0 := pg.toPage(-pg.Width/2, pg.Height/2)
	x1, y1 := pg.toPage(pg.Width/2, -pg.Height/2)
	p.Rect(x0, y0, x1-x0, y1-y0, "D")

	for _, st := range strokes {
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		if len(st.Points) == 1 {
			x, y := pg.toPage(st.Points[0].X(), st.Points[0].Y())
			p.SetFillColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
			p.Circle(x, y, 0.3, "F")
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			ax, ay := pg.toPage(st.Points[i-1].X(), st.Points[i-1].Y())
			bx, by := pg.toPage(st.Points[i].X(), st.Points[i].Y())
			p.Line(ax, ay, bx, by)
		}
	}
	return p, p.Error()
}

// PDF writes strokes to path.
func PDF(path string, strokes []state.Record, pg Page) error {
	p, err := render(strokes, pg)
	if err != nil {
		return err
	}
	return p.OutputFileAndClose(path)
}

// WritePDF writes strokes to w.
func WritePDF(w io.Writer, strokes []state.Record, pg Page) error {
	p, err := render(strokes, pg)
	if err != nil {
		return err
	}
	return p.Output(w)
}
