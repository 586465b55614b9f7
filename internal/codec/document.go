// Package codec converts strokes to and from the saved drawing document.
//
// The document is flat JSON with no version field:
//
//	{"strokes": [{"color": {"r": 255, "g": 0, "b": 0, "a": 255},
//	              "points": [{"x": 0, "y": 0.1, "z": 0}]}]}
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
	"HandSketch/internal/state"
)

type Document struct {
	Strokes []StrokeDoc `json:"strokes"`
}

type StrokeDoc struct {
	Color  ColorDoc   `json:"color"`
	Points []PointDoc `json:"points"`
}

type ColorDoc struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type PointDoc struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Save maps strokes to a document, keeping their order.
func Save(records []state.Record) Document {
	doc := Document{Strokes: make([]StrokeDoc, 0, len(records))}
	for _, r := range records {
		sd := StrokeDoc{
			Color:  ColorDoc{R: r.Color.R, G: r.Color.G, B: r.Color.B, A: r.Color.A},
			Points: make([]PointDoc, len(r.Points)),
		}
		for i, p := range r.Points {
			sd.Points[i] = PointDoc{X: p.X(), Y: p.Y(), Z: p.Z()}
		}
		doc.Strokes = append(doc.Strokes, sd)
	}
	return doc
}

// Records is the inverse of Save: one record per stroke, in order, for
// the caller to turn back into pooled lines.
func (d Document) Records() []state.Record {
	out := make([]state.Record, len(d.Strokes))
	for i, sd := range d.Strokes {
		pts := make([]mgl32.Vec3, len(sd.Points))
		for j, p := range sd.Points {
			pts[j] = mgl32.Vec3{p.X, p.Y, p.Z}
		}
		out[i] = state.Record{
			Color:  geom.Color{R: sd.Color.R, G: sd.Color.G, B: sd.Color.B, A: sd.Color.A},
			Points: pts,
		}
	}
	return out
}

// Encode renders the document as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Strokes == nil {
		doc.Strokes = []StrokeDoc{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}
	return data, nil
}

// The wire types use pointers so missing fields can be told apart from
// zero values.
type wireDoc struct {
	Strokes *[]*wireStroke `json:"strokes"`
}

type wireStroke struct {
	Color  *wireColor    `json:"color"`
	Points *[]*wirePoint `json:"points"`
}

type wireColor struct {
	R *uint8 `json:"r"`
	G *uint8 `json:"g"`
	B *uint8 `json:"b"`
	A *uint8 `json:"a"`
}

type wirePoint struct {
	X *float32 `json:"x"`
	Y *float32 `json:"y"`
	Z *float32 `json:"z"`
}

// Decode parses a saved drawing. Any structural problem (bad JSON, wrong
// types, missing fields, null entries) yields a *DecodeError and an empty
// Document.
func Decode(data []byte) (Document, error) {
	var w wireDoc
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return Document{}, decodeErr(err)
	}
	if dec.More() {
		return Document{}, &DecodeError{Err: errTrailingData}
	}
	if w.Strokes == nil {
		return Document{}, &DecodeError{Field: "strokes", Err: errMissing}
	}

	doc := Document{Strokes: make([]StrokeDoc, 0, len(*w.Strokes))}
	for i, ws := range *w.Strokes {
		at := fmt.Sprintf("strokes[%d]", i)
		if ws == nil {
			return Document{}, &DecodeError{Field: at, Err: errNull}
		}
		if ws.Color == nil {
			return Document{}, &DecodeError{Field: at + ".color", Err: errMissing}
		}
		if ws.Points == nil {
			return Document{}, &DecodeError{Field: at + ".points", Err: errMissing}
		}
		col, err := ws.Color.color(at + ".color")
		if err != nil {
			return Document{}, err
		}
		sd := StrokeDoc{Color: col, Points: make([]PointDoc, len(*ws.Points))}
		for j, wp := range *ws.Points {
			p, err := wp.point(fmt.Sprintf("%s.points[%d]", at, j))
			if err != nil {
				return Document{}, err
			}
			sd.Points[j] = p
		}
		doc.Strokes = append(doc.Strokes, sd)
	}
	return doc, nil
}

func (c *wireColor) color(at string) (ColorDoc, error) {
	for _, f := range []struct {
		name string
		v    *uint8
	}{{"r", c.R}, {"g", c.G}, {"b", c.B}, {"a", c.A}} {
		if f.v == nil {
			return ColorDoc{}, &DecodeError{Field: at + "." + f.name, Err: errMissing}
		}
	}
	return ColorDoc{R: *c.R, G: *c.G, B: *c.B, A: *c.A}, nil
}

func (p *wirePoint) point(at string) (PointDoc, error) {
	if p == nil {
		return PointDoc{}, &DecodeError{Field: at, Err: errNull}
	}
	for _, f := range []struct {
		name string
		v    *float32
	}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
		if f.v == nil {
			return PointDoc{}, &DecodeError{Field: at + "." + f.name, Err: errMissing}
		}
	}
	return PointDoc{X: *p.X, Y: *p.Y, Z: *p.Z}, nil
}
