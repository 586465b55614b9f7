package capture

import (
	"log/slog"

	"HandSketch/internal/geom"
	"HandSketch/internal/logging"
	"HandSketch/internal/pool"
	"HandSketch/internal/render"
	"HandSketch/internal/state"
)

// Engine turns per-frame fingertip poses into strokes on one surface.
// It is driven from a single frame loop and is not safe for concurrent use.
type Engine struct {
	poses   geom.PoseProvider
	surface geom.Surface
	cfg     Config
	lines   *pool.Pool[render.Renderable]
	strokes *state.StrokeSet

	st       State
	active   *state.Stroke
	colorIdx int

	// OnColorChanged is called after ToggleColor with the new colour.
	OnColorChanged func(geom.Color)

	log *slog.Logger
}

// New builds an engine reading poses for cfg.Hand and drawing through lines.
func New(poses geom.PoseProvider, surface geom.Surface, lines *pool.Pool[render.Renderable], cfg Config) *Engine {
	if len(cfg.Palette) == 0 {
		cfg.Palette = []geom.Color{geom.Red, geom.Blue}
	}
	return &Engine{
		poses:   poses,
		surface: surface,
		cfg:     cfg,
		lines:   lines,
		strokes: state.NewStrokeSet(cfg.MaxActiveStrokes),
		log:     logging.For("capture"),
	}
}

// Update runs one frame: query the pose, advance the state machine and
// apply its effects.
func (e *Engine) Update() Effects {
	var (
		pose    geom.Pose
		tracked bool
	)
	if e.poses != nil {
		pose, tracked = e.poses.TryGetFingertipPose(e.cfg.Hand)
	}
	sample := Sense(e.surface, pose, tracked, e.cfg)
	next, eff := Step(e.st, sample, e.cfg)
	e.st = next
	e.apply(eff)
	return eff
}

func (e *Engine) apply(eff Effects) {
	if eff.Begin {
		e.begin()
	}
	if eff.Append && e.active != nil {
		e.active.Append(eff.Point)
	}
	if eff.End {
		e.end()
	}
}

func (e *Engine) begin() {
	s := state.NewStroke(e.lines.Acquire(), e.CurrentColor())
	e.active = s
	e.release(e.strokes.Push(s))
	e.log.Debug("stroke begin", "stroke", state.Label(s), "color", s.Color.Hex(), "active", e.strokes.Len())
}

func (e *Engine) end() {
	if e.active == nil {
		return
	}
	e.active.Finalize()
	e.log.Debug("stroke end", "stroke", state.Label(e.active), "points", e.active.Len())
	e.active = nil
}

func (e *Engine) release(strokes []*state.Stroke) {
	for _, s := range strokes {
		s.Finalize()
		e.lines.Release(s.Line())
		e.log.Debug("stroke evicted", "stroke", state.Label(s))
	}
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool { return e.st.Drawing }

// Active returns the stroke being drawn, or nil.
func (e *Engine) Active() *state.Stroke { return e.active }

// CurrentColor is the colour the next stroke will use.
func (e *Engine) CurrentColor() geom.Color {
	return e.cfg.Palette[e.colorIdx]
}

// ToggleColor moves to the next palette colour, wrapping around. Strokes
// already begun keep their colour.
func (e *Engine) ToggleColor() geom.Color {
	e.colorIdx = (e.colorIdx + 1) % len(e.cfg.Palette)
	c := e.CurrentColor()
	if e.OnColorChanged != nil {
		e.OnColorChanged(c)
	}
	return c
}

// ClearAll ends any stroke in progress and returns every stroke's line to
// the pool.
func (e *Engine) ClearAll() {
	e.end()
	e.st = State{}
	e.release(e.strokes.Clear())
}

// Strokes returns the active strokes, oldest first.
func (e *Engine) Strokes() []*state.Stroke { return e.strokes.All() }

// Len is the number of active strokes.
func (e *Engine) Len() int { return e.strokes.Len() }

// Records snapshots every active stroke for saving.
func (e *Engine) Records() []state.Record {
	all := e.strokes.All()
	out := make([]state.Record, len(all))
	for i, s := range all {
		out[i] = s.Record()
	}
	return out
}

// Replace clears the surface and rebuilds it from records. Strokes longer
// than MaxPointsPerStroke are truncated and, as with live drawing, only
// the newest MaxActiveStrokes survive.
func (e *Engine) Replace(records []state.Record) {
	e.ClearAll()
	for _, r := range records {
		pts := r.Points
		if limit := e.cfg.MaxPointsPerStroke; limit > 0 && len(pts) > limit {
			pts = pts[:limit]
		}
		s := state.NewStroke(e.lines.Acquire(), r.Color)
		s.Fill(pts)
		e.release(e.strokes.Push(s))
	}
	e.log.Debug("strokes replaced", "count", e.strokes.Len())
}
