package capture

import (
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
)

// Config holds the capture thresholds. Distances are in metres.
type Config struct {
	TouchDistance      float32
	MinPointSpacing    float32
	MaxPointsPerStroke int
	MaxActiveStrokes   int
	Palette            []geom.Color
	Hand               geom.Hand
}

// Sample is one frame's view of the fingertip relative to the surface.
type Sample struct {
	Tracked  bool
	Touching bool
	// Distance is the signed perpendicular distance to the surface plane.
	Distance float32
	// Local is the fingertip projected onto the plane, in surface space.
	Local mgl32.Vec3
}

// Sense projects a fingertip pose onto the surface and decides whether
// it is touching.
func Sense(surface geom.Surface, pose geom.Pose, tracked bool, cfg Config) Sample {
	if !tracked {
		return Sample{}
	}
	plane := surface.Plane()
	d := plane.SignedDistance(pose.Position)
	local := surface.WorldToLocal(plane.Project(pose.Position))
	// the projection is on the plane; drop float noise off it
	local[2] = 0
	return Sample{
		Tracked:  true,
		Touching: mgl32.Abs(d) < cfg.TouchDistance && surface.Contains(local),
		Distance: d,
		Local:    local,
	}
}

// State is the touch state machine: idle, or drawing with the number of
// points committed so far and the last one.
type State struct {
	Drawing bool
	Count   int
	Last    mgl32.Vec3
}

// Effects is what one Step asks the engine to do, applied in the order
// Begin, Append, End.
type Effects struct {
	Begin  bool
	Append bool
	Point  mgl32.Vec3
	End    bool
}

// Step advances the touch state machine by one frame. Losing tracking or
// leaving the surface ends the current stroke; touching from idle starts
// one and commits its first point in the same frame. A point is committed
// only when it is at least MinPointSpacing from the previous one, and the
// stroke ends as soon as it holds MaxPointsPerStroke points.
func Step(st State, s Sample, cfg Config) (State, Effects) {
	if !s.Tracked || !s.Touching {
		if st.Drawing {
			return State{}, Effects{End: true}
		}
		return State{}, Effects{}
	}

	var eff Effects
	if !st.Drawing {
		eff.Begin = true
		st = State{Drawing: true}
	}
	if st.Count == 0 || st.Last.Sub(s.Local).Len() >= cfg.MinPointSpacing {
		eff.Append = true
		eff.Point = s.Local
		st.Count++
		st.Last = s.Local
		if cfg.MaxPointsPerStroke > 0 && st.Count >= cfg.MaxPointsPerStroke {
			eff.End = true
			return State{}, eff
		}
	}
	return st, eff
}
