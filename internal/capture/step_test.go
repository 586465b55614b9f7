package capture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"HandSketch/internal/geom"
)

var testCfg = Config{
	TouchDistance:      0.008,
	MinPointSpacing:    0.005,
	MaxPointsPerStroke: 4000,
	MaxActiveStrokes:   200,
}

func touching(x, y float32) Sample {
	return Sample{Tracked: true, Touching: true, Local: mgl32.Vec3{x, y, 0}}
}

func TestSenseTouchingWithinDistanceAndBounds(t *testing.T) {
	surf := geom.NewSurface(mgl32.Vec3{0, 1, 0.5}, 0.6, 0.4)

	s := Sense(surf, geom.Pose{Position: mgl32.Vec3{0.1, 1.05, 0.505}}, true, testCfg)
	assert.True(t, s.Touching)
	assert.InDelta(t, 0.005, s.Distance, 1e-6)
	assert.InDelta(t, 0.1, s.Local.X(), 1e-6)
	assert.InDelta(t, 0.05, s.Local.Y(), 1e-6)
	assert.Equal(t, float32(0), s.Local.Z())

	// behind the plane counts too
	s = Sense(surf, geom.Pose{Position: mgl32.Vec3{0, 1, 0.495}}, true, testCfg)
	assert.True(t, s.Touching)
	assert.InDelta(t, -0.005, s.Distance, 1e-6)
}

func TestSenseNotTouching(t *testing.T) {
	surf := geom.NewSurface(mgl32.Vec3{}, 0.6, 0.4)

	far := Sense(surf, geom.Pose{Position: mgl32.Vec3{0, 0, 0.02}}, true, testCfg)
	assert.True(t, far.Tracked)
	assert.False(t, far.Touching)

	outside := Sense(surf, geom.Pose{Position: mgl32.Vec3{0.4, 0, 0.001}}, true, testCfg)
	assert.False(t, outside.Touching)

	lost := Sense(surf, geom.Pose{}, false, testCfg)
	assert.False(t, lost.Tracked)
	assert.False(t, lost.Touching)
}

func TestStepBeginAppendsFirstPoint(t *testing.T) {
	st, eff := Step(State{}, touching(0, 0), testCfg)
	assert.True(t, eff.Begin)
	assert.True(t, eff.Append)
	assert.False(t, eff.End)
	assert.Equal(t, State{Drawing: true, Count: 1}, st)
}

func TestStepSpacingScenario(t *testing.T) {
	var (
		st  State
		eff Effects
		got []mgl32.Vec3
	)
	for _, s := range []Sample{touching(0, 0), touching(0, 0.002), touching(0, 0.006)} {
		st, eff = Step(st, s, testCfg)
		if eff.Append {
			got = append(got, eff.Point)
		}
	}
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {0, 0.006, 0}}, got)
	assert.Equal(t, 2, st.Count)
}

func TestStepJitterAddsNothing(t *testing.T) {
	st, _ := Step(State{}, touching(0, 0), testCfg)
	for i := 0; i < 50; i++ {
		var eff Effects
		dx := float32(i%3) * 0.001
		st, eff = Step(st, touching(dx, -dx), testCfg)
		assert.False(t, eff.Append)
		assert.False(t, eff.Begin)
	}
	assert.Equal(t, 1, st.Count)
}

func TestStepEndsOnRelease(t *testing.T) {
	st, _ := Step(State{}, touching(0, 0), testCfg)
	st, eff := Step(st, Sample{Tracked: true}, testCfg)
	assert.True(t, eff.End)
	assert.False(t, st.Drawing)

	// idle and not touching: nothing happens
	_, eff = Step(st, Sample{Tracked: true}, testCfg)
	assert.Equal(t, Effects{}, eff)
}

func TestStepEndsOnTrackingLoss(t *testing.T) {
	st, _ := Step(State{}, touching(0, 0), testCfg)
	st, eff := Step(st, Sample{Tracked: false, Touching: true}, testCfg)
	assert.Equal(t, Effects{End: true}, eff)
	assert.Equal(t, State{}, st)
}

func TestStepPointCap(t *testing.T) {
	cfg := testCfg
	cfg.MaxPointsPerStroke = 3
	var (
		st    State
		eff   Effects
		count int
	)
	for i := 0; i < 3; i++ {
		st, eff = Step(st, touching(0, float32(i)*0.01), cfg)
		if eff.Append {
			count++
		}
	}
	assert.Equal(t, 3, count)
	assert.True(t, eff.End)
	assert.False(t, st.Drawing)

	// still touching: a new stroke starts
	_, eff = Step(st, touching(0, 0.04), cfg)
	assert.True(t, eff.Begin)
}
