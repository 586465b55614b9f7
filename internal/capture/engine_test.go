package capture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HandSketch/internal/geom"
	"HandSketch/internal/pool"
	"HandSketch/internal/render"
	"HandSketch/internal/state"
)

// scriptedPoses replays one entry per frame; nil means untracked.
type scriptedPoses struct {
	frames []*mgl32.Vec3
	i      int
}

func (p *scriptedPoses) TryGetFingertipPose(geom.Hand) (geom.Pose, bool) {
	if p.i >= len(p.frames) {
		return geom.Pose{}, false
	}
	f := p.frames[p.i]
	p.i++
	if f == nil {
		return geom.Pose{}, false
	}
	return geom.Pose{Position: *f, Forward: mgl32.Vec3{0, 0, -1}}, true
}

func (p *scriptedPoses) push(frames ...*mgl32.Vec3) { p.frames = append(p.frames, frames...) }

func at(x, y, z float32) *mgl32.Vec3 { return &mgl32.Vec3{x, y, z} }

type fixture struct {
	engine *Engine
	poses  *scriptedPoses
	lines  *render.LineFactory
	pool   *pool.Pool[render.Renderable]
}

func newFixture(t *testing.T, cfg Config, poolCap int) *fixture {
	t.Helper()
	f := &fixture{poses: &scriptedPoses{}, lines: &render.LineFactory{}}
	f.pool = pool.New(f.lines.NewRenderable, poolCap)
	f.engine = New(f.poses, geom.NewSurface(mgl32.Vec3{}, 0.6, 0.4), f.pool, cfg)
	return f
}

func (f *fixture) run(n int) {
	for i := 0; i < n; i++ {
		f.engine.Update()
	}
}

func TestEngineExampleScenario(t *testing.T) {
	f := newFixture(t, testCfg, 10)
	f.poses.push(at(0, 0, 0), at(0, 0.002, 0), at(0, 0.006, 0))
	f.run(3)

	strokes := f.engine.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {0, 0.006, 0}}, strokes[0].Points())
	assert.True(t, f.engine.Drawing())

	line := f.lines.Made[0]
	assert.True(t, line.Active)
	assert.Equal(t, geom.Red, line.Color)
	assert.Equal(t, strokes[0].Points(), line.Points)
}

func TestEngineSpacedFramesCommitEveryFrame(t *testing.T) {
	cfg := testCfg
	cfg.MaxPointsPerStroke = 25
	f := newFixture(t, cfg, 10)
	for i := 0; i < 40; i++ {
		f.poses.push(at(-0.2+float32(i)*0.01, 0, 0.001))
	}
	f.run(40)

	strokes := f.engine.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, 25, strokes[0].Len())
	assert.True(t, strokes[0].Finalized())
	assert.Equal(t, 15, strokes[1].Len())
}

func TestEngineTrackingLossStartsNewStroke(t *testing.T) {
	f := newFixture(t, testCfg, 10)
	f.poses.push(at(0, 0, 0), at(0, 0.01, 0), nil, at(0, 0.02, 0))
	f.run(3)

	require.Equal(t, 1, f.engine.Len())
	first := f.engine.Strokes()[0]
	assert.True(t, first.Finalized())
	assert.Equal(t, 2, first.Len())
	assert.Nil(t, f.engine.Active())

	f.run(1)
	require.Equal(t, 2, f.engine.Len())
	second := f.engine.Strokes()[1]
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []mgl32.Vec3{{0, 0.02, 0}}, second.Points())
	assert.Equal(t, 2, first.Len())
}

func TestEngineEvictsOldestStroke(t *testing.T) {
	cfg := testCfg
	cfg.MaxActiveStrokes = 3
	f := newFixture(t, cfg, 10)
	for i := 0; i < 5; i++ {
		f.poses.push(at(float32(i)*0.05-0.2, 0, 0), at(0, 0, 1))
	}

	var first *state.Stroke
	for i := 0; i < 5; i++ {
		f.run(2)
		if i == 0 {
			first = f.engine.Strokes()[0]
		}
		assert.LessOrEqual(t, f.engine.Len(), 3)
	}
	assert.Equal(t, 3, f.engine.Len())
	for _, s := range f.engine.Strokes() {
		assert.NotEqual(t, first.ID, s.ID)
	}
	assert.Equal(t, float32(0), f.engine.Strokes()[0].Points()[0].Y())
	assert.InDelta(t, -0.1, f.engine.Strokes()[0].Points()[0].X(), 1e-6)

	// the line evicted last is idle; the one before was reused by stroke 5
	assert.Equal(t, 1, f.pool.Idle())
	assert.Equal(t, 4, f.pool.Created())
}

func TestEngineToggleColor(t *testing.T) {
	cfg := testCfg
	cfg.Palette = []geom.Color{geom.Red, geom.Green, geom.Blue}
	f := newFixture(t, cfg, 10)
	var seen []geom.Color
	f.engine.OnColorChanged = func(c geom.Color) { seen = append(seen, c) }

	f.poses.push(at(0, 0, 0))
	f.run(1)
	f.engine.ToggleColor()
	f.poses.push(at(0, 0.01, 0), at(0, 0, 1), at(0, 0, 0))
	f.run(3)
	f.engine.ToggleColor()
	f.engine.ToggleColor()

	strokes := f.engine.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, geom.Red, strokes[0].Color)
	assert.Equal(t, geom.Green, strokes[1].Color)
	assert.Equal(t, []geom.Color{geom.Green, geom.Blue, geom.Red}, seen)
	assert.Equal(t, geom.Red, f.engine.CurrentColor())
}

func TestEngineClearAll(t *testing.T) {
	f := newFixture(t, testCfg, 10)
	f.poses.push(at(0, 0, 0), at(0, 0, 1), at(0.1, 0, 0))
	f.run(3)
	require.Equal(t, 2, f.engine.Len())
	require.True(t, f.engine.Drawing())

	f.engine.ClearAll()
	assert.Equal(t, 0, f.engine.Len())
	assert.False(t, f.engine.Drawing())
	assert.Equal(t, 2, f.pool.Idle())
	for _, l := range f.lines.Made {
		assert.False(t, l.Active)
	}

	// a touch after clearing reuses a pooled line
	f.poses.push(at(0, 0, 0))
	f.run(1)
	assert.Equal(t, 1, f.engine.Len())
	assert.Equal(t, 2, f.pool.Created())
}

func TestEngineReplace(t *testing.T) {
	cfg := testCfg
	cfg.MaxActiveStrokes = 2
	cfg.MaxPointsPerStroke = 2
	f := newFixture(t, cfg, 10)
	f.poses.push(at(0, 0, 0))
	f.run(1)

	f.engine.Replace([]state.Record{
		{Color: geom.Blue, Points: []mgl32.Vec3{{1, 0, 0}}},
		{Color: geom.Green, Points: []mgl32.Vec3{{2, 0, 0}, {3, 0, 0}, {4, 0, 0}}},
		{Color: geom.Red, Points: nil},
	})

	assert.False(t, f.engine.Drawing())
	recs := f.engine.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, geom.Green, recs[0].Color)
	assert.Equal(t, []mgl32.Vec3{{2, 0, 0}, {3, 0, 0}}, recs[0].Points)
	assert.Equal(t, geom.Red, recs[1].Color)
	assert.Empty(t, recs[1].Points)
	for _, s := range f.engine.Strokes() {
		assert.True(t, s.Finalized())
	}
}

func TestEngineNilProviderIsIdle(t *testing.T) {
	lines := &render.LineFactory{}
	e := New(nil, geom.NewSurface(mgl32.Vec3{}, 1, 1), pool.New(lines.NewRenderable, 1), Config{TouchDistance: 0.01})
	assert.Equal(t, Effects{}, e.Update())
	assert.Equal(t, geom.Red, e.CurrentColor())
}
