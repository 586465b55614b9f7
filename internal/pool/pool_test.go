package pool

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HandSketch/internal/render"
)

func newLinePool(capacity int) (*Pool[*render.Line], *render.LineFactory) {
	f := &render.LineFactory{}
	return New(f.New, capacity), f
}

func TestAcquireCreatesWhenEmpty(t *testing.T) {
	p, f := newLinePool(4)
	a := p.Acquire()
	b := p.Acquire()
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, p.Created())
	assert.Len(t, f.Made, 2)
	assert.True(t, a.Active)
}

func TestAcquireReusesMostRecentlyReleased(t *testing.T) {
	p, _ := newLinePool(4)
	a, b := p.Acquire(), p.Acquire()
	b.SetPointCount(3)
	b.SetPoint(0, mgl32.Vec3{1, 2, 3})

	p.Release(a)
	p.Release(b)
	assert.False(t, a.Active)
	assert.Equal(t, 2, p.Idle())

	got := p.Acquire()
	assert.Same(t, b, got)
	assert.True(t, got.Active)
	assert.Empty(t, got.Points)
	assert.Same(t, a, p.Acquire())
	assert.Equal(t, 2, p.Created())
}

func TestReleaseBeyondCapacityDestroys(t *testing.T) {
	p, _ := newLinePool(1)
	a, b := p.Acquire(), p.Acquire()
	p.Release(a)
	p.Release(b)

	assert.Equal(t, 1, p.Idle())
	assert.Equal(t, 1, p.Destroyed())
	assert.False(t, a.Destroyed)
	assert.True(t, b.Destroyed)
}

func TestZeroCapacityNeverRetains(t *testing.T) {
	p, _ := newLinePool(-5)
	assert.Equal(t, 0, p.Capacity())
	a := p.Acquire()
	p.Release(a)
	assert.Equal(t, 0, p.Idle())
	assert.True(t, a.Destroyed)
}

func TestDoubleReleaseIgnored(t *testing.T) {
	p, _ := newLinePool(4)
	a := p.Acquire()
	p.Release(a)
	p.Release(a)
	assert.Equal(t, 1, p.Idle())

	first := p.Acquire()
	second := p.Acquire()
	assert.NotSame(t, first, second)
}

// No handle is handed out while an earlier Acquire of it is still unreleased.
func TestAcquireNeverReturnsHeldHandle(t *testing.T) {
	p, _ := newLinePool(3)
	rng := rand.New(rand.NewSource(7))
	held := map[*render.Line]bool{}
	var order []*render.Line

	for i := 0; i < 2000; i++ {
		if len(order) == 0 || rng.Intn(3) > 0 {
			h := p.Acquire()
			require.False(t, held[h], "handle %d handed out twice", h.ID)
			require.False(t, h.Destroyed)
			held[h] = true
			order = append(order, h)
			continue
		}
		j := rng.Intn(len(order))
		h := order[j]
		order = append(order[:j], order[j+1:]...)
		delete(held, h)
		p.Release(h)
		require.LessOrEqual(t, p.Idle(), p.Capacity())
	}
}
