// Package pool keeps idle line renderables around for reuse so strokes
// don't allocate a new backend object each time one begins.
package pool

import (
	"HandSketch/internal/logging"
	"HandSketch/internal/render"
)

// Handle is what the pool can manage: a renderable that can be used as a
// map key (in practice a pointer).
type Handle interface {
	comparable
	render.Renderable
}

// Pool is a bounded LIFO store of idle handles plus a factory for new
// ones. Capacity bounds idle storage only: Acquire never fails, and a
// Release that would overflow the store destroys the handle instead.
//
// Pool is not safe for concurrent use.
type Pool[T Handle] struct {
	factory  func() T
	capacity int

	idle   []T
	isIdle map[T]struct{}

	created   int
	destroyed int
}

// New returns an empty pool. A negative capacity is treated as zero.
func New[T Handle](factory func() T, capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		factory:  factory,
		capacity: capacity,
		isIdle:   make(map[T]struct{}),
	}
}

// Acquire returns the most recently released idle handle, or a new one
// from the factory. The handle comes back visible with zero points.
func (p *Pool[T]) Acquire() T {
	var h T
	if n := len(p.idle); n > 0 {
		h = p.idle[n-1]
		var zero T
		p.idle[n-1] = zero
		p.idle = p.idle[:n-1]
		delete(p.isIdle, h)
	} else {
		h = p.factory()
		p.created++
	}
	h.SetActive(true)
	h.SetPointCount(0)
	return h
}

// Release hides and stores h, or destroys it when the idle store is full.
// Releasing a handle that is already idle is ignored.
func (p *Pool[T]) Release(h T) {
	if _, ok := p.isIdle[h]; ok {
		logging.For("pool").Warn("handle released twice, ignoring")
		return
	}
	if len(p.idle) < p.capacity {
		h.SetActive(false)
		h.SetPointCount(0)
		p.idle = append(p.idle, h)
		p.isIdle[h] = struct{}{}
		return
	}
	h.Destroy()
	p.destroyed++
}

// Idle is the number of handles waiting for reuse.
func (p *Pool[T]) Idle() int { return len(p.idle) }

// Capacity is the maximum number of idle handles retained.
func (p *Pool[T]) Capacity() int { return p.capacity }

// Created counts factory calls.
func (p *Pool[T]) Created() int { return p.created }

// Destroyed counts handles dropped because the idle store was full.
func (p *Pool[T]) Destroyed() int { return p.destroyed }
