// Package touchui turns fingertip depth through a flat UI panel into
// pointer events: enter, exit, down, up and click.
//
// The panel's normal faces the user. Depth is positive in front of the
// panel and negative once the fingertip pushes through it. A press starts
// below -PressDepth and only ends above -PressDepth/2, so a finger resting
// near the threshold does not chatter.
package touchui

import (
	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
)

// Target identifies a hit-testable UI element. The empty Target is none.
type Target string

type EventKind int

const (
	Enter EventKind = iota
	Exit
	Down
	Up
	Click
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Down:
		return "down"
	case Up:
		return "up"
	case Click:
		return "click"
	}
	return "unknown"
}

type Event struct {
	Kind   EventKind
	Target Target
}

type Config struct {
	PressDepth    float32
	HoverDistance float32
	Hand          geom.Hand
}

// State is the current target and whether it is pressed.
type State struct {
	Target  Target
	Pressed bool
}

// Input is one frame's observation.
type Input struct {
	Tracked bool
	// Signed is the fingertip's signed depth relative to the panel plane.
	Signed float32
	// Target is the nearest element under the fingertip, if any.
	Target Target
}

// Step advances the press state machine by one frame and returns the
// events to dispatch, in order.
func Step(st State, in Input, cfg Config) (State, []Event) {
	var events []Event
	if !in.Tracked {
		return State{}, release(st, events)
	}

	// A press survives a target change: sliding a pushed finger across
	// buttons never starts a second press.
	if in.Target != st.Target {
		if st.Target != "" {
			events = append(events, Event{Kind: Exit, Target: st.Target})
		}
		st.Target = in.Target
		if st.Target != "" && in.Signed > -cfg.HoverDistance {
			events = append(events, Event{Kind: Enter, Target: st.Target})
		}
	}

	if st.Target != "" && !st.Pressed && in.Signed < -cfg.PressDepth {
		events = append(events, Event{Kind: Down, Target: st.Target})
		st.Pressed = true
	}

	if st.Pressed && in.Signed > -cfg.PressDepth/2 {
		if st.Target != "" {
			events = append(events,
				Event{Kind: Up, Target: st.Target},
				Event{Kind: Click, Target: st.Target})
		}
		st.Pressed = false
	}
	return st, events
}

// release handles tracking loss: a held press is lifted without a click,
// then the target is exited.
func release(st State, events []Event) []Event {
	if st.Target == "" {
		return events
	}
	if st.Pressed {
		events = append(events, Event{Kind: Up, Target: st.Target})
	}
	return append(events, Event{Kind: Exit, Target: st.Target})
}

// Depth returns the fingertip's signed depth against the panel.
func Depth(panel geom.Surface, p mgl32.Vec3) float32 {
	return panel.Plane().SignedDistance(p)
}
