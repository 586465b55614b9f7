package touchui

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"HandSketch/internal/geom"
	"HandSketch/internal/logging"
)

// HitTester returns the targets under a screen point, nearest first.
type HitTester interface {
	RaycastScreenPoint(p mgl32.Vec2) []Target
}

// Projector maps a world position to the screen space the HitTester uses.
type Projector interface {
	WorldToScreen(p mgl32.Vec3) mgl32.Vec2
}

// PanelProjector projects straight onto a panel: the screen point is the
// panel-local X/Y in metres, origin at the panel centre.
type PanelProjector struct {
	Panel geom.Surface
}

func (pp PanelProjector) WorldToScreen(p mgl32.Vec3) mgl32.Vec2 {
	l := pp.Panel.WorldToLocal(p)
	return mgl32.Vec2{l.X(), l.Y()}
}

// Bridge drives the press state machine from a pose provider once per
// frame. It is not safe for concurrent use.
type Bridge struct {
	poses  geom.PoseProvider
	panel  geom.Surface
	hits   HitTester
	screen Projector
	cfg    Config
	st     State

	// OnEvent, when set, receives every event as it is produced.
	OnEvent func(Event)

	log *slog.Logger
}

// NewBridge wires a bridge. A nil projector projects onto the panel.
func NewBridge(poses geom.PoseProvider, panel geom.Surface, hits HitTester, screen Projector, cfg Config) *Bridge {
	if screen == nil {
		screen = PanelProjector{Panel: panel}
	}
	return &Bridge{
		poses:  poses,
		panel:  panel,
		hits:   hits,
		screen: screen,
		cfg:    cfg,
		log:    logging.For("touchui"),
	}
}

// Update runs one frame and returns the events it dispatched.
func (b *Bridge) Update() []Event {
	in := Input{}
	if b.poses != nil && b.hits != nil {
		if pose, ok := b.poses.TryGetFingertipPose(b.cfg.Hand); ok {
			in.Tracked = true
			in.Signed = Depth(b.panel, pose.Position)
			if hits := b.hits.RaycastScreenPoint(b.screen.WorldToScreen(pose.Position)); len(hits) > 0 {
				in.Target = hits[0]
			}
		}
	}

	next, events := Step(b.st, in, b.cfg)
	b.st = next
	for _, ev := range events {
		b.log.Debug("ui event", "kind", ev.Kind.String(), "target", string(ev.Target))
		if b.OnEvent != nil {
			b.OnEvent(ev)
		}
	}
	return events
}

// State returns the current target and press state.
func (b *Bridge) State() State { return b.st }
