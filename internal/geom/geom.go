package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Hand selects which tracked hand a pose query refers to.
type Hand int

const (
	Left Hand = iota
	Right
)

func (h Hand) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// ParseHand maps "left"/"right" to a Hand. ok is false for anything else.
func ParseHand(s string) (h Hand, ok bool) {
	switch s {
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return Right, false
}

// Pose is a fingertip position and pointing direction in world space.
type Pose struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
}

// PoseProvider supplies the index fingertip pose for a hand. The second
// return value is false whenever the hand is not tracked this frame.
type PoseProvider interface {
	TryGetFingertipPose(hand Hand) (Pose, bool)
}

// Plane is stored as a unit normal and the signed offset from the origin,
// so that SignedDistance(p) = Normal·p + D.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// NewPlane builds the plane through point with the given normal.
func NewPlane(normal, point mgl32.Vec3) Plane {
	n := normal
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return Plane{Normal: n, D: -n.Dot(point)}
}

// SignedDistance is positive on the side the normal points to.
func (p Plane) SignedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Project returns the closest point on the plane to pt.
func (p Plane) Project(pt mgl32.Vec3) mgl32.Vec3 {
	return pt.Sub(p.Normal.Mul(p.SignedDistance(pt)))
}
