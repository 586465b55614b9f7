package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

var forwardAxis = mgl32.Vec3{0, 0, 1}

// Surface is a flat rectangular quad placed in the world. Local space is
// the surface's rotated and translated frame, in metres; the quad spans
// ±Scale.X()/2 on local X and ±Scale.Y()/2 on local Y, with the plane
// normal along local +Z.
type Surface struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec2
}

// NewSurface returns an upright surface at position facing +Z.
func NewSurface(position mgl32.Vec3, width, height float32) Surface {
	return Surface{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec2{width, height},
	}
}

// Forward is the world-space plane normal.
func (s Surface) Forward() mgl32.Vec3 {
	return s.rotation().Rotate(forwardAxis)
}

func (s Surface) Plane() Plane {
	return NewPlane(s.Forward(), s.Position)
}

func (s Surface) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return s.rotation().Inverse().Rotate(p.Sub(s.Position))
}

func (s Surface) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return s.rotation().Rotate(p).Add(s.Position)
}

// HalfExtents returns the half width and half height of the quad.
func (s Surface) HalfExtents() mgl32.Vec2 {
	return s.Scale.Mul(0.5)
}

// Contains reports whether a local-space point lies within the quad's
// rectangle. Z is ignored.
func (s Surface) Contains(local mgl32.Vec3) bool {
	h := s.HalfExtents()
	return mgl32.Abs(local.X()) <= h.X() && mgl32.Abs(local.Y()) <= h.Y()
}

// zero-value surfaces carry a zero quaternion; treat it as identity
func (s Surface) rotation() mgl32.Quat {
	if s.Rotation.W == 0 && s.Rotation.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return s.Rotation.Normalize()
}
