// Package vmath holds the small vector helpers the simulation needs on top of mgl64.
// mgl64 normalizes by dividing through the length, so zero vectors come back as NaN;
// everything here returns a usable value instead.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon below which a vector length is treated as zero.
const Epsilon = 1e-9

var (
	WorldUp      = mgl64.Vec3{0, 1, 0}
	WorldForward = mgl64.Vec3{0, 0, 1}
)

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// IsZero reports whether v is too short to carry a direction.
func IsZero(v mgl64.Vec3) bool {
	return v.Len() < Epsilon
}

// Lerp moves from a toward b by alpha (0 = a, 1 = b).
func Lerp(a, b mgl64.Vec3, alpha float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// RotateAxis rotates v by angle radians about a unit axis.
func RotateAxis(v, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.QuatRotate(angle, axis).Rotate(v)
}

// Perpendicular returns a unit vector orthogonal to v. v must be non-zero.
func Perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	// cross with the axis v is least aligned with
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	var other mgl64.Vec3
	switch {
	case ax <= ay && ax <= az:
		other = mgl64.Vec3{1, 0, 0}
	case ay <= az:
		other = mgl64.Vec3{0, 1, 0}
	default:
		other = mgl64.Vec3{0, 0, 1}
	}
	return Normalize(v.Cross(other))
}

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// LookRotation builds the rotation whose local +Z points from eye toward target with the
// given up hint. Degenerate inputs are nudged the same way a scene graph look-at does.
func LookRotation(eye, target, up mgl64.Vec3) mgl64.Quat {
	z := target.Sub(eye)
	if IsZero(z) {
		z = WorldForward
	}
	z = Normalize(z)
	x := up.Cross(z)
	if IsZero(x) {
		if math.Abs(up[2]) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = Normalize(z)
		x = up.Cross(z)
	}
	x = Normalize(x)
	y := z.Cross(x)
	m := mgl64.Mat3FromCols(x, y, z).Mat4()
	return mgl64.Mat4ToQuat(m).Normalize()
}
