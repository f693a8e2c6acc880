package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, Normalize(mgl64.Vec3{}))
	assert.InDelta(t, 1.0, Normalize(mgl64.Vec3{3, 4, 0}).Len(), 1e-12)
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0.5, WrapAngle(2*math.Pi+0.5), 1e-12)
	assert.InDelta(t, 2*math.Pi-0.5, WrapAngle(-0.5), 1e-12)
	assert.InDelta(t, 0.0, WrapAngle(0), 1e-12)
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 2, 3}} {
		p := Perpendicular(v)
		assert.InDelta(t, 1.0, p.Len(), 1e-12)
		assert.InDelta(t, 0.0, p.Dot(v), 1e-12)
	}
}

func TestLookRotationPointsForwardAtTarget(t *testing.T) {
	eye := mgl64.Vec3{1, 2, 3}
	target := mgl64.Vec3{4, 2, 3}
	q := LookRotation(eye, target, WorldUp)
	fwd := q.Rotate(WorldForward)
	assertNear(t, mgl64.Vec3{1, 0, 0}, fwd, 1e-9, "forward %v", fwd)
	up := q.Rotate(WorldUp)
	assertNear(t, WorldUp, up, 1e-9, "up %v", up)
}

func TestLookRotationParallelUp(t *testing.T) {
	q := LookRotation(mgl64.Vec3{}, mgl64.Vec3{0, 5, 0}, WorldUp)
	fwd := q.Rotate(WorldForward)
	assert.False(t, math.IsNaN(fwd[0]))
	assert.InDelta(t, 1.0, fwd.Normalize().Dot(WorldUp), 1e-3)
}

func TestRotateAxis(t *testing.T) {
	v := RotateAxis(mgl64.Vec3{0, 0, 1}, WorldUp, math.Pi/2)
	assertNear(t, mgl64.Vec3{1, 0, 0}, v, 1e-9, "got %v", v)
}

// assertNear compares vectors by absolute distance; mgl64's ApproxEqual is
// relative and rejects tiny residues on exactly-zero components.
func assertNear(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, got.Sub(want).Len(), delta, msgAndArgs...)
}

func TestLookRotationAxisAlignedTargets(t *testing.T) {
	for _, dir := range []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 0, 1}, {0, 0, -1}} {
		q := LookRotation(mgl64.Vec3{}, dir.Mul(10), WorldUp)
		fwd := q.Rotate(WorldForward)
		assertNear(t, dir, fwd, 1e-9, "target %v forward %v", dir, fwd)
		assertNear(t, WorldUp, q.Rotate(WorldUp), 1e-9)
	}
}
