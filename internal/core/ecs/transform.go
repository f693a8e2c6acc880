package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/vmath"
)

// Transform is an entity's placement in world space. Up starts as world-up and is
// replaced by the local gravity-up for entities that follow a gravity source.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Up       mgl64.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		Up:       vmath.WorldUp,
	}
}

// Forward returns the world direction of local +Z.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(vmath.WorldForward)
}

// LookAt turns the transform so +Z faces target, using Up as the roll reference.
func (t *Transform) LookAt(target mgl64.Vec3) {
	t.Rotation = vmath.LookRotation(t.Position, target, t.Up)
}
