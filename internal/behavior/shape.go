// Package behavior implements the simulation's behavior variants: shapes, planets,
// the gravity-following player and the follow camera.
package behavior

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
)

// Shape binds a visual model key to its entity. The renderer resolves the key.
type Shape struct {
	ecs.BaseBehavior
	Model string
}

// NewShape attaches a shape and places the entity at pos.
func NewShape(e *ecs.Entity, model string, pos mgl64.Vec3) *Shape {
	s := &Shape{BaseBehavior: ecs.NewBaseBehavior(e), Model: model}
	e.Transform.Position = pos
	e.AddBehavior(s)
	return s
}

func (s *Shape) Kind() ecs.Kind { return ecs.KindShape }
