package behavior

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
)

// Planet is a fixed sphere acting as a gravity source.
type Planet struct {
	ecs.BaseBehavior
	Shape *Shape

	position mgl64.Vec3
	radius   float64
}

// NewPlanet attaches a shape for the planet's model and then the planet itself.
func NewPlanet(e *ecs.Entity, model string, pos mgl64.Vec3, radius float64) *Planet {
	p := &Planet{
		BaseBehavior: ecs.NewBaseBehavior(e),
		position:     pos,
		radius:       radius,
	}
	p.Shape = NewShape(e, model, pos)
	e.AddBehavior(p)
	return p
}

func (p *Planet) Kind() ecs.Kind     { return ecs.KindPlanet }
func (p *Planet) Center() mgl64.Vec3 { return p.position }
func (p *Planet) Radius() float64    { return p.radius }
