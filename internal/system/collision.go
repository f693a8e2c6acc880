package system

import (
	"math"

	"github.com/orbitflight/orbitflight/internal/behavior"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/event"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
	"go.uber.org/zap"
)

// CollisionSystem keeps players above the surface of their gravity source.
// A probe one unit below the player along its up vector is tested against the
// sphere; if it is inside, the player is pushed out along up by the probe's
// penetration depth. One correction per frame. Phase 4 (Collision).
type CollisionSystem struct {
	manager *ecs.Manager
	bus     *event.Bus
	log     *zap.Logger
}

func NewCollisionSystem(manager *ecs.Manager, bus *event.Bus, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{manager: manager, bus: bus, log: log}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(frame *ecs.FrameContext) {
	s.manager.Each(func(e *ecs.Entity) {
		p, ok := ecs.GetBehavior[*behavior.Player](e)
		if !ok {
			return
		}
		src, ok := p.Source()
		if !ok {
			return
		}
		t := &e.Transform
		probe := t.Position.Sub(t.Up)
		dist := probe.Sub(src.Center()).Len()
		if dist > src.Radius() {
			return
		}
		depth := math.Abs(dist - src.Radius())
		t.Position = t.Position.Add(t.Up.Mul(depth))

		if s.bus != nil {
			event.Emit(s.bus, event.SurfaceContact{
				Frame:    frame.Frame,
				EntityID: e.ID,
				Name:     e.Name,
				Depth:    depth,
			})
		}
		if ce := s.log.Check(zap.DebugLevel, "surface contact"); ce != nil {
			ce.Write(zap.String("entity", e.Name), zap.Float64("depth", depth))
		}
	})
}
