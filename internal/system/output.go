package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/behavior"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
	"github.com/orbitflight/orbitflight/internal/viewer"
)

// FrameSink receives the per-frame renderer hand-off.
type FrameSink interface {
	Broadcast(state *viewer.FrameState)
}

// ViewerSystem snapshots every entity for the renderer. Phase 5 (Output).
type ViewerSystem struct {
	manager *ecs.Manager
	sink    FrameSink
}

func NewViewerSystem(manager *ecs.Manager, sink FrameSink) *ViewerSystem {
	return &ViewerSystem{manager: manager, sink: sink}
}

func (s *ViewerSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ViewerSystem) Update(frame *ecs.FrameContext) {
	s.sink.Broadcast(BuildFrameState(s.manager, frame))
}

// BuildFrameState converts the committed entities into plain vector data.
// The first camera found supplies the camera block; every player contributes
// its debug arrows.
func BuildFrameState(manager *ecs.Manager, frame *ecs.FrameContext) *viewer.FrameState {
	state := &viewer.FrameState{
		Frame:    frame.Frame,
		Time:     frame.Time,
		Entities: make([]viewer.EntityState, 0, manager.Len()),
	}
	manager.Each(func(e *ecs.Entity) {
		t := e.Transform
		es := viewer.EntityState{
			ID:       uint64(e.ID),
			Name:     e.Name,
			Position: vec(t.Position),
			Rotation: [4]float64{t.Rotation.W, t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2]},
			Up:       vec(t.Up),
		}
		if shape, ok := ecs.GetBehavior[*behavior.Shape](e); ok {
			es.Model = shape.Model
		}
		state.Entities = append(state.Entities, es)

		if p, ok := ecs.GetBehavior[*behavior.Player](e); ok {
			for _, a := range p.Arrows {
				state.Arrows = append(state.Arrows, viewer.ArrowState{
					Origin:    vec(a.Origin),
					Direction: vec(a.Direction),
				})
			}
		}
		if c, ok := ecs.GetBehavior[*behavior.Camera](e); ok && state.Camera == nil {
			state.Camera = &viewer.CameraState{
				Position: vec(c.Position),
				Look:     vec(c.Look),
				Up:       vec(c.Up),
			}
		}
	})
	return state
}

func vec(v mgl64.Vec3) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}
