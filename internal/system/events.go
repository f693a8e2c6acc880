package system

import (
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/event"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
)

// EventDispatchSystem delivers the previous frame's events before behaviors run.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ *ecs.FrameContext) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
