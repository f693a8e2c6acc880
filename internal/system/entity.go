package system

import (
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
)

// EntitySystem runs the entity manager's update pass. Phase 2 (Update).
type EntitySystem struct {
	manager *ecs.Manager
}

func NewEntitySystem(manager *ecs.Manager) *EntitySystem {
	return &EntitySystem{manager: manager}
}

func (s *EntitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EntitySystem) Update(frame *ecs.FrameContext) {
	s.manager.Update(frame)
}
