package system

import (
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
	"github.com/orbitflight/orbitflight/internal/input"
)

// InputResetSystem clears just-pressed edges once every behavior has read them.
// Phase 3 (PostUpdate).
type InputResetSystem struct {
	snapshot *input.Snapshot
}

func NewInputResetSystem(snapshot *input.Snapshot) *InputResetSystem {
	return &InputResetSystem{snapshot: snapshot}
}

func (s *InputResetSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *InputResetSystem) Update(_ *ecs.FrameContext) {
	s.snapshot.Update()
}
