package system

import "github.com/orbitflight/orbitflight/internal/core/ecs"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: sample platform input
	PhasePreUpdate               // 1: dispatch last frame's events
	PhaseUpdate                  // 2: entity behaviors
	PhasePostUpdate              // 3: input edge reset
	PhaseCollision               // 4: surface correction
	PhaseOutput                  // 5: hand frame state to the renderer
	PhasePersist                 // 6: flight recorder
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCollision:
		return "collision"
	case PhaseOutput:
		return "output"
	case PhasePersist:
		return "persist"
	}
	return "unknown"
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(frame *ecs.FrameContext)
}
