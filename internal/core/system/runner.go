package system

import (
	"sort"

	"github.com/orbitflight/orbitflight/internal/core/ecs"
)

// Runner executes systems in phase order each frame. Systems sharing a phase keep
// their registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(frame *ecs.FrameContext) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(frame)
	}
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, frame *ecs.FrameContext) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(frame)
		}
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	return len(r.systems)
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
