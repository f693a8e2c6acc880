package system

import (
	"context"
	"time"

	"github.com/orbitflight/orbitflight/internal/behavior"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/event"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
	"github.com/orbitflight/orbitflight/internal/persist"
	"go.uber.org/zap"
)

// SnapshotStore persists one frame's entity snapshots.
type SnapshotStore interface {
	SaveSnapshots(ctx context.Context, frame uint64, simTime float64, snaps []persist.EntitySnapshot) error
}

const recorderTimeout = 5 * time.Second

// RecorderSystem periodically writes every shaped entity's placement, together
// with the surface contacts seen since the previous write. Phase 6 (Persist).
type RecorderSystem struct {
	manager    *ecs.Manager
	store      SnapshotStore
	log        *zap.Logger
	interval   int // write every N frames
	frameCount int
	contacts   map[ecs.EntityID]int
}

func NewRecorderSystem(manager *ecs.Manager, store SnapshotStore, bus *event.Bus, intervalFrames int, log *zap.Logger) *RecorderSystem {
	if intervalFrames <= 0 {
		intervalFrames = 1
	}
	s := &RecorderSystem{
		manager:  manager,
		store:    store,
		log:      log,
		interval: intervalFrames,
		contacts: make(map[ecs.EntityID]int),
	}
	event.Subscribe(bus, func(ev event.SurfaceContact) {
		s.contacts[ev.EntityID]++
	})
	return s
}

func (s *RecorderSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *RecorderSystem) Update(frame *ecs.FrameContext) {
	s.frameCount++
	if s.frameCount < s.interval {
		return
	}
	s.frameCount = 0
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()
	if err := s.Flush(ctx, frame); err != nil {
		s.log.Error("flight snapshot failed", zap.Uint64("frame", frame.Frame), zap.Error(err))
	}
}

// Flush writes the current frame immediately. Called on shutdown as well.
// Contact counts are kept when the write fails.
func (s *RecorderSystem) Flush(ctx context.Context, frame *ecs.FrameContext) error {
	snaps := make([]persist.EntitySnapshot, 0, s.manager.Len())
	s.manager.Each(func(e *ecs.Entity) {
		if _, ok := ecs.GetBehavior[*behavior.Shape](e); !ok {
			return
		}
		snaps = append(snaps, persist.EntitySnapshot{
			EntityID: uint64(e.ID),
			Name:     e.Name,
			Position: vec(e.Transform.Position),
			Up:       vec(e.Transform.Up),
			Contacts: s.contacts[e.ID],
		})
	})
	if err := s.store.SaveSnapshots(ctx, frame.Frame, frame.Time, snaps); err != nil {
		return err
	}
	clear(s.contacts)
	return nil
}
