package event

import "github.com/orbitflight/orbitflight/internal/core/ecs"

// SurfaceContact is emitted when collision correction pushes an entity back out
// of a gravity source's surface.
type SurfaceContact struct {
	Frame    uint64
	EntityID ecs.EntityID
	Name     string
	Depth    float64
}
