// Package gravity resolves which body pulls on a point in space.
package gravity

import "github.com/go-gl/mathgl/mgl64"

// Source is a spherical body that defines local "down" around it.
type Source interface {
	Center() mgl64.Vec3
	Radius() float64
}

// Field picks the source acting on a position.
type Field interface {
	Nearest(pos mgl64.Vec3) (Source, bool)
}

// Registry is a Field over any number of sources. The nearest surface wins.
// Frame-loop only.
type Registry struct {
	sources []Source
}

func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: append([]Source(nil), sources...)}
}

func (r *Registry) Add(s Source) {
	r.sources = append(r.sources, s)
}

func (r *Registry) Len() int {
	return len(r.sources)
}

func (r *Registry) Nearest(pos mgl64.Vec3) (Source, bool) {
	var (
		best     Source
		bestDist float64
	)
	for _, s := range r.sources {
		d := s.Center().Sub(pos).Len() - s.Radius()
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, best != nil
}
