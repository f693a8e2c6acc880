package behavior

import "math"

// SmoothingMode selects how a per-step blend factor is applied.
type SmoothingMode string

const (
	// SmoothPerFrame applies Factor once per frame regardless of frame time,
	// so the follow speed depends on frame rate.
	SmoothPerFrame SmoothingMode = "frame"
	// SmoothPerTime rescales Factor so the result matches SmoothPerFrame at RefRate.
	SmoothPerTime SmoothingMode = "time"
)

// Smoother computes the lerp fraction for one frame.
type Smoother struct {
	Mode    SmoothingMode
	Factor  float64
	RefRate float64 // frames per second the factor was tuned for
}

func (s Smoother) Alpha(dt float64) float64 {
	if s.Mode != SmoothPerTime || s.RefRate <= 0 {
		return s.Factor
	}
	if dt <= 0 {
		return 0
	}
	return 1 - math.Pow(1-s.Factor, dt*s.RefRate)
}
