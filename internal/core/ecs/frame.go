package ecs

import "github.com/orbitflight/orbitflight/internal/input"

// FrameContext is the per-frame state handed to every update call.
// Times are in seconds.
type FrameContext struct {
	Frame     uint64
	Time      float64
	DeltaTime float64
	MoveSpeed float64
	Input     *input.Snapshot
}
