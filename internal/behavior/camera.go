package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/vmath"
)

// DefaultMouseSweep is the look offset, in target-space units, at the viewport edge.
const DefaultMouseSweep = 3.0 / 2.0 * math.Pi

// CameraConfig tunes the follow camera.
type CameraConfig struct {
	Offset     mgl64.Vec3 // target-space offset from the target
	MouseSweep float64
	Smoothing  Smoother
}

// Camera trails a target entity. Position, look point and up are each eased toward
// their goal every frame; the up vector follows the target's gravity-up so the
// camera rolls with it.
type Camera struct {
	ecs.BaseBehavior

	target  *ecs.Entity
	offset  mgl64.Vec3
	sweep   float64
	smooth  Smoother
	looking bool

	Position mgl64.Vec3
	Look     mgl64.Vec3
	Up       mgl64.Vec3
}

// NewCamera attaches a camera following target. It starts at the raw offset with
// world-up, the way a freshly placed scene camera would.
func NewCamera(e *ecs.Entity, target *ecs.Entity, cfg CameraConfig) *Camera {
	c := &Camera{
		BaseBehavior: ecs.NewBaseBehavior(e),
		target:       target,
		offset:       cfg.Offset,
		sweep:        cfg.MouseSweep,
		smooth:       cfg.Smoothing,
		Position:     cfg.Offset,
		Up:           vmath.WorldUp,
	}
	e.Transform.Position = c.Position
	e.AddBehavior(c)
	return c
}

func (c *Camera) Kind() ecs.Kind { return ecs.KindCamera }

// Target returns the followed entity.
func (c *Camera) Target() *ecs.Entity { return c.target }

func (c *Camera) Update(frame *ecs.FrameContext) {
	if c.target == nil {
		return
	}
	tt := &c.target.Transform
	targetPos := tt.Position
	alpha := c.smooth.Alpha(frame.DeltaTime)

	desired := targetPos.Add(tt.Rotation.Rotate(c.offset))
	c.Position = vmath.Lerp(c.Position, desired, alpha)

	var px, py float64
	if frame.Input != nil {
		px, py = frame.Input.Pointer()
	}
	mouse := mgl64.Vec3{-px * c.sweep, py * c.sweep, 0}
	lookPos := targetPos.Add(tt.Rotation.Rotate(mouse))

	if !c.looking {
		c.Look = targetPos
		c.looking = true
	}
	c.Look = vmath.Lerp(c.Look, lookPos, alpha)

	own := &c.Entity().Transform
	own.Position = c.Position
	own.Up = c.Up
	own.LookAt(c.Look)

	if up := vmath.Normalize(vmath.Lerp(c.Up, tt.Up, alpha)); !vmath.IsZero(up) {
		c.Up = up
	}
	own.Up = c.Up
}
