package behavior

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/vmath"
	"github.com/orbitflight/orbitflight/internal/gravity"
	"github.com/orbitflight/orbitflight/internal/input"
)

// DefaultPitchMargin keeps pitch this far short of straight up or down.
const DefaultPitchMargin = 0.55

// PlayerConfig tunes the player's controls.
type PlayerConfig struct {
	TurnSpeed   float64 // radians per second
	PitchMargin float64 // pitch limit is π/2 minus this
	Speed       SpeedModel // nil boosts by DefaultBoostMultiplier
}

// Arrow is a debug direction drawn at the player's position.
type Arrow struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// Player flies over the nearest gravity source. Each frame it rebuilds a local
// frame from gravity-up and the previous forward, steers heading and pitch from
// input, faces the steered direction with gravity-up as roll reference and moves.
type Player struct {
	ecs.BaseBehavior
	Shape *Shape

	field       gravity.Field
	speed       SpeedModel
	turnSpeed   float64
	pitchLimit  float64
	prevForward mgl64.Vec3
	heading     float64
	pitch       float64

	// Arrows holds forward, -right and right from the last update.
	Arrows [3]Arrow
}

// NewPlayer attaches the player's shape at spawn and then the player.
// The spawn point must not coincide with a gravity source center.
func NewPlayer(e *ecs.Entity, model string, spawn mgl64.Vec3, field gravity.Field, cfg PlayerConfig) *Player {
	if cfg.Speed == nil {
		cfg.Speed = BoostModel{Multiplier: DefaultBoostMultiplier}
	}
	p := &Player{
		BaseBehavior: ecs.NewBaseBehavior(e),
		field:        field,
		speed:        cfg.Speed,
		turnSpeed:    cfg.TurnSpeed,
		pitchLimit:   math.Pi/2 - cfg.PitchMargin,
		prevForward:  vmath.WorldForward,
	}
	p.Shape = NewShape(e, model, spawn)
	e.AddBehavior(p)
	return p
}

func (p *Player) Kind() ecs.Kind { return ecs.KindPlayer }

// Heading returns the accumulated heading in [0, 2π).
func (p *Player) Heading() float64 { return p.heading }

// Pitch returns the clamped pitch.
func (p *Player) Pitch() float64 { return p.pitch }

// PitchLimit returns the largest pitch magnitude the player can reach.
func (p *Player) PitchLimit() float64 { return p.pitchLimit }

// Source returns the gravity source currently acting on the player.
func (p *Player) Source() (gravity.Source, bool) {
	return p.field.Nearest(p.Entity().Transform.Position)
}

func (p *Player) Update(frame *ecs.FrameContext) {
	t := &p.Entity().Transform
	pos := t.Position

	// At a source center there is no down; keep last frame's up.
	if src, ok := p.field.Nearest(pos); ok {
		if toCenter := src.Center().Sub(pos); !vmath.IsZero(toCenter) {
			t.Up = vmath.Normalize(toCenter).Mul(-1)
		}
	}
	up := t.Up

	right := orthogonal(up, p.prevForward)
	forward := vmath.Normalize(right.Cross(up))

	dH, dV := p.steering(frame.Input)
	turn := p.turnSpeed * frame.DeltaTime
	p.heading = vmath.WrapAngle(p.heading + dH*turn)
	p.pitch = mgl64.Clamp(p.pitch+dV*turn, -p.pitchLimit, p.pitchLimit)

	// pitch about the axis of the current facing, not the rebuilt frame
	right = orthogonal(up, t.Forward())

	rotated := vmath.RotateAxis(forward, up, p.heading)
	rotated = vmath.Normalize(vmath.RotateAxis(rotated, right, p.pitch))

	t.LookAt(pos.Add(rotated))

	boosting := frame.Input != nil && frame.Input.Held(input.KeySpacebar)
	speed := p.speed.MoveSpeed(frame.MoveSpeed, boosting)
	t.Position = pos.Add(rotated.Mul(speed * frame.DeltaTime))

	p.prevForward = forward

	p.Arrows = [3]Arrow{
		{Origin: pos, Direction: rotated},
		{Origin: pos, Direction: right.Mul(-1)},
		{Origin: pos, Direction: right},
	}
}

func (p *Player) steering(in *input.Snapshot) (dH, dV float64) {
	if in == nil {
		return 0, 0
	}
	if in.Held(input.KeyLeft, input.KeyA) {
		dH++
	}
	if in.Held(input.KeyRight, input.KeyD) {
		dH--
	}
	if in.Held(input.KeyUp, input.KeyW) {
		dV--
	}
	if in.Held(input.KeyDown, input.KeyS) {
		dV++
	}
	return dH, dV
}

// orthogonal returns normalize(up × dir), falling back to any axis orthogonal to
// up when dir is parallel to it.
func orthogonal(up, dir mgl64.Vec3) mgl64.Vec3 {
	r := up.Cross(dir)
	if vmath.IsZero(r) {
		return vmath.Perpendicular(up)
	}
	return vmath.Normalize(r)
}
