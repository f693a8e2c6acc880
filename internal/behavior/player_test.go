package behavior

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/gravity"
	"github.com/orbitflight/orbitflight/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRadius    = 100.0
	testMoveSpeed = 4.0
	testTurnSpeed = 4.0
)

type rig struct {
	manager *ecs.Manager
	input   *input.Snapshot
	planet  *Planet
	player  *Player
}

func newRig(t *testing.T, spawn mgl64.Vec3) *rig {
	t.Helper()
	m := ecs.NewManager()
	planet := NewPlanet(m.CreateEntity("planet"), "planet", mgl64.Vec3{}, testRadius)
	player := NewPlayer(m.CreateEntity("player"), "box", spawn, gravity.NewRegistry(planet), PlayerConfig{
		TurnSpeed:   testTurnSpeed,
		PitchMargin: DefaultPitchMargin,
		Speed:       BoostModel{Multiplier: 3},
	})
	return &rig{manager: m, input: input.NewSnapshot(input.DefaultKeyTable()), planet: planet, player: player}
}

func (r *rig) step(dt float64) {
	r.manager.Update(&ecs.FrameContext{DeltaTime: dt, MoveSpeed: testMoveSpeed, Input: r.input})
	r.input.Update()
}

func (r *rig) transform() *ecs.Transform {
	return &r.player.Entity().Transform
}

func TestPlayer_AttachesShapeFirst(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, -testRadius / 2})
	bs := r.player.Entity().Behaviors()
	require.Len(t, bs, 2)
	assert.Equal(t, ecs.KindShape, bs[0].Kind())
	assert.Equal(t, ecs.KindPlayer, bs[1].Kind())

	shape, ok := ecs.GetBehavior[*Shape](r.player.Entity())
	require.True(t, ok)
	assert.Equal(t, "box", shape.Model)
}

func TestPlayer_IdleFrameKeepsPositionAndDerivesUp(t *testing.T) {
	spawn := mgl64.Vec3{0, testRadius, -testRadius / 2}
	r := newRig(t, spawn)

	r.step(0)

	tr := r.transform()
	assertNear(t, spawn, tr.Position, 1e-9, "position %v", tr.Position)
	// up points from the planet center through the player
	assertNear(t, spawn.Normalize(), tr.Up, 1e-9, "up %v", tr.Up)
	assert.Greater(t, tr.Up.Y(), 0.0)
}

func TestPlayer_UpIsWorldUpAboveNorthPole(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, 0})
	r.step(0)
	assertNear(t, mgl64.Vec3{0, 1, 0}, r.transform().Up, 1e-9, "up %v", r.transform().Up)
}

func TestPlayer_FacingIsTangentToSphere(t *testing.T) {
	r := newRig(t, mgl64.Vec3{30, 80, -40})
	for i := 0; i < 10; i++ {
		r.step(1.0 / 60)
	}
	tr := r.transform()
	assert.InDelta(t, 0.0, tr.Forward().Dot(tr.Up), 1e-6)
	assert.InDelta(t, 1.0, tr.Up.Len(), 1e-9)
}

func TestPlayer_MovesForwardAtBaseSpeed(t *testing.T) {
	spawn := mgl64.Vec3{0, testRadius, -testRadius / 2}
	r := newRig(t, spawn)
	const dt = 0.05

	r.step(dt)

	moved := r.transform().Position.Sub(spawn).Len()
	assert.InDelta(t, testMoveSpeed*dt, moved, 1e-9)
}

func TestPlayer_BoostTriplesDisplacement(t *testing.T) {
	spawn := mgl64.Vec3{0, testRadius, -testRadius / 2}
	r := newRig(t, spawn)
	const dt = 0.05

	r.input.SetKey(32, true)
	r.step(dt)

	moved := r.transform().Position.Sub(spawn).Len()
	assert.InDelta(t, 3*testMoveSpeed*dt, moved, 1e-9)
}

func TestPlayer_NilSpeedModelStillBoosts(t *testing.T) {
	m := ecs.NewManager()
	planet := NewPlanet(m.CreateEntity("planet"), "planet", mgl64.Vec3{}, testRadius)
	spawn := mgl64.Vec3{0, testRadius, -testRadius / 2}
	player := NewPlayer(m.CreateEntity("player"), "box", spawn, gravity.NewRegistry(planet), PlayerConfig{
		TurnSpeed:   testTurnSpeed,
		PitchMargin: DefaultPitchMargin,
	})
	in := input.NewSnapshot(input.DefaultKeyTable())
	in.SetKey(32, true)

	const dt = 0.05
	m.Update(&ecs.FrameContext{DeltaTime: dt, MoveSpeed: testMoveSpeed, Input: in})

	moved := player.Entity().Transform.Position.Sub(spawn).Len()
	assert.InDelta(t, DefaultBoostMultiplier*testMoveSpeed*dt, moved, 1e-9)
}

func TestPlayer_HeadingWrapsBackToStart(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, 0})
	r.input.SetKey(37, true)

	const dt = 1.0 / 64
	delta := testTurnSpeed * dt
	frames := int(math.Round(2 * math.Pi / delta))

	start := r.player.Heading()
	for i := 0; i < frames; i++ {
		r.step(dt)
		h := r.player.Heading()
		require.GreaterOrEqual(t, h, 0.0)
		require.Less(t, h, 2*math.Pi)
	}

	// frames*delta differs from 2π by less than one step
	diff := math.Abs(math.Remainder(r.player.Heading()-start, 2*math.Pi))
	assert.Less(t, diff, delta)
}

func TestPlayer_HeadingTurnsLeftAndRight(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, 0})
	r.input.SetKey(65, true)
	r.step(0.1)
	assert.InDelta(t, 0.4, r.player.Heading(), 1e-9)

	r.input.SetKey(65, false)
	r.input.SetKey(68, true)
	r.step(0.2)
	assert.InDelta(t, 2*math.Pi-0.4, r.player.Heading(), 1e-9)
}

func TestPlayer_PitchClamped(t *testing.T) {
	for _, code := range []int{38, 40} {
		r := newRig(t, mgl64.Vec3{0, testRadius, 0})
		r.input.SetKey(code, true)

		limit := math.Pi/2 - DefaultPitchMargin
		for i := 0; i < 500; i++ {
			r.step(1.0 / 30)
			require.LessOrEqual(t, math.Abs(r.player.Pitch()), limit)
		}
		assert.InDelta(t, limit, math.Abs(r.player.Pitch()), 1e-12)
		assert.Equal(t, limit, r.player.PitchLimit())
	}
}

func TestPlayer_PitchSignFollowsKeys(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, 0})
	r.input.SetKey(87, true)
	r.step(0.1)
	assert.Less(t, r.player.Pitch(), 0.0)

	r.input.SetKey(87, false)
	r.input.SetKey(83, true)
	r.step(0.2)
	assert.Greater(t, r.player.Pitch(), 0.0)
}

func TestPlayer_DegenerateCenterKeepsPreviousUp(t *testing.T) {
	r := newRig(t, mgl64.Vec3{})
	r.step(1.0 / 60)

	tr := r.transform()
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(tr.Position[i]))
		assert.False(t, math.IsNaN(tr.Up[i]))
	}
	assertNear(t, mgl64.Vec3{0, 1, 0}, tr.Up, 1e-9)
}

func TestPlayer_DebugArrows(t *testing.T) {
	spawn := mgl64.Vec3{0, testRadius, 0}
	r := newRig(t, spawn)
	r.step(0.01)

	a := r.player.Arrows
	for _, arrow := range a {
		assertNear(t, spawn, arrow.Origin, 1e-9)
		assert.InDelta(t, 1.0, arrow.Direction.Len(), 1e-9)
	}
	assertNear(t, a[2].Direction.Mul(-1), a[1].Direction, 1e-9)
}

func TestPlayer_SourceInjected(t *testing.T) {
	r := newRig(t, mgl64.Vec3{0, testRadius, 0})
	src, ok := r.player.Source()
	require.True(t, ok)
	assert.Same(t, r.planet, src.(*Planet))
	assert.Equal(t, testRadius, src.Radius())
}

// assertNear compares vectors by absolute distance; mgl64's ApproxEqual is
// relative and rejects tiny residues on exactly-zero components.
func assertNear(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, got.Sub(want).Len(), delta, msgAndArgs...)
}
