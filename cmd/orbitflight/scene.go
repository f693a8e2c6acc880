package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/orbitflight/orbitflight/internal/behavior"
	"github.com/orbitflight/orbitflight/internal/config"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/data"
	"github.com/orbitflight/orbitflight/internal/gravity"
)

// scene holds the bootstrapped entities.
type scene struct {
	manager *ecs.Manager
	field   *gravity.Registry
	planet  *behavior.Planet
	player  *behavior.Player
	camera  *behavior.Camera
}

// buildScene creates the planet, the player standing on it and the camera
// following the player, in that order.
func buildScene(sim config.SimConfig, sc *data.Scene, speed behavior.SpeedModel) *scene {
	m := ecs.NewManager()

	planet := behavior.NewPlanet(m.CreateEntity(sc.Planet.Name), sc.Planet.Model, vec3(sc.Planet.Position), sim.PlanetRadius)
	field := gravity.NewRegistry(planet)

	player := behavior.NewPlayer(m.CreateEntity(sc.Player.Name), sc.Player.Model, vec3(sc.Player.Spawn), field, behavior.PlayerConfig{
		TurnSpeed:   sim.TurnSpeed,
		PitchMargin: sim.PitchMargin,
		Speed:       speed,
	})

	offset := mgl64.Vec3(sim.CameraOffset)
	if sc.Camera.Offset != nil {
		offset = vec3(*sc.Camera.Offset)
	}
	camera := behavior.NewCamera(m.CreateEntity(sc.Camera.Name), player.Entity(), behavior.CameraConfig{
		Offset:     offset,
		MouseSweep: sim.MouseSweep,
		Smoothing: behavior.Smoother{
			Mode:    behavior.SmoothingMode(sim.Smoothing),
			Factor:  sim.SmoothFactor,
			RefRate: sim.SmoothRefRate,
		},
	})

	return &scene{manager: m, field: field, planet: planet, player: player, camera: camera}
}

func vec3(v data.Vec3) mgl64.Vec3 {
	return mgl64.Vec3(v)
}
