package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vec3 is an [x, y, z] triple as written in YAML.
type Vec3 [3]float64

// PlanetEntry places the gravity source.
type PlanetEntry struct {
	Name     string `yaml:"name"`
	Model    string `yaml:"model"`
	Position Vec3   `yaml:"position"`
}

// PlayerEntry places the player.
type PlayerEntry struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
	Spawn Vec3   `yaml:"spawn"`
}

// CameraEntry names the follow camera. A nil Offset falls back to sim.camera_offset.
type CameraEntry struct {
	Name   string `yaml:"name"`
	Offset *Vec3  `yaml:"offset"`
}

// Scene is the initial entity layout.
type Scene struct {
	Planet PlanetEntry `yaml:"planet"`
	Player PlayerEntry `yaml:"player"`
	Camera CameraEntry `yaml:"camera"`
}

// DefaultScene puts the planet at the origin and the player on its surface
// at (0, r, -r/2).
func DefaultScene(radius float64) *Scene {
	return &Scene{
		Planet: PlanetEntry{Name: "planet", Model: "sphere"},
		Player: PlayerEntry{Name: "player", Model: "box", Spawn: Vec3{0, radius, -radius / 2}},
		Camera: CameraEntry{Name: "camera"},
	}
}

// LoadScene reads a scene file over DefaultScene(radius).
func LoadScene(path string, radius float64) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s := DefaultScene(radius)
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if s.Player.Spawn == s.Planet.Position {
		return nil, fmt.Errorf("scene: player spawn %v coincides with planet center", s.Player.Spawn)
	}
	return s, nil
}
