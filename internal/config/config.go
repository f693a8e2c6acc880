package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Sim      SimConfig      `toml:"sim"`
	Viewer   ViewerConfig   `toml:"viewer"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimConfig struct {
	FrameRate       time.Duration `toml:"frame_rate"`       // ticker interval
	MaxDelta        time.Duration `toml:"max_delta"`        // delta time clamp
	MoveSpeed       float64       `toml:"move_speed"`       // units per second
	BoostMultiplier float64       `toml:"boost_multiplier"` // applied while spacebar is held
	TurnSpeed       float64       `toml:"turn_speed"`       // radians per second
	PitchMargin     float64       `toml:"pitch_margin"`     // pitch limit is π/2 minus this
	PlanetRadius    float64       `toml:"planet_radius"`
	Smoothing       string        `toml:"smoothing"` // "frame" or "time"
	SmoothFactor    float64       `toml:"smooth_factor"`
	SmoothRefRate   float64       `toml:"smooth_ref_rate"` // fps the factor is tuned for ("time" mode)
	CameraOffset    [3]float64    `toml:"camera_offset"`
	MouseSweep      float64       `toml:"mouse_sweep"`
	ScenePath       string        `toml:"scene_path"`  // empty = built-in scene
	ScriptsDir      string        `toml:"scripts_dir"` // empty = no Lua
}

type ViewerConfig struct {
	Enabled      bool          `toml:"enabled"`
	BindAddress  string        `toml:"bind_address"`
	OutQueueSize int           `toml:"out_queue_size"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables the flight recorder
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	SnapshotEvery   int           `toml:"snapshot_every"` // frames between recorder writes
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Validate rejects settings the frame loop cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Sim.FrameRate <= 0:
		return fmt.Errorf("sim.frame_rate must be positive")
	case c.Sim.MaxDelta <= 0:
		return fmt.Errorf("sim.max_delta must be positive")
	case c.Sim.PlanetRadius <= 0:
		return fmt.Errorf("sim.planet_radius must be positive")
	case c.Sim.SmoothFactor <= 0 || c.Sim.SmoothFactor > 1:
		return fmt.Errorf("sim.smooth_factor must be in (0, 1]")
	case c.Sim.Smoothing != "frame" && c.Sim.Smoothing != "time":
		return fmt.Errorf("sim.smoothing must be \"frame\" or \"time\", got %q", c.Sim.Smoothing)
	case c.Sim.PitchMargin < 0 || c.Sim.PitchMargin >= math.Pi/2:
		return fmt.Errorf("sim.pitch_margin must be in [0, π/2)")
	case c.Database.DSN != "" && c.Database.SnapshotEvery <= 0:
		return fmt.Errorf("database.snapshot_every must be positive")
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "orbitflight",
		},
		Sim: SimConfig{
			FrameRate:       time.Second / 60,
			MaxDelta:        time.Second / 20,
			MoveSpeed:       4,
			BoostMultiplier: 3,
			TurnSpeed:       4,
			PitchMargin:     0.55,
			PlanetRadius:    100,
			Smoothing:       "frame",
			SmoothFactor:    0.1,
			SmoothRefRate:   60,
			CameraOffset:    [3]float64{0, 3, -7},
			MouseSweep:      1.5 * math.Pi,
		},
		Viewer: ViewerConfig{
			Enabled:      true,
			BindAddress:  "127.0.0.1:7070",
			OutQueueSize: 8,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			SnapshotEvery:   60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
