package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orbitflight/orbitflight/internal/behavior"
	"github.com/orbitflight/orbitflight/internal/config"
	"github.com/orbitflight/orbitflight/internal/core/ecs"
	"github.com/orbitflight/orbitflight/internal/core/event"
	coresys "github.com/orbitflight/orbitflight/internal/core/system"
	"github.com/orbitflight/orbitflight/internal/data"
	"github.com/orbitflight/orbitflight/internal/input"
	"github.com/orbitflight/orbitflight/internal/persist"
	"github.com/orbitflight/orbitflight/internal/scripting"
	"github.com/orbitflight/orbitflight/internal/system"
	"github.com/orbitflight/orbitflight/internal/viewer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

func run() error {
	// 1. Load config
	cfgPath := "config/orbitflight.toml"
	if p := os.Getenv("ORBITFLIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log.Info("starting", serverFields(cfg.Server)...)

	// 3. Load scene
	sc := data.DefaultScene(cfg.Sim.PlanetRadius)
	if cfg.Sim.ScenePath != "" {
		sc, err = data.LoadScene(cfg.Sim.ScenePath, cfg.Sim.PlanetRadius)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	printOK(fmt.Sprintf("scene: planet %q, player %q", sc.Planet.Name, sc.Player.Name))

	// 4. Movement speed model (Lua when scripts are configured)
	var speed behavior.SpeedModel = behavior.BoostModel{Multiplier: cfg.Sim.BoostMultiplier}
	if cfg.Sim.ScriptsDir != "" {
		engine, err := scripting.NewEngine(cfg.Sim.ScriptsDir, cfg.Sim.BoostMultiplier, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		speed = engine
		printOK("lua movement scripts loaded")
	}

	// 5. Build entities
	world := buildScene(cfg.Sim, sc, speed)
	snapshot := input.NewSnapshot(input.DefaultKeyTable())
	bus := event.NewBus()

	// 6. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewEntitySystem(world.manager))
	runner.Register(system.NewInputResetSystem(snapshot))
	runner.Register(system.NewCollisionSystem(world.manager, bus, log))

	var viewerSrv *viewer.Server
	if cfg.Viewer.Enabled {
		viewerSrv = viewer.NewServer(cfg.Viewer, snapshot, log)
		if err := viewerSrv.Listen(cfg.Viewer.BindAddress); err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
		runner.Register(system.NewViewerSystem(world.manager, viewerSrv))
	}

	// 7. Flight recorder (optional)
	var recorder *system.RecorderSystem
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		repo := persist.NewFlightRepo(db)
		last, err := repo.LastFrame(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("flight recorder: %w", err)
		}
		recorder = system.NewRecorderSystem(world.manager, repo, bus, cfg.Database.SnapshotEvery, log)
		runner.Register(recorder)
		log.Info("flight recorder enabled", zap.Uint64("previous_last_frame", last), zap.Int("every", cfg.Database.SnapshotEvery))
		printOK("flight recorder enabled")
	}

	// 8. Start frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.FrameRate)
	defer ticker.Stop()

	if viewerSrv != nil {
		printReady(fmt.Sprintf("viewer listening on ws://%s/ws", viewerSrv.Addr()))
	}
	printReady(fmt.Sprintf("frame loop started (frame: %s)", cfg.Sim.FrameRate))

	clock := coresys.NewClock(cfg.Sim.MaxDelta)
	start := time.Now()
	frame := &ecs.FrameContext{MoveSpeed: cfg.Sim.MoveSpeed, Input: snapshot}

	for {
		select {
		case <-ticker.C:
			frame.Frame++
			frame.Time, frame.DeltaTime = clock.Advance(time.Since(start))
			runner.Tick(frame)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if recorder != nil {
				if err := recorder.Flush(ctx, frame); err != nil {
					log.Error("final flight snapshot failed", zap.Error(err))
				}
			}
			if viewerSrv != nil {
				if err := viewerSrv.Shutdown(ctx); err != nil {
					log.Warn("viewer shutdown", zap.Error(err))
				}
			}
			cancel()
			log.Info("stopped",
				zap.String("server", cfg.Server.Name),
				zap.Uint64("frames", frame.Frame),
				zap.Duration("uptime", time.Since(time.Unix(cfg.Server.StartTime, 0)).Round(time.Second)))
			return nil
		}
	}
}

// serverFields identifies this instance in the startup log.
func serverFields(s config.ServerConfig) []zap.Field {
	return []zap.Field{
		zap.String("server", s.Name),
		zap.Time("started", time.Unix(s.StartTime, 0)),
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
