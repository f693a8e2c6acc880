package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orbitflight/orbitflight/internal/config"
	"go.uber.org/zap"
)

// ApplicationName tags recorder sessions in pg_stat_activity.
const ApplicationName = "orbitflight-recorder"

const pingTimeout = 5 * time.Second

// DB is the flight recorder's connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// poolConfig maps the [database] section onto a pgx pool config. The recorder
// writes from a single goroutine, so zero or negative sizes fall back to one
// connection.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.MaxConns = int32(max(cfg.MaxOpenConns, 1))
	pc.MinConns = int32(min(max(cfg.MaxIdleConns, 0), int(pc.MaxConns)))
	if cfg.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if _, ok := pc.ConnConfig.RuntimeParams["application_name"]; !ok {
		pc.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	}
	return pc, nil
}

// NewDB opens the pool and verifies the server answers.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	log.Info("recorder database ready",
		zap.String("host", pc.ConnConfig.Host),
		zap.String("database", pc.ConnConfig.Database),
		zap.Int32("max_conns", pc.MaxConns))

	return &DB{Pool: pool, log: log}, nil
}

// Close logs pool usage and releases every connection.
func (db *DB) Close() {
	st := db.Pool.Stat()
	db.log.Debug("closing recorder database",
		zap.Int64("acquires", st.AcquireCount()),
		zap.Duration("acquire_wait", st.AcquireDuration()))
	db.Pool.Close()
}
