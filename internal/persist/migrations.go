package persist

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

func migrationFS() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate brings the flight recorder schema up to date and logs each applied
// version.
func (db *DB) Migrate(ctx context.Context) error {
	fsys, err := migrationFS()
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	for _, r := range results {
		db.log.Info("migration applied",
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration))
	}
	return nil
}
