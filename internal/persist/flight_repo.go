package persist

import (
	"context"
	"fmt"
)

// EntitySnapshot is one entity's placement at a recorded frame.
type EntitySnapshot struct {
	EntityID uint64
	Name     string
	Position [3]float64
	Up       [3]float64
	Contacts int // surface corrections since the previous snapshot
}

type FlightRepo struct {
	db *DB
}

func NewFlightRepo(db *DB) *FlightRepo {
	return &FlightRepo{db: db}
}

// SaveSnapshots writes every entity of one frame in a single transaction.
func (r *FlightRepo) SaveSnapshots(ctx context.Context, frame uint64, simTime float64, snaps []EntitySnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("snapshot begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range snaps {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flight_snapshots
			   (frame, sim_time, entity_id, entity_name, pos_x, pos_y, pos_z, up_x, up_y, up_z, contact_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			int64(frame), simTime, int64(s.EntityID), s.Name,
			s.Position[0], s.Position[1], s.Position[2],
			s.Up[0], s.Up[1], s.Up[2],
			s.Contacts,
		); err != nil {
			return fmt.Errorf("snapshot insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// LastFrame returns the highest recorded frame, or 0 when nothing was recorded.
func (r *FlightRepo) LastFrame(ctx context.Context) (uint64, error) {
	var frame int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(frame), 0) FROM flight_snapshots`,
	).Scan(&frame)
	if err != nil {
		return 0, fmt.Errorf("last frame: %w", err)
	}
	return uint64(frame), nil
}
