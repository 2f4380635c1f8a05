package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// Open connects to the archive database and verifies it is reachable.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening archive database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: reaching archive database: %w", err)
	}
	return db, nil
}

// Archive persists end-of-run account snapshots for later inspection. It is
// write-only: the engine never reads prior state back out of it.
type Archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) *Archive {
	return &Archive{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist yet.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS account_snapshots (
		run_id     TEXT        NOT NULL,
		client_id  INTEGER     NOT NULL,
		available  NUMERIC     NOT NULL,
		held       NUMERIC     NOT NULL,
		total      NUMERIC     NOT NULL,
		locked     BOOLEAN     NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (run_id, client_id)
	)`

	if _, err := a.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("postgres: creating snapshot table: %w", err)
	}
	return nil
}

// SaveSnapshots stores one row per account under runID, all within a single
// database transaction.
func (a *Archive) SaveSnapshots(ctx context.Context, runID string, at time.Time, snaps []models.Snapshot) error {
	dbTx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: beginning archive transaction: %w", err)
	}
	defer dbTx.Rollback()

	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, snap := range snaps {
		_, err := dbTx.ExecContext(ctx, query,
			runID, int64(snap.ClientID), snap.Available, snap.Held, snap.Total, snap.Locked, at)
		if err != nil {
			return fmt.Errorf("postgres: archiving client %d: %w", snap.ClientID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("postgres: committing archive: %w", err)
	}
	return nil
}

var _ interfaces.SnapshotArchiver = (*Archive)(nil)
