package interfaces

import (
	"context"
	"time"

	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// SnapshotArchiver exports the final snapshots of a run to durable storage.
// The engine only ever writes through it; archived state is never read back
// into a later run.
type SnapshotArchiver interface {
	// EnsureSchema prepares the backing store to accept snapshots.
	EnsureSchema(ctx context.Context) error

	// SaveSnapshots stores one row per account under runID.
	SaveSnapshots(ctx context.Context, runID string, at time.Time, snaps []models.Snapshot) error
}
