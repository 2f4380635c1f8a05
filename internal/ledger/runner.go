package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
)

// Stats counts what a run did with its input stream.
type Stats struct {
	// Records is the number of records read from the source.
	Records int64

	// Applied is the number of records that mutated an account.
	Applied int64

	// Per-reason counters for records discarded under the default policy.
	SkippedLocked            int64
	SkippedInsufficientFunds int64
	SkippedUnknownTx         int64
	SkippedNoOpenDispute     int64
}

// Skipped is the total number of discarded records.
func (s Stats) Skipped() int64 {
	return s.SkippedLocked + s.SkippedInsufficientFunds + s.SkippedUnknownTx + s.SkippedNoOpenDispute
}

// count routes a recoverable condition to its counter.
func (s *Stats) count(err error) {
	switch {
	case errors.Is(err, ErrAccountLocked):
		s.SkippedLocked++
	case errors.Is(err, ErrInsufficientFunds):
		s.SkippedInsufficientFunds++
	case errors.Is(err, ErrUnknownTransaction):
		s.SkippedUnknownTx++
	case errors.Is(err, ErrNoOpenDispute):
		s.SkippedNoOpenDispute++
	}
}

// Runner drains a record source through a processor, applying the strictness
// policy to recoverable conditions.
type Runner struct {
	proc   *Processor
	strict bool
	log    zerolog.Logger
}

// NewRunner builds a runner around proc. With strict set, the first
// recoverable condition aborts the run instead of being skipped.
func NewRunner(proc *Processor, strict bool, log zerolog.Logger) *Runner {
	return &Runner{proc: proc, strict: strict, log: log}
}

// Run consumes src to exhaustion, one record at a time and in order. Under
// the default policy recoverable conditions are counted, logged and skipped;
// in strict mode the first one ends the run with an error. Read errors and
// context cancellation always abort. The returned Stats are valid in every
// case and describe the records handled up to the stop point.
func (r *Runner) Run(ctx context.Context, src interfaces.RecordSource) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("ledger: reading record: %w", err)
		}
		stats.Records++

		err = r.proc.Process(tx)
		if err == nil {
			stats.Applied++
			continue
		}
		if !IsRecoverable(err) {
			return stats, err
		}
		if r.strict {
			return stats, fmt.Errorf("ledger: record %d (client %d, tx %d): %w",
				stats.Records, tx.ClientID, tx.TxID, err)
		}

		stats.count(err)
		r.log.Warn().
			Err(err).
			Uint16("client", uint16(tx.ClientID)).
			Uint32("tx", uint32(tx.TxID)).
			Str("type", string(tx.Type)).
			Msg("record skipped")
	}
}
