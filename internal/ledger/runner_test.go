package ledger

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// sliceSource replays a fixed set of records, then reports err or io.EOF.
type sliceSource struct {
	txs []models.Transaction
	i   int
	err error
}

func (s *sliceSource) Next() (models.Transaction, error) {
	if s.i >= len(s.txs) {
		if s.err != nil {
			return models.Transaction{}, s.err
		}
		return models.Transaction{}, io.EOF
	}
	tx := s.txs[s.i]
	s.i++
	return tx, nil
}

func TestRunnerAppliesCleanStream(t *testing.T) {
	p, accounts := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	src := &sliceSource{txs: []models.Transaction{
		deposit(1, 1, "1.0"),
		deposit(2, 2, "2.0"),
		deposit(1, 3, "2.0"),
		withdrawal(1, 4, "1.5"),
	}}

	stats, err := r.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Records != 4 || stats.Applied != 4 || stats.Skipped() != 0 {
		t.Errorf("stats = %+v, want 4 records, 4 applied, 0 skipped", stats)
	}
	checkAccount(t, accounts.GetOrCreate(1), "1.5", "0", models.StatusActive)
	checkAccount(t, accounts.GetOrCreate(2), "2.0", "0", models.StatusActive)
}

func TestRunnerEmptySource(t *testing.T) {
	p, _ := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	stats, err := r.Run(context.Background(), &sliceSource{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Records != 0 {
		t.Errorf("stats.Records = %d, want 0", stats.Records)
	}
}

func TestRunnerSkipsRecoverable(t *testing.T) {
	p, accounts := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	src := &sliceSource{txs: []models.Transaction{
		deposit(1, 1, "5.0"),
		withdrawal(1, 2, "9.0"),          // insufficient funds
		ref(models.TxDispute, 1, 99),     // unknown transaction
		ref(models.TxResolve, 1, 1),      // no open dispute
		ref(models.TxDispute, 1, 1),      // applied
		ref(models.TxChargeback, 1, 1),   // applied, locks the account
		deposit(1, 3, "1.0"),             // account locked
	}}

	stats, err := r.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Records != 7 {
		t.Errorf("stats.Records = %d, want 7", stats.Records)
	}
	if stats.Applied != 3 {
		t.Errorf("stats.Applied = %d, want 3", stats.Applied)
	}
	if stats.Skipped() != 4 {
		t.Errorf("stats.Skipped() = %d, want 4", stats.Skipped())
	}
	if stats.SkippedInsufficientFunds != 1 || stats.SkippedUnknownTx != 1 ||
		stats.SkippedNoOpenDispute != 1 || stats.SkippedLocked != 1 {
		t.Errorf("per-reason counters = %+v, want one of each", stats)
	}
	checkAccount(t, accounts.GetOrCreate(1), "0.0", "0.0", models.StatusLocked)
}

func TestRunnerSkippedRecordsLeaveNoTrace(t *testing.T) {
	// A lenient run over a stream with failing records must end in the same
	// state as a run over that stream with the failing records removed.
	dirty := []models.Transaction{
		deposit(1, 1, "5.0"),
		withdrawal(1, 2, "9.0"),      // skipped: insufficient funds
		ref(models.TxDispute, 1, 99), // skipped: unknown transaction
		deposit(2, 3, "2.0"),
		ref(models.TxResolve, 2, 3), // skipped: no open dispute
		withdrawal(1, 4, "1.0"),
	}
	clean := []models.Transaction{
		deposit(1, 1, "5.0"),
		deposit(2, 3, "2.0"),
		withdrawal(1, 4, "1.0"),
	}

	dirtyProc, _ := newTestProcessor()
	if _, err := NewRunner(dirtyProc, false, zerolog.Nop()).Run(context.Background(), &sliceSource{txs: dirty}); err != nil {
		t.Fatalf("Run(dirty): %v", err)
	}
	cleanProc, _ := newTestProcessor()
	if _, err := NewRunner(cleanProc, false, zerolog.Nop()).Run(context.Background(), &sliceSource{txs: clean}); err != nil {
		t.Fatalf("Run(clean): %v", err)
	}

	got, want := dirtyProc.Snapshots(), cleanProc.Snapshots()
	if len(got) != len(want) {
		t.Fatalf("snapshot count = %d, want %d", len(got), len(want))
	}
	for i := range got {
		g, w := got[i], want[i]
		if g.ClientID != w.ClientID || g.Locked != w.Locked ||
			!g.Available.Equal(w.Available) || !g.Held.Equal(w.Held) || !g.Total.Equal(w.Total) {
			t.Errorf("snapshot[%d] differs: got client %d %s/%s/%s, want client %d %s/%s/%s",
				i, g.ClientID, g.Available, g.Held, g.Total, w.ClientID, w.Available, w.Held, w.Total)
		}
	}
}

func TestRunnerStrictAbortsOnFirstRecoverable(t *testing.T) {
	p, accounts := newTestProcessor()
	r := NewRunner(p, true, zerolog.Nop())

	src := &sliceSource{txs: []models.Transaction{
		deposit(1, 1, "5.0"),
		withdrawal(1, 2, "9.0"),
		deposit(1, 3, "1.0"), // never reached
	}}

	stats, err := r.Run(context.Background(), src)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Run() error = %v, want ErrInsufficientFunds", err)
	}
	if stats.Records != 2 || stats.Applied != 1 {
		t.Errorf("stats = %+v, want 2 records, 1 applied", stats)
	}
	// State up to the failing record is preserved.
	checkAccount(t, accounts.GetOrCreate(1), "5.0", "0", models.StatusActive)
}

func TestRunnerStrictPassesCleanStream(t *testing.T) {
	p, _ := newTestProcessor()
	r := NewRunner(p, true, zerolog.Nop())

	src := &sliceSource{txs: []models.Transaction{
		deposit(1, 1, "5.0"),
		ref(models.TxDispute, 1, 1),
		ref(models.TxResolve, 1, 1),
	}}

	stats, err := r.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Applied != 3 {
		t.Errorf("stats.Applied = %d, want 3", stats.Applied)
	}
}

func TestRunnerReadErrorAborts(t *testing.T) {
	p, _ := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	readErr := errors.New("line 3: malformed record")
	src := &sliceSource{
		txs: []models.Transaction{deposit(1, 1, "5.0")},
		err: readErr,
	}

	stats, err := r.Run(context.Background(), src)
	if !errors.Is(err, readErr) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, readErr)
	}
	if stats.Records != 1 || stats.Applied != 1 {
		t.Errorf("stats = %+v, want 1 record applied before the failure", stats)
	}
}

func TestRunnerUnsupportedTypeAbortsEvenWhenLenient(t *testing.T) {
	p, _ := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	src := &sliceSource{txs: []models.Transaction{
		{Type: "transfer", ClientID: 1, TxID: 1},
	}}

	if _, err := r.Run(context.Background(), src); err == nil {
		t.Fatal("Run() returned nil, want error for unsupported type")
	}
}

func TestRunnerContextCancellation(t *testing.T) {
	p, _ := newTestProcessor()
	r := NewRunner(p, false, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &sliceSource{txs: []models.Transaction{deposit(1, 1, "5.0")}}
	stats, err := r.Run(ctx, src)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if stats.Records != 0 {
		t.Errorf("stats.Records = %d, want 0", stats.Records)
	}
}
