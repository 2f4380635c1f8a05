package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yvan-sraka/tx-csv-001/internal/config"
	"github.com/yvan-sraka/tx-csv-001/internal/csvio"
	"github.com/yvan-sraka/tx-csv-001/internal/events/kafka"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/ledger"
	"github.com/yvan-sraka/tx-csv-001/internal/logger"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
	"github.com/yvan-sraka/tx-csv-001/internal/storage/memory"
	"github.com/yvan-sraka/tx-csv-001/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// run executes one full pass: read every transaction from the input, apply
// it to the ledger, then emit the final snapshot CSV on stdout. Optional
// sinks (event broker, snapshot archive) are wired in only when configured.
func run(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer, log zerolog.Logger) error {
	input, closeInput, err := openInput(cfg.InputPath, stdin)
	if err != nil {
		return err
	}
	defer closeInput()

	var accounts interfaces.AccountStore = memory.NewAccountStore()
	var history interfaces.HistoryStore = memory.NewHistoryStore()
	proc := ledger.NewProcessor(accounts, history).WithLogger(log)

	if len(cfg.EventBrokers) > 0 {
		pub := kafka.NewPublisher(cfg.EventBrokers)
		defer pub.Close()
		proc = proc.WithEvents(pub, cfg.EventTopic)
		log.Debug().Strs("brokers", cfg.EventBrokers).Str("topic", cfg.EventTopic).
			Msg("event publishing enabled")
	}

	runner := ledger.NewRunner(proc, cfg.Strict, log)
	stats, err := runner.Run(ctx, csvio.NewReader(input))
	if err != nil {
		return err
	}

	snaps := proc.Snapshots()
	if err := csvio.WriteSnapshots(stdout, snaps); err != nil {
		return err
	}

	if cfg.ArchiveDSN != "" {
		if err := archive(ctx, cfg.ArchiveDSN, snaps); err != nil {
			return err
		}
	}

	log.Info().
		Int64("records", stats.Records).
		Int64("applied", stats.Applied).
		Int64("skipped", stats.Skipped()).
		Int("accounts", len(snaps)).
		Msg("run complete")
	return nil
}

// openInput resolves the transaction stream. An empty path or "-" selects
// stdin.
func openInput(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, f.Close, nil
}

// archive stores the final snapshots under a fresh run ID.
func archive(ctx context.Context, dsn string, snaps []models.Snapshot) error {
	db, err := postgres.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var arch interfaces.SnapshotArchiver = postgres.NewArchive(db)
	if err := arch.EnsureSchema(ctx); err != nil {
		return err
	}
	return arch.SaveSnapshots(ctx, uuid.NewString(), time.Now().UTC(), snaps)
}
