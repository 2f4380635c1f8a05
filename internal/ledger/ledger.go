package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
	"github.com/yvan-sraka/tx-csv-001/internal/models/events"
)

// Processor applies transaction records to client accounts in strict input
// order. It owns one account table and one transaction history for the run;
// independent streams must each get their own Processor and stores.
type Processor struct {
	accounts  interfaces.AccountStore
	history   interfaces.HistoryStore
	publisher interfaces.EventPublisher // optional; nil disables events
	topic     string
	log       zerolog.Logger
}

// NewProcessor wires a processor to its stores.
func NewProcessor(accounts interfaces.AccountStore, history interfaces.HistoryStore) *Processor {
	return &Processor{
		accounts: accounts,
		history:  history,
		log:      zerolog.Nop(),
	}
}

// WithEvents attaches a publisher for account-locked events.
func (p *Processor) WithEvents(pub interfaces.EventPublisher, topic string) *Processor {
	p.publisher = pub
	p.topic = topic
	return p
}

// WithLogger attaches a logger for event-delivery warnings.
func (p *Processor) WithLogger(log zerolog.Logger) *Processor {
	p.log = log
	return p
}

// Process applies a single record to the account it addresses. On a
// recoverable condition (see IsRecoverable) the record has no effect at all:
// the account state before and after the call is identical, and nothing is
// added to the history. Any other error is fatal for the run.
func (p *Processor) Process(tx models.Transaction) error {
	acct := p.accounts.GetOrCreate(tx.ClientID)

	// A locked account rejects everything for the rest of the run.
	if acct.Locked() {
		return ErrAccountLocked
	}

	switch tx.Type {
	case models.TxDeposit:
		acct.Available = acct.Available.Add(tx.Amount)
		p.history.Record(tx.TxID, tx.Amount)

	case models.TxWithdrawal:
		if tx.Amount.GreaterThan(acct.Available) {
			return ErrInsufficientFunds
		}
		acct.Available = acct.Available.Sub(tx.Amount)
		p.history.Record(tx.TxID, tx.Amount)

	case models.TxDispute:
		amount, ok := p.history.Lookup(tx.TxID)
		if !ok {
			return ErrUnknownTransaction
		}
		// The account tracks at most one open dispute; a later dispute
		// re-targets it.
		acct.Status = models.StatusDisputed
		acct.Available = acct.Available.Sub(amount)
		acct.Held = acct.Held.Add(amount)

	case models.TxResolve:
		if acct.Status != models.StatusDisputed {
			return ErrNoOpenDispute
		}
		amount, ok := p.history.Lookup(tx.TxID)
		if !ok {
			return ErrUnknownTransaction
		}
		acct.Status = models.StatusActive
		acct.Held = acct.Held.Sub(amount)
		acct.Available = acct.Available.Add(amount)

	case models.TxChargeback:
		if acct.Status != models.StatusDisputed {
			return ErrNoOpenDispute
		}
		amount, ok := p.history.Lookup(tx.TxID)
		if !ok {
			return ErrUnknownTransaction
		}
		// The disputed funds leave the account for good.
		acct.Status = models.StatusLocked
		acct.Held = acct.Held.Sub(amount)
		p.publishLocked(tx, amount)

	default:
		return fmt.Errorf("ledger: unsupported transaction type %q", tx.Type)
	}

	return nil
}

// Snapshots returns the final state of every account observed during the run,
// ordered by client ID.
func (p *Processor) Snapshots() []models.Snapshot {
	accounts := p.accounts.List()
	snaps := make([]models.Snapshot, 0, len(accounts))
	for _, acct := range accounts {
		snaps = append(snaps, acct.Snapshot())
	}
	return snaps
}

// publishLocked emits an account-locked event when a publisher is configured.
// Delivery is advisory: a publish failure is logged and the ledger state
// stands.
func (p *Processor) publishLocked(tx models.Transaction, amount decimal.Decimal) {
	if p.publisher == nil {
		return
	}

	evt := events.AccountLocked{
		EventID:    uuid.NewString(),
		ClientID:   tx.ClientID,
		TxID:       tx.TxID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.publisher.Publish(p.topic, evt); err != nil {
		p.log.Warn().
			Err(err).
			Uint16("client", uint16(tx.ClientID)).
			Uint32("tx", uint32(tx.TxID)).
			Msg("account-locked event not published")
	}
}
