package interfaces

import (
	"github.com/shopspring/decimal"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// HistoryStore maps a transaction ID to the amount originally moved by the
// deposit or withdrawal that carried it. Dispute, resolve and chargeback
// records resolve their references through it. History only grows during a
// run; no deletion is exposed.
type HistoryStore interface {
	// Record stores the amount for a transaction ID, overwriting any previous
	// value.
	Record(id models.TxID, amount decimal.Decimal)

	// Lookup returns the recorded amount, or false when the ID was never
	// recorded by a deposit or withdrawal.
	Lookup(id models.TxID) (decimal.Decimal, bool)
}
