package memory

import (
	"sync"

	"github.com/shopspring/decimal"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// HistoryStore is the in-memory transaction history. It keeps the amount of
// every applied deposit and withdrawal so later dispute-lifecycle records can
// resolve their transaction references. Entries only accumulate; nothing is
// removed during a run.
type HistoryStore struct {
	mu      sync.Mutex
	amounts map[models.TxID]decimal.Decimal
}

// NewHistoryStore returns an empty history.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		amounts: make(map[models.TxID]decimal.Decimal),
	}
}

// Record stores the amount for a transaction ID, overwriting any previous
// value.
func (s *HistoryStore) Record(id models.TxID, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.amounts[id] = amount
}

// Lookup returns the amount recorded for the ID, if any.
func (s *HistoryStore) Lookup(id models.TxID) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, ok := s.amounts[id]
	return amount, ok
}

var _ interfaces.HistoryStore = (*HistoryStore)(nil)
