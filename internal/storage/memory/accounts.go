package memory

import (
	"sort"
	"sync"

	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// AccountStore is the in-memory account table, keyed by client ID and
// growing lazily as new clients are observed. Safe for concurrent use.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[models.ClientID]*models.Account
}

// NewAccountStore returns an empty account table.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[models.ClientID]*models.Account),
	}
}

// GetOrCreate returns the ledger for the given client, creating a fresh
// active account with zero balances the first time the client is seen.
func (s *AccountStore) GetOrCreate(id models.ClientID) *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		acct = models.NewAccount(id)
		s.accounts[id] = acct
	}
	return acct
}

// List returns all accounts sorted by client ID.
func (s *AccountStore) List() []*models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out
}

var _ interfaces.AccountStore = (*AccountStore)(nil)
