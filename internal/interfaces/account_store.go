package interfaces

import (
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// AccountStore is the per-client ledger table. Accounts are created lazily the
// first time a client ID is referenced and live for the remainder of the run,
// locked or not.
type AccountStore interface {
	// GetOrCreate returns the ledger for the given client, creating it with
	// zero balances and active status when the client is new.
	GetOrCreate(id models.ClientID) *models.Account

	// List returns every account observed so far, ordered by client ID.
	List() []*models.Account
}
