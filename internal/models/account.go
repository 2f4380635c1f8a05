package models

import "github.com/shopspring/decimal"

// Status is the dispute-lifecycle state of an account. The states are
// mutually exclusive: an account with an open dispute is not locked and a
// locked account has no open dispute.
type Status string

const (
	// StatusActive is the default state; every record variant is accepted.
	StatusActive Status = "active"
	// StatusDisputed marks an account with an open dispute backed by held funds.
	StatusDisputed Status = "disputed"
	// StatusLocked is entered on chargeback and never left; the account
	// rejects all further records.
	StatusLocked Status = "locked"
)

// Account is the per-client ledger: the funds usable for withdrawal, the funds
// frozen behind an open dispute, and the lifecycle status. Held only moves
// through dispute-lifecycle transitions, never through deposits or
// withdrawals.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Status    Status
}

// NewAccount returns the ledger a client starts with: zero balances, active.
func NewAccount(id ClientID) *Account {
	return &Account{
		ClientID:  id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Status:    StatusActive,
	}
}

// Total is the sum of available and held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// Locked reports whether the account rejects further records.
func (a *Account) Locked() bool {
	return a.Status == StatusLocked
}

// Snapshot projects the account into an output row.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ClientID:  a.ClientID,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked(),
	}
}
