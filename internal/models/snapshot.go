package models

import "github.com/shopspring/decimal"

// Snapshot is the final state of one account as emitted at the end of a run.
type Snapshot struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
