package events

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// AccountLocked is published when a chargeback freezes a client account.
// Amount is the disputed value permanently removed from the account's total.
type AccountLocked struct {
	EventID    string          `json:"event_id"`
	ClientID   models.ClientID `json:"client_id"`
	TxID       models.TxID     `json:"tx_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}
