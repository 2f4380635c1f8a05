package models

import "github.com/shopspring/decimal"

// ClientID identifies a client account. The input contract stores client IDs
// on unsigned 16-bit integers.
type ClientID uint16

// TxID identifies a transaction. IDs are globally unique across all clients
// and stored on unsigned 32-bit integers.
type TxID uint32

// TxType enumerates the record variants accepted on the input stream.
type TxType string

const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxDispute    TxType = "dispute"
	TxResolve    TxType = "resolve"
	TxChargeback TxType = "chargeback"
)

// ParseTxType maps the raw type column of a record to a TxType. The match is
// exact; the input contract sends the five verbs in lower case.
func ParseTxType(s string) (TxType, bool) {
	switch t := TxType(s); t {
	case TxDeposit, TxWithdrawal, TxDispute, TxResolve, TxChargeback:
		return t, true
	}
	return "", false
}

// Transaction represents one record of the input stream.
//
// Amount is meaningful only for deposits and withdrawals. Dispute, resolve and
// chargeback records reference an earlier transaction by TxID and carry no
// amount of their own; for those the field stays zero and is never read.
type Transaction struct {
	Type     TxType
	ClientID ClientID
	TxID     TxID
	Amount   decimal.Decimal
}

// CarriesAmount reports whether this record variant carries its own amount.
func (t Transaction) CarriesAmount() bool {
	return t.Type == TxDeposit || t.Type == TxWithdrawal
}
