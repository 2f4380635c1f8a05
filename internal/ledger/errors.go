package ledger

import "errors"

// Recoverable conditions. Under the default policy the offending record is
// skipped and the stream continues; in strict mode any of them aborts the
// run. Either way the record leaves no trace on the account.
var (
	// ErrAccountLocked reports a record addressing an account frozen by a
	// chargeback.
	ErrAccountLocked = errors.New("ledger: account locked")

	// ErrInsufficientFunds reports a withdrawal exceeding the available
	// balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrUnknownTransaction reports a dispute, resolve or chargeback citing a
	// transaction ID never recorded by a deposit or withdrawal.
	ErrUnknownTransaction = errors.New("ledger: unknown transaction reference")

	// ErrNoOpenDispute reports a resolve or chargeback addressing an account
	// with no open dispute.
	ErrNoOpenDispute = errors.New("ledger: no open dispute")
)

// IsRecoverable reports whether err is one of the policy-gated conditions a
// non-strict run skips over. Parse and I/O errors are never recoverable.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrAccountLocked) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrUnknownTransaction) ||
		errors.Is(err, ErrNoOpenDispute)
}
