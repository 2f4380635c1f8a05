package interfaces

import (
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// RecordSource yields transaction records in input order, one at a time.
// Next returns io.EOF once the stream is exhausted; any other error is a
// fatal input defect and ends the run.
type RecordSource interface {
	Next() (models.Transaction, error)
}
