package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

var _ interfaces.RecordSource = (*Reader)(nil)

// Reader decodes one transaction per CSV row. The first row must be a header
// naming type, client, tx and optionally amount; input without even a header
// is treated as an empty stream. Fields tolerate surrounding whitespace, and
// the amount column may be absent on rows that do not carry one.
type Reader struct {
	csv        *csv.Reader
	line       int
	headerRead bool
}

// NewReader wraps r in a record source over its CSV content.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next transaction in the stream, or io.EOF once the input
// is exhausted. Any other error means the input is malformed and the stream
// cannot continue.
func (r *Reader) Next() (models.Transaction, error) {
	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			return models.Transaction{}, err
		}
	}

	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return models.Transaction{}, io.EOF
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("csvio: %w", err)
	}
	r.line++
	return r.parseRow(row)
}

func (r *Reader) readHeader() error {
	r.headerRead = true

	row, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("csvio: reading header: %w", err)
	}
	r.line = 1
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	ok := len(row) == 3 || len(row) == 4
	ok = ok && row[0] == "type" && row[1] == "client" && row[2] == "tx"
	if ok && len(row) == 4 {
		ok = row[3] == "amount"
	}
	if !ok {
		return r.errf("header must name type, client, tx, amount; got %q", strings.Join(row, ","))
	}
	return nil
}

func (r *Reader) parseRow(row []string) (models.Transaction, error) {
	if len(row) < 3 || len(row) > 4 {
		return models.Transaction{}, r.errf("expected 3 or 4 fields, got %d", len(row))
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	typ, ok := models.ParseTxType(row[0])
	if !ok {
		return models.Transaction{}, r.errf("unknown transaction type %q", row[0])
	}
	client, err := strconv.ParseUint(row[1], 10, 16)
	if err != nil {
		return models.Transaction{}, r.errf("invalid client id %q", row[1])
	}
	id, err := strconv.ParseUint(row[2], 10, 32)
	if err != nil {
		return models.Transaction{}, r.errf("invalid transaction id %q", row[2])
	}

	tx := models.Transaction{
		Type:     typ,
		ClientID: models.ClientID(client),
		TxID:     models.TxID(id),
	}
	if tx.CarriesAmount() {
		if len(row) < 4 || row[3] == "" {
			return models.Transaction{}, r.errf("missing amount for %s", typ)
		}
		amount, err := decimal.NewFromString(row[3])
		if err != nil {
			return models.Transaction{}, r.errf("invalid amount %q", row[3])
		}
		tx.Amount = amount
	}
	// Dispute, resolve and chargeback rows may carry a fourth column; its
	// content is irrelevant and never inspected.
	return tx, nil
}

func (r *Reader) errf(format string, args ...any) error {
	return fmt.Errorf("csvio: line %d: %s", r.line, fmt.Sprintf(format, args...))
}
