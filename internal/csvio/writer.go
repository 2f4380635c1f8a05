package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yvan-sraka/tx-csv-001/internal/models"
)

// WriteSnapshots renders account snapshots as CSV in the order given, under a
// client,available,held,total,locked header. Amounts keep the precision they
// were computed with.
func WriteSnapshots(w io.Writer, snaps []models.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("csvio: writing header: %w", err)
	}
	for _, snap := range snaps {
		row := []string{
			strconv.FormatUint(uint64(snap.ClientID), 10),
			snap.Available.String(),
			snap.Held.String(),
			snap.Total.String(),
			strconv.FormatBool(snap.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: writing client %d: %w", snap.ClientID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvio: flushing output: %w", err)
	}
	return nil
}
