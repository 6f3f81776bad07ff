package ioadapter

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/decred/ledgerengine/ledger"
)

// Writer renders a final wallet snapshot mapping as comma-delimited text
// with header "client_id,available,held,total,locked", per spec.md §6.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteAll renders the full header plus one row per client and flushes
// the underlying writer. Row order is not part of the contract (spec.md
// §6); rows are emitted in ascending client id order purely to make
// output byte-reproducible across runs.
func (w *Writer) WriteAll(snapshots map[ledger.ClientID]ledger.Snapshot) error {
	if err := w.csv.Write([]string{"client_id", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	clients := make([]ledger.ClientID, 0, len(snapshots))
	for client := range snapshots {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })

	for _, client := range clients {
		snap := snapshots[client]
		row := []string{
			formatClientID(client),
			snap.Available.Format(),
			snap.Held.Format(),
			snap.Total().Format(),
			formatLocked(snap.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

func formatLocked(locked bool) string {
	if locked {
		return "true"
	}
	return "false"
}

func formatClientID(c ledger.ClientID) string {
	return strconv.FormatUint(uint64(c), 10)
}
