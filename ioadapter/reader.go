package ioadapter

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/decred/ledgerengine/ledger"
	"github.com/decred/ledgerengine/money"
)

// Reader parses a comma-delimited stream with header
// "type,client,tx,amount" into typed ledger.Event values. It is the
// upstream adapter spec.md §6 places out of the engine's core: malformed
// rows are dropped here and never reach the engine.
type Reader struct {
	csv       *csv.Reader
	sawHeader bool
	parsed    int
	dropped   int
}

// NewReader wraps r, tolerating surrounding whitespace around each field
// per spec.md §6.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Field count is validated per-row in parseRecord, not by the csv
	// package itself: a row with the wrong number of fields is a
	// malformed row to drop, not a fatal read error.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next well-formed Event, skipping and counting any
// malformed rows it encounters along the way, and consuming the header
// row on the first call. ok is false once the input is exhausted; err is
// non-nil only for an underlying I/O failure, which is fatal per spec.md
// §7 and is never a row-level parse failure.
func (r *Reader) Next() (ev ledger.Event, ok bool, err error) {
	for {
		record, readErr := r.csv.Read()
		if readErr == io.EOF {
			return ledger.Event{}, false, nil
		}
		if readErr != nil {
			var parseErr *csv.ParseError
			if !errors.As(readErr, &parseErr) {
				return ledger.Event{}, false, readErr
			}
			if !r.sawHeader {
				r.sawHeader = true
				continue
			}
			r.dropped++
			log.Debugf("dropped malformed row: %v", readErr)
			continue
		}

		if !r.sawHeader {
			r.sawHeader = true
			continue
		}

		parsed, valid := parseRecord(record)
		if !valid {
			r.dropped++
			log.Debugf("dropped malformed row: %v", record)
			continue
		}

		r.parsed++
		return parsed, true, nil
	}
}

// Parsed returns the number of rows successfully parsed into events so
// far.
func (r *Reader) Parsed() int { return r.parsed }

// Dropped returns the number of rows dropped as malformed so far.
func (r *Reader) Dropped() int { return r.dropped }

func parseRecord(fields []string) (ledger.Event, bool) {
	if len(fields) != 4 {
		return ledger.Event{}, false
	}

	kind, ok := parseKind(strings.TrimSpace(fields[0]))
	if !ok {
		return ledger.Event{}, false
	}

	clientVal, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return ledger.Event{}, false
	}

	txVal, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 32)
	if err != nil {
		return ledger.Event{}, false
	}

	amountStr := strings.TrimSpace(fields[3])

	ev := ledger.Event{
		Kind:   kind,
		Client: ledger.ClientID(clientVal),
		Tx:     ledger.TxID(txVal),
	}

	switch kind {
	case ledger.Deposit, ledger.Withdrawal:
		if amountStr == "" {
			return ledger.Event{}, false
		}
		m, err := money.FromDecimalString(amountStr)
		if err != nil {
			return ledger.Event{}, false
		}
		ev.Amount = &m
	default:
		if amountStr != "" {
			return ledger.Event{}, false
		}
	}

	return ev, true
}

func parseKind(s string) (ledger.EventKind, bool) {
	switch strings.ToLower(s) {
	case "deposit":
		return ledger.Deposit, true
	case "withdrawal":
		return ledger.Withdrawal, true
	case "dispute":
		return ledger.Dispute, true
	case "resolve":
		return ledger.Resolve, true
	case "chargeback":
		return ledger.Chargeback, true
	default:
		return 0, false
	}
}
