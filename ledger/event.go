package ledger

import "github.com/decred/ledgerengine/money"

// ClientID identifies a client whose wallet the engine tracks.
type ClientID uint16

// TxID identifies a single Deposit or Withdrawal. TxIDs are unique within
// a wallet's ledger; spec.md's open question on cross-client uniqueness is
// resolved as per-wallet only (see DESIGN.md), so the same TxID may
// legitimately recur under a different ClientID.
type TxID uint32

// EventKind tags the five transaction kinds this engine understands.
type EventKind uint8

const (
	// Deposit credits available funds and records a new ledger entry.
	Deposit EventKind = iota
	// Withdrawal debits available funds and records a new ledger entry.
	Withdrawal
	// Dispute flags an existing record as contested, moving its amount
	// into held funds.
	Dispute
	// Resolve clears a dispute, returning the held amount to its
	// pre-dispute disposition.
	Resolve
	// Chargeback finalizes a dispute against the client, reversing the
	// original transaction and locking the wallet.
	Chargeback
)

// String implements fmt.Stringer for debug logging.
func (k EventKind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Event is an immutable input message consumed by a Wallet's state
// machine. Amount is nil for Dispute, Resolve, and Chargeback; it must be
// present for Deposit and Withdrawal.
type Event struct {
	Kind   EventKind
	Client ClientID
	Tx     TxID
	Amount *money.Money
}
