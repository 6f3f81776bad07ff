package ledger

import (
	goerrors "github.com/go-errors/errors"

	"github.com/decred/ledgerengine/money"
)

// TransactionKind distinguishes the two kinds of record a Wallet retains.
// Dispute, Resolve, and Chargeback mutate an existing record's State; they
// never create a record of their own.
type TransactionKind uint8

const (
	// RecordDeposit marks a record created by a Deposit event.
	RecordDeposit TransactionKind = iota
	// RecordWithdrawal marks a record created by a Withdrawal event.
	RecordWithdrawal
)

// RecordState tracks a TransactionRecord through the dispute lifecycle:
// Normal -> Disputed -> {Resolved | ChargedBack}. Resolved and ChargedBack
// are terminal.
type RecordState uint8

const (
	// StateNormal is the state of a freshly recorded Deposit or
	// Withdrawal that has never been disputed.
	StateNormal RecordState = iota
	// StateDisputed marks a record currently under dispute.
	StateDisputed
	// StateResolved marks a dispute that was resolved in the client's
	// favor.
	StateResolved
	// StateChargedBack marks a dispute that was charged back, which
	// also locks the owning wallet.
	StateChargedBack
)

// TransactionRecord is a recorded past Deposit or Withdrawal held inside a
// Wallet's ledger. Amount is always the original transaction amount
// (always non-negative) regardless of subsequent dispute activity.
type TransactionRecord struct {
	Tx     TxID
	Amount money.Money
	Kind   TransactionKind
	State  RecordState
}

// Snapshot is the externally observable state of a Wallet at the moment
// it was taken. Total is derived, not stored, per spec.md's invariant
// that total == available + held.
type Snapshot struct {
	Client    ClientID
	Available money.Money
	Held      money.Money
	Locked    bool
}

// Total returns Available + Held. It cannot overflow in practice, since
// Available and Held are themselves the result of checked arithmetic that
// never let their sum exceed representable range; any operation that
// would have broken that invariant was rejected before it ran.
func (s Snapshot) Total() money.Money {
	total, err := s.Available.CheckedAdd(s.Held)
	if err != nil {
		// Unreachable: see doc comment above. A wallet that reached
		// this state has a corrupted invariant, which is a bug.
		panic(goerrors.Errorf("ledger: snapshot total overflow for client %d", s.Client))
	}
	return total
}

// Wallet is the per-client state machine target: balances, the lock flag,
// and the ledger of known transactions. A Wallet is created lazily on the
// first event observed for its client and is owned exclusively by one
// engine.WalletActor for the lifetime of the run; nothing here is
// goroutine-safe, by design, since ownership is never shared.
type Wallet struct {
	client ClientID

	available money.Money
	held      money.Money
	locked    bool

	ledger map[TxID]*TransactionRecord

	// strictAvailable mirrors the engine-wide StrictAvailable config
	// knob (see internal/config). When true, a Dispute of a Deposit
	// that would drive Available negative is rejected instead of
	// applied; spec.md's default is false (permissive).
	strictAvailable bool
}

// NewWallet constructs an empty Wallet for client.
func NewWallet(client ClientID, strictAvailable bool) *Wallet {
	return &Wallet{
		client:          client,
		ledger:          make(map[TxID]*TransactionRecord),
		strictAvailable: strictAvailable,
	}
}

// Client returns the wallet's owning client id.
func (w *Wallet) Client() ClientID { return w.client }

// Available returns the current available balance.
func (w *Wallet) Available() money.Money { return w.available }

// Held returns the current held balance.
func (w *Wallet) Held() money.Money { return w.held }

// Locked reports whether the wallet has been permanently frozen by a
// chargeback.
func (w *Wallet) Locked() bool { return w.locked }

// Record returns the ledger entry for tx, if any.
func (w *Wallet) Record(tx TxID) (*TransactionRecord, bool) {
	rec, ok := w.ledger[tx]
	return rec, ok
}

// Apply applies a single event to the wallet per the transaction state
// machine rules (spec.md §4.3) and returns the outcome. The outcome is
// observational only: callers do not branch on it in the default,
// silent-rejection contract (see engine.RejectionSink for the opt-in
// diagnostic path).
func (w *Wallet) Apply(ev Event) Outcome {
	return apply(w, ev)
}

// Snapshot returns the wallet's externally observable state.
func (w *Wallet) Snapshot() Snapshot {
	return Snapshot{
		Client:    w.client,
		Available: w.available,
		Held:      w.held,
		Locked:    w.locked,
	}
}
