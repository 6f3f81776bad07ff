package ledger

import "errors"

// Event-level rejection reasons. Per spec, these are absorbed silently by
// the wallet/state machine in the baseline contract; they exist as
// distinguishable sentinels so a caller that opts into the diagnostic
// stream (see engine.RejectionSink) can log or count them.
var (
	// ErrWalletLocked is returned for any event submitted to a wallet
	// whose locked flag is already set.
	ErrWalletLocked = errors.New("ledger: wallet is locked")

	// ErrDuplicateTx is returned when a Deposit or Withdrawal reuses a
	// TxId already present in the wallet's ledger.
	ErrDuplicateTx = errors.New("ledger: transaction id already recorded")

	// ErrUnknownTx is returned when a Dispute, Resolve, or Chargeback
	// names a TxId absent from the wallet's ledger. A Dispute-family
	// event naming a TxId that belongs to a different client also
	// surfaces this error, since each wallet's ledger is scoped to its
	// own client.
	ErrUnknownTx = errors.New("ledger: transaction id not found")

	// ErrWrongRecordState is returned when a Dispute, Resolve, or
	// Chargeback targets a record whose current state does not permit
	// the requested transition.
	ErrWrongRecordState = errors.New("ledger: record is not in the required state")

	// ErrNonPositiveAmount is returned when a Deposit or Withdrawal
	// carries an amount that is zero or negative.
	ErrNonPositiveAmount = errors.New("ledger: amount must be strictly positive")

	// ErrMissingAmount is returned when a Deposit or Withdrawal event
	// carries no amount.
	ErrMissingAmount = errors.New("ledger: deposit/withdrawal requires an amount")

	// ErrUnexpectedAmount is returned when a Dispute, Resolve, or
	// Chargeback event carries an amount; those kinds never carry one.
	ErrUnexpectedAmount = errors.New("ledger: dispute-family event must not carry an amount")

	// ErrInsufficientFunds is returned when a Withdrawal's amount
	// exceeds the wallet's current available balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient available funds")

	// ErrWouldOverflow is returned when applying an event would
	// overflow the underlying fixed-point representation.
	ErrWouldOverflow = errors.New("ledger: operation would overflow")

	// ErrWouldGoNegative is returned, only when the engine is configured
	// with StrictAvailable, for a Dispute of a Deposit that would drive
	// available below zero.
	ErrWouldGoNegative = errors.New("ledger: available would go negative")

	// ErrUnknownEventKind is an internal-invariant violation: the event
	// carries a Kind value the state machine does not recognize. This
	// should be unreachable for events produced by ioadapter.Reader and
	// indicates a bug, not a policy rejection.
	ErrUnknownEventKind = errors.New("ledger: unknown event kind")
)
