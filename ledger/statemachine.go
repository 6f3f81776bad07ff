package ledger

import goerrors "github.com/go-errors/errors"

// Outcome reports whether Wallet.Apply accepted or rejected an event. It
// is observational only; the baseline contract (spec.md §7) is silent
// rejection, so callers are not required to branch on it.
type Outcome struct {
	Accepted bool
	Reason   error
}

func accepted() Outcome {
	return Outcome{Accepted: true}
}

func rejected(reason error) Outcome {
	return Outcome{Accepted: false, Reason: reason}
}

// apply implements the transaction state machine of spec.md §4.3. It
// mutates w in place only on acceptance; a rejection always leaves w
// byte-for-byte unchanged.
func apply(w *Wallet, ev Event) Outcome {
	// Global precondition: a locked wallet accepts nothing further.
	if w.locked {
		return rejected(ErrWalletLocked)
	}

	switch ev.Kind {
	case Deposit:
		return applyDeposit(w, ev)
	case Withdrawal:
		return applyWithdrawal(w, ev)
	case Dispute:
		return applyDispute(w, ev)
	case Resolve:
		return applyResolve(w, ev)
	case Chargeback:
		return applyChargeback(w, ev)
	default:
		// Unreachable for events built by ioadapter.Reader or any
		// well-formed caller; treated as a bug per spec.md §7.
		panic(goerrors.Errorf("%v: kind=%v", ErrUnknownEventKind, ev.Kind))
	}
}

func applyDeposit(w *Wallet, ev Event) Outcome {
	if ev.Amount == nil {
		return rejected(ErrMissingAmount)
	}
	amt := *ev.Amount
	if !amt.IsPositive() {
		return rejected(ErrNonPositiveAmount)
	}
	if _, exists := w.ledger[ev.Tx]; exists {
		return rejected(ErrDuplicateTx)
	}

	newAvailable, err := w.available.CheckedAdd(amt)
	if err != nil {
		return rejected(ErrWouldOverflow)
	}

	w.available = newAvailable
	w.ledger[ev.Tx] = &TransactionRecord{
		Tx:     ev.Tx,
		Amount: amt,
		Kind:   RecordDeposit,
		State:  StateNormal,
	}
	return accepted()
}

func applyWithdrawal(w *Wallet, ev Event) Outcome {
	if ev.Amount == nil {
		return rejected(ErrMissingAmount)
	}
	amt := *ev.Amount
	if !amt.IsPositive() {
		return rejected(ErrNonPositiveAmount)
	}
	if _, exists := w.ledger[ev.Tx]; exists {
		return rejected(ErrDuplicateTx)
	}
	if w.available.LessThan(amt) {
		return rejected(ErrInsufficientFunds)
	}

	newAvailable, err := w.available.CheckedSub(amt)
	if err != nil {
		return rejected(ErrWouldOverflow)
	}

	w.available = newAvailable
	w.ledger[ev.Tx] = &TransactionRecord{
		Tx:     ev.Tx,
		Amount: amt,
		Kind:   RecordWithdrawal,
		State:  StateNormal,
	}
	return accepted()
}

func applyDispute(w *Wallet, ev Event) Outcome {
	if ev.Amount != nil {
		return rejected(ErrUnexpectedAmount)
	}
	rec, ok := w.ledger[ev.Tx]
	if !ok || rec.State != StateNormal {
		if !ok {
			return rejected(ErrUnknownTx)
		}
		return rejected(ErrWrongRecordState)
	}

	switch rec.Kind {
	case RecordDeposit:
		newAvailable, err := w.available.CheckedSub(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		if w.strictAvailable && newAvailable.IsNegative() {
			return rejected(ErrWouldGoNegative)
		}
		newHeld, err := w.held.CheckedAdd(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.available = newAvailable
		w.held = newHeld

	case RecordWithdrawal:
		newHeld, err := w.held.CheckedAdd(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.held = newHeld
	}

	rec.State = StateDisputed
	return accepted()
}

func applyResolve(w *Wallet, ev Event) Outcome {
	if ev.Amount != nil {
		return rejected(ErrUnexpectedAmount)
	}
	rec, ok := w.ledger[ev.Tx]
	if !ok {
		return rejected(ErrUnknownTx)
	}
	if rec.State != StateDisputed {
		return rejected(ErrWrongRecordState)
	}

	switch rec.Kind {
	case RecordDeposit:
		newHeld, err := w.held.CheckedSub(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		newAvailable, err := w.available.CheckedAdd(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.held = newHeld
		w.available = newAvailable

	case RecordWithdrawal:
		newHeld, err := w.held.CheckedSub(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.held = newHeld
	}

	rec.State = StateResolved
	return accepted()
}

func applyChargeback(w *Wallet, ev Event) Outcome {
	if ev.Amount != nil {
		return rejected(ErrUnexpectedAmount)
	}
	rec, ok := w.ledger[ev.Tx]
	if !ok {
		return rejected(ErrUnknownTx)
	}
	if rec.State != StateDisputed {
		return rejected(ErrWrongRecordState)
	}

	switch rec.Kind {
	case RecordDeposit:
		newHeld, err := w.held.CheckedSub(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.held = newHeld

	case RecordWithdrawal:
		newHeld, err := w.held.CheckedSub(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		newAvailable, err := w.available.CheckedAdd(rec.Amount)
		if err != nil {
			return rejected(ErrWouldOverflow)
		}
		w.held = newHeld
		w.available = newAvailable
	}

	rec.State = StateChargedBack
	w.locked = true
	return accepted()
}
