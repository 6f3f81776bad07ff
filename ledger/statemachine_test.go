package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decred/ledgerengine/money"
)

func amt(t *testing.T, s string) *money.Money {
	t.Helper()
	m, err := money.FromDecimalString(s)
	require.NoError(t, err)
	return &m
}

func TestDepositAndWithdrawal(t *testing.T) {
	w := NewWallet(1, false)

	out := w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	require.True(t, out.Accepted)
	out = w.Apply(Event{Kind: Deposit, Client: 1, Tx: 3, Amount: amt(t, "2.0")})
	require.True(t, out.Accepted)
	out = w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 4, Amount: amt(t, "1.5")})
	require.True(t, out.Accepted)

	snap := w.Snapshot()
	require.Equal(t, "1.5000", snap.Available.Format())
	require.Equal(t, "0.0000", snap.Held.Format())
	require.Equal(t, "1.5000", snap.Total().Format())
	require.False(t, snap.Locked)
}

func TestWithdrawalOverAvailableIsRejected(t *testing.T) {
	w := NewWallet(2, false)
	w.Apply(Event{Kind: Deposit, Client: 2, Tx: 2, Amount: amt(t, "2.0")})
	out := w.Apply(Event{Kind: Withdrawal, Client: 2, Tx: 5, Amount: amt(t, "3.0")})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrInsufficientFunds)

	snap := w.Snapshot()
	require.Equal(t, "2.0000", snap.Available.Format())
}

func TestWithdrawalOfExactlyAvailableLeavesZero(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "5.0000")})
	out := w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 2, Amount: amt(t, "5.0000")})
	require.True(t, out.Accepted)
	require.True(t, w.Available().IsZero())
}

func TestWithdrawalOfAvailablePlusEpsilonRejected(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "5.0000")})
	out := w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 2, Amount: amt(t, "5.0001")})
	require.False(t, out.Accepted)
}

func TestDuplicateTxRejected(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	out := w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrDuplicateTx)
}

func TestNonPositiveAmountRejected(t *testing.T) {
	w := NewWallet(1, false)
	out := w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "0")})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrNonPositiveAmount)

	neg := amt(t, "-1.0")
	out = w.Apply(Event{Kind: Deposit, Client: 1, Tx: 2, Amount: neg})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrNonPositiveAmount)
}

func TestDisputeResolveRoundTrip(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "10.0")})
	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	require.True(t, out.Accepted)
	require.Equal(t, "0.0000", w.Available().Format())
	require.Equal(t, "10.0000", w.Held().Format())

	out = w.Apply(Event{Kind: Resolve, Client: 1, Tx: 1})
	require.True(t, out.Accepted)
	require.Equal(t, "10.0000", w.Available().Format())
	require.Equal(t, "0.0000", w.Held().Format())
	require.False(t, w.Locked())
}

func TestChargebackLocksWallet(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "5.0")})
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 2, Amount: amt(t, "3.0")})
	w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	out := w.Apply(Event{Kind: Chargeback, Client: 1, Tx: 1})
	require.True(t, out.Accepted)
	require.True(t, w.Locked())

	// Once locked, further events are rejected and leave state
	// untouched.
	out = w.Apply(Event{Kind: Deposit, Client: 1, Tx: 3, Amount: amt(t, "100.0")})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrWalletLocked)

	snap := w.Snapshot()
	require.Equal(t, "3.0000", snap.Available.Format())
	require.Equal(t, "0.0000", snap.Held.Format())
	require.Equal(t, "3.0000", snap.Total().Format())
	require.True(t, snap.Locked)
}

func TestDisputeOnWithdrawalReversesAtChargeback(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "10.0")})
	w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 2, Amount: amt(t, "4.0")})
	require.Equal(t, "6.0000", w.Available().Format())

	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 2})
	require.True(t, out.Accepted)
	require.Equal(t, "6.0000", w.Available().Format())
	require.Equal(t, "4.0000", w.Held().Format())

	out = w.Apply(Event{Kind: Chargeback, Client: 1, Tx: 2})
	require.True(t, out.Accepted)
	require.Equal(t, "10.0000", w.Available().Format())
	require.Equal(t, "0.0000", w.Held().Format())
	require.True(t, w.Locked())
}

func TestUnknownTxDisputeIsNoOp(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 999})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrUnknownTx)
	require.Equal(t, "1.0000", w.Available().Format())
}

func TestClientMismatchOnDisputeIsNoOp(t *testing.T) {
	// Each wallet's ledger is scoped to its own client, so a tx created
	// under client 1 is simply absent from client 2's wallet.
	w1 := NewWallet(1, false)
	w2 := NewWallet(2, false)
	w1.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "5.0")})

	out := w2.Apply(Event{Kind: Dispute, Client: 2, Tx: 1})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrUnknownTx)

	require.Equal(t, "5.0000", w1.Available().Format())
	require.True(t, w2.Snapshot().Available.IsZero())
}

func TestDisputeOfDepositCanDriveAvailableNegative(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "10.0")})
	w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 2, Amount: amt(t, "8.0")})
	require.Equal(t, "2.0000", w.Available().Format())

	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	require.True(t, out.Accepted)
	require.True(t, w.Available().IsNegative())
	require.Equal(t, "-8.0000", w.Available().Format())
	require.Equal(t, "10.0000", w.Held().Format())
}

func TestStrictAvailableRejectsNegativeDispute(t *testing.T) {
	w := NewWallet(1, true)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "10.0")})
	w.Apply(Event{Kind: Withdrawal, Client: 1, Tx: 2, Amount: amt(t, "8.0")})

	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrWouldGoNegative)
	require.Equal(t, "2.0000", w.Available().Format())
	require.True(t, w.Held().IsZero())
}

func TestNonNormalRecordDisputeResolveChargebackIsNoOp(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "10.0")})
	w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	w.Apply(Event{Kind: Resolve, Client: 1, Tx: 1})

	before := w.Snapshot()

	// Record is now Resolved: a second resolve, a fresh dispute, or a
	// chargeback must all be rejected without mutating balances, since
	// none of those transitions is legal from StateResolved.
	out := w.Apply(Event{Kind: Resolve, Client: 1, Tx: 1})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrWrongRecordState)

	out = w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrWrongRecordState)

	out = w.Apply(Event{Kind: Chargeback, Client: 1, Tx: 1})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrWrongRecordState)

	after := w.Snapshot()
	require.Equal(t, before, after)
}

func TestDisputeFamilyEventsRejectAmount(t *testing.T) {
	w := NewWallet(1, false)
	w.Apply(Event{Kind: Deposit, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	out := w.Apply(Event{Kind: Dispute, Client: 1, Tx: 1, Amount: amt(t, "1.0")})
	require.False(t, out.Accepted)
	require.ErrorIs(t, out.Reason, ErrUnexpectedAmount)
}
