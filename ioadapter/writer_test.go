package ioadapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decred/ledgerengine/ledger"
	"github.com/decred/ledgerengine/money"
)

func TestWriterRendersSnapshots(t *testing.T) {
	avail1, _ := money.FromDecimalString("1.5000")
	held1 := money.Zero()
	avail2, _ := money.FromDecimalString("2.0000")
	held2 := money.Zero()

	snapshots := map[ledger.ClientID]ledger.Snapshot{
		2: {Client: 2, Available: avail2, Held: held2, Locked: false},
		1: {Client: 1, Available: avail1, Held: held1, Locked: false},
	}

	var buf strings.Builder
	w := NewWriter(&buf)
	require.NoError(t, w.WriteAll(snapshots))

	want := "client_id,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,2.0000,0.0000,2.0000,false\n"
	require.Equal(t, want, buf.String())
}

func TestWriterRendersLockedWallet(t *testing.T) {
	avail, _ := money.FromDecimalString("3.0000")
	held := money.Zero()

	snapshots := map[ledger.ClientID]ledger.Snapshot{
		1: {Client: 1, Available: avail, Held: held, Locked: true},
	}

	var buf strings.Builder
	w := NewWriter(&buf)
	require.NoError(t, w.WriteAll(snapshots))

	require.Equal(t, "client_id,available,held,total,locked\n1,3.0000,0.0000,3.0000,true\n", buf.String())
}
