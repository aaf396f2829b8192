package ledger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-escrow/pkg/escrow"
	"swap-escrow/pkg/ledger"
)

func TestPullAndPush(t *testing.T) {
	l := ledger.New("escrow")
	l.Mint("gold", "alice", 100)

	require.NoError(t, l.Pull("gold", "alice", "escrow", 60))
	assert.Equal(t, uint64(40), l.Balance("gold", "alice"))
	assert.Equal(t, uint64(60), l.Balance("gold", "escrow"))

	require.NoError(t, l.Push("gold", "bob", 60))
	assert.Equal(t, uint64(0), l.Balance("gold", "escrow"))
	assert.Equal(t, uint64(60), l.Balance("gold", "bob"))
}

func TestInsufficientFunds(t *testing.T) {
	l := ledger.New("escrow")
	l.Mint("gold", "alice", 10)

	err := l.Pull("gold", "alice", "escrow", 11)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// No partial effect.
	assert.Equal(t, uint64(10), l.Balance("gold", "alice"))
	assert.Equal(t, uint64(0), l.Balance("gold", "escrow"))

	require.ErrorIs(t, l.Push("gold", "bob", 1), ledger.ErrInsufficientFunds)
}

func TestReceiveHookVeto(t *testing.T) {
	l := ledger.New("escrow")
	l.Mint("gold", "alice", 100)

	veto := errors.New("not accepting")
	l.SetReceiveHook("escrow", func(asset, from string, amount uint64) error {
		return veto
	})

	err := l.Pull("gold", "alice", "escrow", 50)
	require.ErrorIs(t, err, veto)

	// A vetoed transfer leaves both sides untouched.
	assert.Equal(t, uint64(100), l.Balance("gold", "alice"))
	assert.Equal(t, uint64(0), l.Balance("gold", "escrow"))

	// Other accounts are unaffected by the hook.
	require.NoError(t, l.Pull("gold", "alice", "bob", 50))
}

func TestSnapshotRestore(t *testing.T) {
	l := ledger.New("escrow")
	l.Mint("gold", "alice", 100)
	l.Mint("silver", "bob", 200)

	snap := l.Snapshot()

	l2 := ledger.New("escrow")
	l2.Restore(snap)
	assert.Equal(t, uint64(100), l2.Balance("gold", "alice"))
	assert.Equal(t, uint64(200), l2.Balance("silver", "bob"))

	// Snapshots are deep copies.
	l2.Mint("gold", "alice", 1)
	assert.Equal(t, uint64(100), l.Balance("gold", "alice"))
}

func TestAccountBalances(t *testing.T) {
	l := ledger.New("escrow")
	l.Mint("gold", "alice", 100)
	l.Mint("silver", "alice", 5)
	l.Mint("gold", "bob", 7)

	assert.Equal(t, map[string]uint64{"gold": 100, "silver": 5}, l.AccountBalances("alice"))
	assert.Equal(t, []string{"gold", "silver"}, l.Assets())
}

// TestEngineCustodyGate wires a real engine to the ledger and checks that
// only the engine's own operations may credit the custody account.
func TestEngineCustodyGate(t *testing.T) {
	l := ledger.New(escrow.DefaultCustodyAccount)
	l.Mint("gold", "alice", 1000)
	l.Mint("silver", "bob", 2000)

	eng := escrow.NewEngine(l)
	l.SetReceiveHook(eng.CustodyAccount(), eng.OnReceive)
	require.NoError(t, eng.Init("admin", "fees.treasury"))

	// A direct inflow outside any engine operation is refused.
	err := l.Pull("gold", "alice", escrow.DefaultCustodyAccount, 10)
	require.Error(t, err)
	assert.Equal(t, uint64(1000), l.Balance("gold", "alice"))

	// The engine's own custody pulls pass the gate.
	id, err := eng.Create("alice", "bob", "gold", 1000, "silver", 2000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), l.Balance("gold", escrow.DefaultCustodyAccount))

	require.NoError(t, eng.Approve(id, "bob"))

	// Custody drained, both legs settled at the default 5% fee.
	assert.Equal(t, uint64(0), l.Balance("gold", escrow.DefaultCustodyAccount))
	assert.Equal(t, uint64(0), l.Balance("silver", escrow.DefaultCustodyAccount))
	assert.Equal(t, uint64(950), l.Balance("gold", "bob"))
	assert.Equal(t, uint64(50), l.Balance("gold", "fees.treasury"))
	assert.Equal(t, uint64(1900), l.Balance("silver", "alice"))
	assert.Equal(t, uint64(100), l.Balance("silver", "fees.treasury"))
}
