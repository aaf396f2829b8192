package escrow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-escrow/pkg/escrow"
)

func TestRegistrySequentialIDs(t *testing.T) {
	r := escrow.NewRegistry()
	assert.Equal(t, 0, r.Len())

	for i := 0; i < 5; i++ {
		id := r.Append(&escrow.SwapRequest{Requester: alice, Status: escrow.StatusPending})
		assert.Equal(t, uint64(i), id)
	}
	assert.Equal(t, 5, r.Len())

	for i := uint64(0); i < 5; i++ {
		req, err := r.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i, req.ID)
	}
}

func TestRegistryNotFound(t *testing.T) {
	r := escrow.NewRegistry()

	_, err := r.Get(0)
	require.ErrorIs(t, err, escrow.ErrNotFound)

	r.Append(&escrow.SwapRequest{Status: escrow.StatusPending})
	_, err = r.Get(1)
	require.ErrorIs(t, err, escrow.ErrNotFound)
}

func TestRegistryAll(t *testing.T) {
	r := escrow.NewRegistry()
	r.Append(&escrow.SwapRequest{Requester: alice, Status: escrow.StatusPending})
	r.Append(&escrow.SwapRequest{Requester: bob, Status: escrow.StatusPending})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, alice, all[0].Requester)
	assert.Equal(t, bob, all[1].Requester)
}
