package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-escrow/pkg/escrow"
	"swap-escrow/pkg/store"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	st, err := s.Load()
	require.NoError(t, err)
	assert.False(t, st.Engine.Initialized)
	assert.Empty(t, st.Engine.Requests)
	assert.NotNil(t, st.Balances)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := store.NewStore(path)
	require.NoError(t, err)

	st := &store.State{
		Engine: escrow.State{
			Initialized: true,
			Admin:       escrow.AdminConfig{Owner: "admin", Treasury: "fees.treasury", FeePercent: 5},
			Requests: []escrow.SwapRequest{
				{
					ID:            0,
					Requester:     "alice",
					Recipient:     "bob",
					OfferAsset:    "gold",
					OfferAmount:   1000,
					ReceiveAsset:  "silver",
					ReceiveAmount: 2000,
					Status:        escrow.StatusPending,
				},
			},
		},
		Balances: map[string]map[string]uint64{
			"gold": {"escrow": 1000, "alice": 9000},
		},
	}
	require.NoError(t, s.Save(st))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, st.Engine, loaded.Engine)
	assert.Equal(t, st.Balances, loaded.Balances)

	// Save is atomic: no temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestCorruptStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := store.NewStore(path)
	require.NoError(t, err)

	_, err = s.Load()
	require.Error(t, err)
}
