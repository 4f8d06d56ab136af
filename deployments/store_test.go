package deployments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
)

func newTestStore(t *testing.T, dir string) *Store {
	t.Helper()

	store, err := Open(dir, nil)
	require.NoError(t, err)

	return store
}

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, t.TempDir())
	defer store.Close()

	d := &Deployment{
		Name:        "Lottery",
		ChainID:     1337,
		Address:     ethgo.HexToAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3"),
		TxHash:      ethgo.HexToHash("0x01"),
		BlockNumber: 1,
		DeployedAt:  time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, store.Put(d))

	got, err := store.Get(1337, "Lottery")
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = store.Get(100, "Lottery")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(1337, "Counter")
	require.ErrorIs(t, err, ErrNotFound)

	require.Error(t, store.Put(&Deployment{ChainID: 1}))
}

func TestStore_CachedRecordsAreCopies(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, t.TempDir())
	defer store.Close()

	addr := ethgo.HexToAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	d := &Deployment{Name: "Lottery", ChainID: 1337, Address: addr, BlockNumber: 1}
	require.NoError(t, store.Put(d))

	// mutating the recorded value does not leak into the store
	d.BlockNumber = 99

	got, err := store.Get(1337, "Lottery")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.BlockNumber)
	assert.NotSame(t, d, got)

	// neither does mutating a returned value
	got.Address = ethgo.ZeroAddress

	again, err := store.Get(1337, "Lottery")
	require.NoError(t, err)
	assert.Equal(t, addr, again.Address)
	assert.NotSame(t, got, again)
}

func TestStore_Reopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	addr := ethgo.HexToAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")

	store := newTestStore(t, dir)
	require.NoError(t, store.Put(&Deployment{Name: "Lottery", ChainID: 1337, Address: addr, BlockNumber: 3}))
	require.NoError(t, store.Close())

	store = newTestStore(t, dir)
	defer store.Close()

	got, err := store.Get(1337, "Lottery")
	require.NoError(t, err)
	assert.Equal(t, addr, got.Address)
	assert.Equal(t, uint64(3), got.BlockNumber)
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, t.TempDir())
	defer store.Close()

	list, err := store.List()
	require.NoError(t, err)
	require.Empty(t, list)

	for _, d := range []*Deployment{
		{Name: "Lottery", ChainID: 1337},
		{Name: "Lottery", ChainID: 100},
		{Name: "Counter", ChainID: 1337},
		{Name: "Lottery", ChainID: 1337, BlockNumber: 9},
	} {
		require.NoError(t, store.Put(d))
	}

	list, err = store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)

	// ordered by chain id, then name; the later Lottery deployment on 1337 replaced the first one
	assert.Equal(t, uint64(100), list[0].ChainID)
	assert.Equal(t, "Counter", list[1].Name)
	assert.Equal(t, "Lottery", list[2].Name)
	assert.Equal(t, uint64(9), list[2].BlockNumber)
}
