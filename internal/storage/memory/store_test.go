package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

func testSnapshot() models.Snapshot {
	issuer := models.AccountID{0x01}
	spender := models.AccountID{0x02}
	return models.Snapshot{
		Issuer:      issuer,
		TotalSupply: *models.NewAmount(1000),
		Balances: map[models.AccountID]models.Amount{
			issuer: *models.NewAmount(900),
		},
		Allowances: map[models.AllowanceKey]models.Amount{
			{Owner: issuer, Spender: spender}: *models.NewAmount(100),
		},
	}
}

func TestLoadBeforeSave(t *testing.T) {
	store := NewMemoryLedgerStore()

	_, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryLedgerStore()
	snapshot := testSnapshot()

	require.NoError(t, store.Save(context.Background(), snapshot))

	loaded, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, snapshot, loaded)
}

func TestStoreDoesNotAliasCallerMaps(t *testing.T) {
	store := NewMemoryLedgerStore()
	snapshot := testSnapshot()
	require.NoError(t, store.Save(context.Background(), snapshot))

	// Mutating the saved-in or loaded-out maps must not reach the store.
	snapshot.Balances[models.AccountID{0xff}] = *models.NewAmount(1)

	loaded, _, err := store.Load(context.Background())
	require.NoError(t, err)
	_, leaked := loaded.Balances[models.AccountID{0xff}]
	assert.False(t, leaked)

	loaded.Balances[models.AccountID{0xee}] = *models.NewAmount(1)
	again, _, err := store.Load(context.Background())
	require.NoError(t, err)
	_, leaked = again.Balances[models.AccountID{0xee}]
	assert.False(t, leaked)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store := NewMemoryLedgerStore()
	require.NoError(t, store.Save(context.Background(), testSnapshot()))

	next := testSnapshot()
	next.TotalSupply = *models.NewAmount(500)
	delete(next.Allowances, models.AllowanceKey{Owner: models.AccountID{0x01}, Spender: models.AccountID{0x02}})
	require.NoError(t, store.Save(context.Background(), next))

	loaded, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *models.NewAmount(500), loaded.TotalSupply)
	assert.Empty(t, loaded.Allowances)
}
