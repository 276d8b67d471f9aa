package models_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

func TestParseAccountID(t *testing.T) {
	id := models.AccountID{0xab, 0xcd}
	parsed, err := models.ParseAccountID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseAccountIDRejectsBadInput(t *testing.T) {
	_, err := models.ParseAccountID("zz")
	require.Error(t, err)

	// Right charset, wrong length.
	_, err = models.ParseAccountID(strings.Repeat("ab", 16))
	require.Error(t, err)

	_, err = models.ParseAccountID("")
	require.Error(t, err)
}

func TestAmountArithmetic(t *testing.T) {
	a := models.NewAmount(700)
	b := models.NewAmount(300)

	sum := models.AddAmount(a, b)
	assert.Equal(t, *models.NewAmount(1000), sum)

	diff := models.SubAmount(a, b)
	assert.Equal(t, *models.NewAmount(400), diff)
}

func TestAddAmountPanicsOnOverflow(t *testing.T) {
	max := new(models.Amount).Not(models.NewAmount(0))
	assert.Panics(t, func() {
		models.AddAmount(max, models.NewAmount(1))
	})
}

func TestSubAmountPanicsOnUnderflow(t *testing.T) {
	assert.Panics(t, func() {
		models.SubAmount(models.NewAmount(1), models.NewAmount(2))
	})
}

func TestParseAmount(t *testing.T) {
	v, err := models.ParseAmount("340282366920938463463374607431768211456") // 2^128
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211456", v.Dec())

	_, err = models.ParseAmount("-5")
	require.Error(t, err)

	_, err = models.ParseAmount("ten")
	require.Error(t, err)
}

func TestSnapshotClone(t *testing.T) {
	owner := models.AccountID{0x01}
	spender := models.AccountID{0x02}
	original := models.Snapshot{
		Issuer:      owner,
		TotalSupply: *models.NewAmount(100),
		Balances:    map[models.AccountID]models.Amount{owner: *models.NewAmount(60)},
		Allowances: map[models.AllowanceKey]models.Amount{
			{Owner: owner, Spender: spender}: *models.NewAmount(40),
		},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Balances[spender] = *models.NewAmount(1)
	_, leaked := original.Balances[spender]
	assert.False(t, leaked)
}
