package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

func TestAmountNumericRoundTrip(t *testing.T) {
	for _, dec := range []string{
		"0",
		"1",
		"1000",
		"18446744073709551616",                    // 2^64
		"340282366920938463463374607431768211456", // 2^128
	} {
		amount, err := models.ParseAmount(dec)
		require.NoError(t, err)

		back, err := numericToAmount(amountToNumeric(*amount))
		require.NoError(t, err)
		assert.Equal(t, *amount, back, dec)
	}
}

func TestNumericToAmountRejectsInvalidValues(t *testing.T) {
	_, err := numericToAmount(decimal.NewFromInt(-1))
	require.Error(t, err)

	_, err = numericToAmount(decimal.RequireFromString("1.5"))
	require.Error(t, err)

	// 2^256 no longer fits.
	tooBig := decimal.RequireFromString("115792089237316195423570985008687907853269984665640564039457584007913129639936")
	_, err = numericToAmount(tooBig)
	require.Error(t, err)
}
