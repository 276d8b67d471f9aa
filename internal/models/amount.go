package models

import "github.com/holiman/uint256"

// Amount is an unsigned 256-bit token quantity. Token amounts never go
// negative: every subtraction in the ledger is guarded by a comparison, and
// additions that would overflow are treated as a broken invariant rather
// than a recoverable error (total supply bounds make them unreachable).
type Amount = uint256.Int

// NewAmount returns an Amount holding the given value.
func NewAmount(v uint64) *Amount {
	return uint256.NewInt(v)
}

// ParseAmount parses a base-10 amount string.
func ParseAmount(s string) (*Amount, error) {
	return uint256.FromDecimal(s)
}

// AddAmount returns a + b, panicking on overflow. Callers only reach this
// with values bounded by total supply, so overflow means corrupted state.
func AddAmount(a, b *Amount) Amount {
	var sum Amount
	if _, carry := sum.AddOverflow(a, b); carry {
		panic("token amount overflow: ledger invariant violated")
	}
	return sum
}

// SubAmount returns a - b. The caller must have already checked a >= b.
func SubAmount(a, b *Amount) Amount {
	var diff Amount
	if _, borrow := diff.SubOverflow(a, b); borrow {
		panic("token amount underflow: precondition not checked")
	}
	return diff
}
