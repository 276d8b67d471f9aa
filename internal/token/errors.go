package token

import "errors"

// The three ways an operation can be refused. All are recoverable by the
// caller and leave the ledger untouched.
var (
	// ErrInsufficientBalance means the acting account's spendable balance
	// is smaller than the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientAllowance means the spender's allowance over the
	// owner's funds is smaller than the requested amount.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrNotIssuer means an account other than the issuer tried to mint.
	ErrNotIssuer = errors.New("caller is not the issuer")
)
