package models

import (
	"encoding/hex"
	"fmt"
)

// AccountID is an opaque 32-byte account identity. The hosting environment
// decides what it means (a public key hash, a contract address); the ledger
// only ever compares identities for equality and uses them as map keys.
type AccountID [32]byte

// String returns the identity as lowercase hex.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// ParseAccountID decodes a 64-character hex string into an AccountID.
func ParseAccountID(s string) (AccountID, error) {
	var a AccountID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	if len(raw) != len(a) {
		return a, fmt.Errorf("invalid account id %q: want %d bytes, got %d", s, len(a), len(raw))
	}
	copy(a[:], raw)
	return a, nil
}
