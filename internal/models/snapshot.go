package models

// AllowanceKey identifies one allowance pocket: funds the owner has set
// aside for a specific spender to draw down.
type AllowanceKey struct {
	Owner   AccountID
	Spender AccountID
}

// Snapshot is the full persistable state of the ledger. Absent map keys
// read as zero, so stores only keep entries that have been written.
type Snapshot struct {
	Issuer      AccountID
	TotalSupply Amount
	Balances    map[AccountID]Amount
	Allowances  map[AllowanceKey]Amount
}

// Clone returns a deep copy so callers can hold a snapshot without
// aliasing the ledger's (or a store's) internal maps.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Issuer:      s.Issuer,
		TotalSupply: s.TotalSupply,
		Balances:    make(map[AccountID]Amount, len(s.Balances)),
		Allowances:  make(map[AllowanceKey]Amount, len(s.Allowances)),
	}
	for acct, bal := range s.Balances {
		out.Balances[acct] = bal
	}
	for key, val := range s.Allowances {
		out.Allowances[key] = val
	}
	return out
}
