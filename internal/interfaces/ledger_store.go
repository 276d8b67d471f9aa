package interfaces

import (
	"context"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// LedgerStore persists the ledger state between calls. Save must be
// transactional: a failed save leaves no partial writes visible.
type LedgerStore interface {
	Save(ctx context.Context, snapshot models.Snapshot) error
	// Load returns the stored snapshot, or ok=false if nothing was saved yet.
	Load(ctx context.Context) (snapshot models.Snapshot, ok bool, err error)
}
