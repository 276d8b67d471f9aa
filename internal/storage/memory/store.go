package memory

import (
	"context"
	"sync"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
	"github.com/sheikh-saqib/fungible-token-ledger/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It holds the latest snapshot behind a mutex and hands out deep copies so
// callers can never alias its state.
type MemoryLedgerStore struct {
	mu       sync.Mutex
	snapshot models.Snapshot
	saved    bool
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{}
}

// Save replaces the stored snapshot. The whole snapshot is swapped at once,
// so a concurrent Load never sees a half-written state.
func (m *MemoryLedgerStore) Save(_ context.Context, snapshot models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snapshot.Clone()
	m.saved = true
	return nil
}

// Load returns a copy of the stored snapshot, or ok=false if Save was
// never called.
func (m *MemoryLedgerStore) Load(_ context.Context) (models.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.saved {
		return models.Snapshot{}, false, nil
	}
	return m.snapshot.Clone(), true, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore.
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
