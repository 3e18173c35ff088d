// Package memory keeps the encoded ledger blob in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/codec"
)

// LedgerRepository stores the ledger as the same blob the durable stores write,
// so it exercises the codec exactly like they do.
type LedgerRepository struct {
	mu   sync.RWMutex
	blob []byte
}

// NewLedgerRepository returns a store holding blob. A nil blob is an empty ledger.
func NewLedgerRepository(blob []byte) *LedgerRepository {
	return &LedgerRepository{blob: append([]byte(nil), blob...)}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return codec.Decode(r.blob)
}

func (r *LedgerRepository) Save(ctx context.Context, txns []domain.Transaction) error {
	blob, err := codec.Encode(txns)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.blob = blob
	r.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current blob.
func (r *LedgerRepository) Snapshot() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.blob...)
}
