package repositories

import (
	"context"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
)

// LedgerReader defines read operations for the persisted ledger
type LedgerReader interface {
	// Load returns the whole transaction list in stored order. A store that
	// has never been written returns an empty list and no error.
	Load(ctx context.Context) ([]domain.Transaction, error)
}

// LedgerWriter defines write operations for the persisted ledger
type LedgerWriter interface {
	// Save overwrites the persisted list with txns.
	Save(ctx context.Context, txns []domain.Transaction) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
