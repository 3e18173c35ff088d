package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite-backed repositories for the ledger named key.
func NewRepositoryProvider(db *sql.DB, key string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewLedgerRepository(db, key),
	}
}
