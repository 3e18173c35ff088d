package pgsql

import (
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repositories for the ledger named key.
func NewRepositoryProvider(dbPool *pgxpool.Pool, key string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewLedgerRepository(dbPool, key),
	}
}
