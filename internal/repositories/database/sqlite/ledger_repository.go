// Package sqlite stores the ledger blob in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/codec"
)

const (
	selectLedgerSQL = `SELECT payload FROM ledger_snapshots WHERE ledger_key = ?`
	upsertLedgerSQL = `
		INSERT INTO ledger_snapshots (ledger_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (ledger_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at`
)

// LedgerRepository keeps one ledger blob per key in the ledger_snapshots table.
type LedgerRepository struct {
	db  *sql.DB
	key string
}

// NewLedgerRepository creates a store over an open, migrated database.
func NewLedgerRepository(db *sql.DB, key string) *LedgerRepository {
	return &LedgerRepository{db: db, key: key}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, selectLedgerSQL, r.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load ledger: %v", apperrors.ErrStorageUnavailable, err)
	}
	return codec.Decode([]byte(payload))
}

func (r *LedgerRepository) Save(ctx context.Context, txns []domain.Transaction) error {
	payload, err := codec.Encode(txns)
	if err != nil {
		return err
	}
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := r.db.ExecContext(ctx, upsertLedgerSQL, r.key, string(payload), updatedAt); err != nil {
		return fmt.Errorf("%w: save ledger: %v", apperrors.ErrStorageUnavailable, err)
	}
	slog.DebugContext(ctx, "Ledger saved to SQLite", "key", r.key, "transactions", len(txns))
	return nil
}
