package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/codec"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectLedgerSQL = `SELECT payload FROM ledger_snapshots WHERE ledger_key = $1`
	upsertLedgerSQL = `
		INSERT INTO ledger_snapshots (ledger_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ledger_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

// LedgerRepository keeps one ledger blob per key in the ledger_snapshots table.
type LedgerRepository struct {
	BaseRepository
	key string
}

// NewLedgerRepository creates a store for the ledger identified by key.
func NewLedgerRepository(pool *pgxpool.Pool, key string) *LedgerRepository {
	return &LedgerRepository{BaseRepository: BaseRepository{Pool: pool}, key: key}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	var payload []byte
	err := r.Pool.QueryRow(ctx, selectLedgerSQL, r.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, r.storageError("load ledger", err)
	}
	return codec.Decode(payload)
}

func (r *LedgerRepository) Save(ctx context.Context, txns []domain.Transaction) error {
	payload, err := codec.Encode(txns)
	if err != nil {
		return err
	}
	if _, err := r.Pool.Exec(ctx, upsertLedgerSQL, r.key, payload, time.Now().UTC()); err != nil {
		return r.storageError("save ledger", err)
	}
	return nil
}
