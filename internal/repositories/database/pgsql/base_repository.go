package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// storageError classifies a driver error. Anything that is not a server-side
// SQL error means the database could not be reached or used.
func (r *BaseRepository) storageError(action string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to "+action,
			fmt.Errorf("%w: %s (%s)", apperrors.ErrStorageUnavailable, pgErr.Message, pgErr.Code))
	}
	return apperrors.NewAppError(http.StatusServiceUnavailable, "failed to "+action,
		fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err))
}
