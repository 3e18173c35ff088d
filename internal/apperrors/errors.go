package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates a non-numeric, zero or negative money amount.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive number", ErrValidation)

// ErrInvalidUnitCount indicates a non-positive ticket count for a batch credit.
var ErrInvalidUnitCount = fmt.Errorf("%w: unit count must be a positive integer", ErrValidation)

// ErrStorageCorrupt indicates the persisted ledger exists but cannot be decoded.
// The stored data is left untouched so it can be recovered by hand.
var ErrStorageCorrupt = errors.New("stored ledger is corrupt")

// ErrStorageUnavailable indicates the persistence backend could not be reached.
var ErrStorageUnavailable = errors.New("ledger storage unavailable")

// AppError carries an HTTP-ish status code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
