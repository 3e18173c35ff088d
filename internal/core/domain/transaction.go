package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionKind tells whether a transaction credits or debits the balance.
type TransactionKind string

const (
	// Ticket is a credit: the buddy owes the ledger owner more.
	Ticket TransactionKind = "ticket"
	// Payment is a debit: the buddy paid some of it back.
	Payment TransactionKind = "payment"
)

// AmountPlaces is the number of decimal places amounts are kept at.
const AmountPlaces = 2

// IsValid reports whether k is one of the two known kinds.
func (k TransactionKind) IsValid() bool {
	return k == Ticket || k == Payment
}

// Transaction is one monetary event in the ledger. Amount is always positive;
// the sign comes from Kind.
type Transaction struct {
	ID        string          `json:"id"`
	Date      Date            `json:"date"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SignedAmount is +Amount for tickets and -Amount for payments.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Payment {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the stored-record invariants.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction %s has no date", apperrors.ErrValidation, t.ID)
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: transaction %s has unknown kind %q", apperrors.ErrValidation, t.ID, t.Kind)
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	return nil
}

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

// ParseAmount turns user input into an amount rounded half-up to cents.
// Both "12.34" and "12,34" are accepted. Non-numeric input, and anything that
// is not positive once rounded, fails with apperrors.ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, s)
	}
	d = RoundAmount(d)
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// RoundAmount rounds half away from zero to AmountPlaces.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}
