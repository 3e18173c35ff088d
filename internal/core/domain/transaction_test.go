package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_SignedAmount(t *testing.T) {
	ticket := domain.Transaction{Kind: domain.Ticket, Amount: decimal.NewFromInt(20)}
	payment := domain.Transaction{Kind: domain.Payment, Amount: decimal.NewFromInt(15)}

	assert.True(t, decimal.NewFromInt(20).Equal(ticket.SignedAmount()))
	assert.True(t, decimal.NewFromInt(-15).Equal(payment.SignedAmount()))
}

func TestTransaction_Validate(t *testing.T) {
	valid := domain.Transaction{
		ID:        "txn_123",
		Date:      domain.NewDate(2024, time.January, 5),
		Kind:      domain.Ticket,
		Amount:    decimal.NewFromInt(20),
		CreatedAt: time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr error
	}{
		{name: "valid ticket", mutate: func(*domain.Transaction) {}},
		{name: "valid payment", mutate: func(tx *domain.Transaction) { tx.Kind = domain.Payment }},
		{name: "missing id", mutate: func(tx *domain.Transaction) { tx.ID = " " }, wantErr: apperrors.ErrValidation},
		{name: "zero date", mutate: func(tx *domain.Transaction) { tx.Date = domain.Date{} }, wantErr: apperrors.ErrValidation},
		{name: "unknown kind", mutate: func(tx *domain.Transaction) { tx.Kind = "refund" }, wantErr: apperrors.ErrValidation},
		{name: "zero amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.Zero }, wantErr: apperrors.ErrInvalidAmount},
		{name: "negative amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-5) }, wantErr: apperrors.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "25", want: "25"},
		{in: "12.34", want: "12.34"},
		{in: "12,34", want: "12.34"},
		{in: " 2.50 ", want: "2.5"},
		{in: "0.01", want: "0.01"},
		{in: "1.005", want: "1.01"}, // half-up on the third digit
		{in: "1.004", want: "1"},
		{in: "0", wantErr: true},
		{in: "0.004", wantErr: true}, // rounds to zero
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}
