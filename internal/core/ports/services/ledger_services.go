package services

import (
	"context"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// MutationResult describes the outcome of a ledger write.
type MutationResult struct {
	// Transaction is the created or affected entry. Zero when Changed is false.
	Transaction domain.Transaction
	// Changed is false when the target id did not exist and nothing was saved.
	Changed bool
	// Balance is the ledger balance after the mutation.
	Balance decimal.Decimal
}

// DayDetail is everything the calendar shows for one day.
type DayDetail struct {
	Aggregate      ledger.DayAggregate
	Transactions   []domain.Transaction
	RunningBalance decimal.Decimal
}

// LedgerReaderSvc defines read operations on the current ledger
type LedgerReaderSvc interface {
	// Balance is tickets minus payments over the whole ledger.
	Balance(ctx context.Context) decimal.Decimal

	// ListTransactions returns every transaction in stored order.
	ListTransactions(ctx context.Context) []domain.Transaction

	// RecentTransactions returns up to n entries, newest first. n <= 0 selects the configured default.
	RecentTransactions(ctx context.Context, n int) []domain.Transaction

	// GetTransaction looks a single entry up. Returns apperrors.ErrNotFound for unknown ids.
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// LedgerWriterSvc defines write operations on the current ledger
type LedgerWriterSvc interface {
	// AddTickets records units tickets at unitPrice, or at the configured price when unitPrice is nil.
	AddTickets(ctx context.Context, units int, unitPrice *decimal.Decimal) (*MutationResult, error)

	// AddPayment records a payment of amount.
	AddPayment(ctx context.Context, amount decimal.Decimal) (*MutationResult, error)

	// EditAmount changes the amount of an existing entry.
	EditAmount(ctx context.Context, id string, amount decimal.Decimal) (*MutationResult, error)

	// DeleteTransaction removes an entry.
	DeleteTransaction(ctx context.Context, id string) (*MutationResult, error)
}

// LedgerCalendarSvc defines the calendar views
type LedgerCalendarSvc interface {
	// Day returns the entries, totals and closing balance of date.
	Day(ctx context.Context, date domain.Date) DayDetail

	// RunningBalanceAsOf is the balance over entries dated on or before date.
	RunningBalanceAsOf(ctx context.Context, date domain.Date) decimal.Decimal

	// Month builds the month grid with per-day figures.
	Month(ctx context.Context, month domain.Month) ledger.Calendar
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerCalendarSvc
}
