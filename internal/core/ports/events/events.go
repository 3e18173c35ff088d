package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger change operations carried by LedgerChanged.
const (
	OpTicketsAdded       = "tickets_added"
	OpPaymentAdded       = "payment_added"
	OpAmountEdited       = "amount_edited"
	OpTransactionDeleted = "transaction_deleted"
)

// LedgerChanged is emitted after a mutation has been persisted.
type LedgerChanged struct {
	Operation     string          `json:"operation"`
	TransactionID string          `json:"transactionId"`
	Balance       decimal.Decimal `json:"balance"`
	Count         int             `json:"count"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// Publisher delivers ledger events to interested parties.
type Publisher interface {
	PublishLedgerChanged(ctx context.Context, evt LedgerChanged) error
}
