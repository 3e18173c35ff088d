package dto

import (
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTicketsRequest records a batch of tickets. UnitPrice defaults to the configured price.
type CreateTicketsRequest struct {
	Units     int          `json:"units"`
	UnitPrice *AmountInput `json:"unitPrice,omitempty"`
}

// CreatePaymentRequest records a payment.
type CreatePaymentRequest struct {
	Amount AmountInput `json:"amount" binding:"required"`
}

// UpdateAmountRequest replaces the amount of an existing transaction.
type UpdateAmountRequest struct {
	Amount AmountInput `json:"amount" binding:"required"`
}

// TransactionURI binds the :id path parameter.
type TransactionURI struct {
	ID string `uri:"id" binding:"required"`
}

// RecentQuery binds the query of the recent-transactions endpoint.
type RecentQuery struct {
	N int `form:"n" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		Date:      txn.Date.String(),
		Type:      string(txn.Kind),
		Amount:    txn.Amount,
		CreatedAt: txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions, never returning nil.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(txn)
	}
	return res
}

// ListTransactionsResponse wraps a transaction list.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// BalanceResponse is the balance plus its human reading.
type BalanceResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	Direction string          `json:"direction"`
	Display   string          `json:"display"`
}

// ToBalanceResponse describes balance for display.
func ToBalanceResponse(balance decimal.Decimal) BalanceResponse {
	direction, display := utils.DescribeBalance(balance)
	return BalanceResponse{Balance: balance, Direction: direction, Display: display}
}

// MutationResponse is returned by every write endpoint.
type MutationResponse struct {
	Changed     bool                 `json:"changed"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Balance     BalanceResponse      `json:"balance"`
}

// ToMutationResponse converts a service result.
func ToMutationResponse(res *portssvc.MutationResult) MutationResponse {
	out := MutationResponse{
		Changed: res.Changed,
		Balance: ToBalanceResponse(res.Balance),
	}
	if res.Changed {
		txn := ToTransactionResponse(res.Transaction)
		out.Transaction = &txn
	}
	return out
}
