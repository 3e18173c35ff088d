package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/services"
	"github.com/SscSPs/buddy_tix_tracker/internal/dto"
	"github.com/SscSPs/buddy_tix_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ledgerHandler handles HTTP requests for balances and transactions.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers routes related to the balance and transactions.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/balance", h.getBalance)
	rg.POST("/tickets", h.createTickets)
	rg.POST("/payments", h.createPayment)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/recent", h.listRecentTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PATCH("/:id", h.updateAmount)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// getBalance godoc
// @Summary Get the current balance
// @Description Tickets minus payments, with who owes whom
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Router /balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	balance := h.ledgerService.Balance(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// listTransactions godoc
// @Summary List all transactions
// @Description Returns every transaction in stored order
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	txns := h.ledgerService.ListTransactions(c.Request.Context())
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}

// listRecentTransactions godoc
// @Summary List the most recent transactions
// @Description Newest first by creation time
// @Tags ledger
// @Produce  json
// @Param   n query int false "How many (1-100), defaults to the configured limit"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid n"
// @Router /transactions/recent [get]
func (h *ledgerHandler) listRecentTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, logger, err)
		return
	}
	txns := h.ledgerService.RecentTransactions(c.Request.Context(), q.N)
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags ledger
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{id} [get]
func (h *ledgerHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.TransactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, logger, err)
		return
	}
	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", uri.ID)), err, "getting transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

// createTickets godoc
// @Summary Record tickets
// @Description Adds one ticket transaction worth units times the unit price, dated today
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   tickets body dto.CreateTicketsRequest true "Units and optional unit price"
// @Success 201 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid units or price"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /tickets [post]
func (h *ledgerHandler) createTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	var unitPrice *decimal.Decimal
	if req.UnitPrice != nil {
		price, err := req.UnitPrice.Decimal()
		if err != nil {
			respondError(c, logger, err, "parsing unit price")
			return
		}
		unitPrice = &price
	}

	logger.Info("Received request to record tickets", slog.Int("units", req.Units))
	res, err := h.ledgerService.AddTickets(c.Request.Context(), req.Units, unitPrice)
	if err != nil {
		respondError(c, logger, err, "creating tickets")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMutationResponse(res))
}

// createPayment godoc
// @Summary Record a payment
// @Description Adds one payment transaction, dated today
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Amount paid"
// @Success 201 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /payments [post]
func (h *ledgerHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		respondError(c, logger, err, "parsing payment amount")
		return
	}

	res, err := h.ledgerService.AddPayment(c.Request.Context(), amount)
	if err != nil {
		respondError(c, logger, err, "creating payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMutationResponse(res))
}

// updateAmount godoc
// @Summary Change a transaction amount
// @Description Only the amount changes. An unknown id is reported with changed=false.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   amount body dto.UpdateAmountRequest true "New amount"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /transactions/{id} [patch]
func (h *ledgerHandler) updateAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.TransactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, logger, err)
		return
	}
	logger = logger.With(slog.String("transaction_id", uri.ID))

	var req dto.UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		respondError(c, logger, err, "parsing amount")
		return
	}

	res, err := h.ledgerService.EditAmount(c.Request.Context(), uri.ID, amount)
	if err != nil {
		respondError(c, logger, err, "updating amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToMutationResponse(res))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description An unknown id is reported with changed=false.
// @Tags ledger
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.MutationResponse
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /transactions/{id} [delete]
func (h *ledgerHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.TransactionURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, logger, err)
		return
	}

	res, err := h.ledgerService.DeleteTransaction(c.Request.Context(), uri.ID)
	if err != nil {
		respondError(c, logger.With(slog.String("transaction_id", uri.ID)), err, "deleting transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToMutationResponse(res))
}
