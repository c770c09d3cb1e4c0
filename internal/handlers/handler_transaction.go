package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to ledger transactions
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to ledger transactions
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactionGroup := rg.Group("/transactions")
	{
		transactionGroup.POST("", h.createTransaction)
		transactionGroup.GET("", h.listTransactions)
		transactionGroup.GET("/:id", h.getTransactionByID)
		transactionGroup.PUT("/:id", h.updateTransaction)
		transactionGroup.POST("/:id/mark-as-paid", h.markTransactionPaid)
		transactionGroup.POST("/:id/cancel", h.cancelTransaction)
		transactionGroup.DELETE("/:id", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Create a new transaction
// @Description Creates a new pending receivable or payable transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "create transaction")
		return
	}

	logger.Info("Transaction created", slog.Int64("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions matching the filter, paginated and deterministically ordered
// @Tags transactions
// @Produce json
// @Param type query string false "Transaction type (RECEIVABLE or PAYABLE)"
// @Param status query string false "Transaction status (PENDING, PAID or CANCELLED)"
// @Param category_id query int false "Category ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list transactions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToTransactionFilter()
	if err != nil {
		logger.Warn("Invalid date in list transactions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	txns, total, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Page:         filter.Page,
		PerPage:      filter.PerPage,
		Total:        total,
	})
}

// getTransactionByID godoc
// @Summary Get a transaction
// @Description Retrieves a single transaction by its ID
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "get transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a pending transaction
// @Description Updates the mutable fields of a pending transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "update transaction")
		return
	}

	logger.Info("Transaction updated", slog.Int64("transaction_id", id))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// markTransactionPaid godoc
// @Summary Mark a transaction as paid
// @Description Settles a pending transaction, recording the payment date and receipt reference
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param payment body dto.MarkTransactionPaidRequest false "Payment details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{id}/mark-as-paid [post]
func (h *transactionHandler) markTransactionPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.MarkTransactionPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid mark paid request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.MarkTransactionAsPaid(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "mark transaction paid")
		return
	}

	logger.Info("Transaction marked as paid", slog.Int64("transaction_id", id))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// cancelTransaction godoc
// @Summary Cancel a transaction
// @Description Cancels a pending transaction; settled or cancelled records are immutable
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param cancellation body dto.CancelTransactionRequest false "Cancellation notes"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{id}/cancel [post]
func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CancelTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid cancel transaction request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CancelTransaction(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "cancel transaction")
		return
	}

	logger.Info("Transaction cancelled", slog.Int64("transaction_id", id))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a pending transaction
// @Description Permanently removes a pending transaction; settled or cancelled history cannot be deleted
// @Tags transactions
// @Param id path int true "Transaction ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondWithError(c, logger, err, "delete transaction")
		return
	}

	logger.Info("Transaction deleted", slog.Int64("transaction_id", id))
	c.Status(http.StatusNoContent)
}
