package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests related to reports and exports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports and exports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/reports/financial", h.getFinancialReport)
	rg.GET("/financial/cash-flow", h.getCashFlow)
	rg.GET("/transactions/export/:format", h.exportTransactions)
	rg.GET("/commissions/export/:format", h.exportCommissions)
	rg.GET("/transactions/:id/receipt", h.getTransactionReceipt)
}

// writeDocument streams a rendered export as an attachment download.
func writeDocument(c *gin.Context, result *portssvc.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// getFinancialReport godoc
// @Summary Generate financial report
// @Description Computes the financial summary and line items for a due-date window
// @Tags reports
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Param type query string false "Transaction type (RECEIVABLE or PAYABLE)"
// @Param category_id query int false "Category ID"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/financial [get]
func (h *reportingHandler) getFinancialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.FinancialReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid financial report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.FinancialReport(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "generate financial report")
		return
	}

	logger.Info("Financial report generated", slog.Int("line_items", len(report.LineItems)))
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Generate cash-flow series
// @Description Computes the per-day income/expense series with running balance for a window; only days with settled activity appear
// @Tags reports
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /financial/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid cash flow query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	start, err := dto.ParseDate(params.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date format. Use YYYY-MM-DD"})
		return
	}
	end, err := dto.ParseDate(params.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date format. Use YYYY-MM-DD"})
		return
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be before or equal to end_date"})
		return
	}

	entries, err := h.reportingService.CashFlow(c.Request.Context(), start, end)
	if err != nil {
		respondWithError(c, logger, err, "generate cash flow")
		return
	}

	c.JSON(http.StatusOK, dto.CashFlowResponse{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Entries:   dto.ToCashFlowEntryResponses(entries),
	})
}

// exportTransactions godoc
// @Summary Export transactions
// @Description Renders a transactions export document; the external render service is tried first with a single local fallback
// @Tags reports
// @Produce application/octet-stream
// @Param format path string true "Document format (excel or pdf)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Rendering failed"
// @Router /transactions/export/{format} [get]
func (h *reportingHandler) exportTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var formatParams dto.ExportParams
	if err := c.ShouldBindUri(&formatParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use excel or pdf"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid export transactions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToTransactionFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	result, err := h.reportingService.ExportTransactions(c.Request.Context(), filter, formatParams.DocumentFormat())
	if err != nil {
		respondWithError(c, logger, err, "export transactions")
		return
	}

	logger.Info("Transactions export rendered", slog.String("format", formatParams.Format), slog.Int("bytes", len(result.Data)))
	writeDocument(c, result)
}

// exportCommissions godoc
// @Summary Export commissions
// @Description Renders a commissions export document; the external render service is tried first with a single local fallback
// @Tags reports
// @Produce application/octet-stream
// @Param format path string true "Document format (excel or pdf)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Rendering failed"
// @Router /commissions/export/{format} [get]
func (h *reportingHandler) exportCommissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var formatParams dto.ExportParams
	if err := c.ShouldBindUri(&formatParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use excel or pdf"})
		return
	}

	var params dto.ListCommissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid export commissions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToCommissionFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	result, err := h.reportingService.ExportCommissions(c.Request.Context(), filter, formatParams.DocumentFormat())
	if err != nil {
		respondWithError(c, logger, err, "export commissions")
		return
	}

	logger.Info("Commissions export rendered", slog.String("format", formatParams.Format), slog.Int("bytes", len(result.Data)))
	writeDocument(c, result)
}

// getTransactionReceipt godoc
// @Summary Generate a payment receipt
// @Description Renders a PDF receipt for a settled transaction
// @Tags reports
// @Produce application/pdf
// @Param id path int true "Transaction ID"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string "Transaction is not paid"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Rendering failed"
// @Router /transactions/{id}/receipt [get]
func (h *reportingHandler) getTransactionReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.reportingService.TransactionReceipt(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "generate receipt")
		return
	}

	logger.Info("Receipt rendered", slog.Int64("transaction_id", id), slog.Int("bytes", len(result.Data)))
	writeDocument(c, result)
}
