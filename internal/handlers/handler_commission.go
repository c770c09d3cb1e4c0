package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// commissionHandler handles HTTP requests related to agent commissions
type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

// newCommissionHandler creates a new commissionHandler
func newCommissionHandler(cs portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{
		commissionService: cs,
	}
}

// registerCommissionRoutes registers routes related to agent commissions
func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(commissionService)

	commissionGroup := rg.Group("/commissions")
	{
		commissionGroup.POST("", h.createCommission)
		commissionGroup.GET("", h.listCommissions)
		commissionGroup.GET("/:id", h.getCommissionByID)
		commissionGroup.PUT("/:id", h.updateCommission)
		commissionGroup.PUT("/:id/approve", h.approveCommission)
		commissionGroup.PUT("/:id/pay", h.payCommission)
		commissionGroup.POST("/:id/cancel", h.cancelCommission)
	}
}

// createCommission godoc
// @Summary Create a new commission
// @Description Creates a pending commission; when no explicit value is given it derives from the contract value and percentage
// @Tags commissions
// @Accept json
// @Produce json
// @Param commission body dto.CreateCommissionRequest true "Commission details"
// @Success 201 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /commissions [post]
func (h *commissionHandler) createCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create commission request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	commission, err := h.commissionService.CreateCommission(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "create commission")
		return
	}

	logger.Info("Commission created", slog.Int64("commission_id", commission.CommissionID))
	c.JSON(http.StatusCreated, dto.ToCommissionResponse(commission))
}

// listCommissions godoc
// @Summary List commissions
// @Description Lists commissions matching the filter, paginated and deterministically ordered
// @Tags commissions
// @Produce json
// @Param status query string false "Commission status (PENDING, APPROVED, PAID or CANCELLED)"
// @Param agent_id query int false "Agent ID"
// @Param contract_id query int false "Contract ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ListCommissionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /commissions [get]
func (h *commissionHandler) listCommissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCommissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list commissions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToCommissionFilter()
	if err != nil {
		logger.Warn("Invalid date in list commissions query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	commissions, total, err := h.commissionService.ListCommissions(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, logger, err, "list commissions")
		return
	}

	c.JSON(http.StatusOK, dto.ListCommissionsResponse{
		Commissions: dto.ToCommissionResponses(commissions),
		Page:        filter.Page,
		PerPage:     filter.PerPage,
		Total:       total,
	})
}

// getCommissionByID godoc
// @Summary Get a commission
// @Description Retrieves a single commission by its ID
// @Tags commissions
// @Produce json
// @Param id path int true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /commissions/{id} [get]
func (h *commissionHandler) getCommissionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	commission, err := h.commissionService.GetCommissionByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "get commission")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// updateCommission godoc
// @Summary Update a pending commission
// @Description Updates the mutable fields of a pending commission; changing the percentage re-derives the value
// @Tags commissions
// @Accept json
// @Produce json
// @Param id path int true "Commission ID"
// @Param commission body dto.UpdateCommissionRequest true "Fields to update"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 422 {object} map[string]string "Commission is not pending"
// @Router /commissions/{id} [put]
func (h *commissionHandler) updateCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid update commission request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	commission, err := h.commissionService.UpdateCommission(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "update commission")
		return
	}

	logger.Info("Commission updated", slog.Int64("commission_id", id))
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// approveCommission godoc
// @Summary Approve a commission
// @Description Moves a pending commission to APPROVED
// @Tags commissions
// @Produce json
// @Param id path int true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 422 {object} map[string]string "Commission is not pending"
// @Router /commissions/{id}/approve [put]
func (h *commissionHandler) approveCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	commission, err := h.commissionService.ApproveCommission(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, logger, err, "approve commission")
		return
	}

	logger.Info("Commission approved", slog.Int64("commission_id", id))
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// payCommission godoc
// @Summary Pay a commission
// @Description Settles an approved commission, recording the payment details
// @Tags commissions
// @Accept json
// @Produce json
// @Param id path int true "Commission ID"
// @Param payment body dto.PayCommissionRequest true "Payment details"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 422 {object} map[string]string "Commission is not approved"
// @Router /commissions/{id}/pay [put]
func (h *commissionHandler) payCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PayCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid pay commission request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	commission, err := h.commissionService.PayCommission(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "pay commission")
		return
	}

	logger.Info("Commission paid", slog.Int64("commission_id", id))
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// cancelCommission godoc
// @Summary Cancel a commission
// @Description Cancels a pending or approved commission; paid commissions are immutable
// @Tags commissions
// @Accept json
// @Produce json
// @Param id path int true "Commission ID"
// @Param cancellation body dto.CancelCommissionRequest false "Cancellation notes"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 422 {object} map[string]string "Commission is already terminal"
// @Router /commissions/{id}/cancel [post]
func (h *commissionHandler) cancelCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CancelCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid cancel commission request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	commission, err := h.commissionService.CancelCommission(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, logger, err, "cancel commission")
		return
	}

	logger.Info("Commission cancelled", slog.Int64("commission_id", id))
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}
