package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintera/finplan-backend/internal/apperrors"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/middleware"
)

// quotationHandler handles schedule previews for not-yet-committed terms.
type quotationHandler struct {
	quotationService portssvc.QuotationSvc
}

// newQuotationHandler creates a new quotationHandler.
func newQuotationHandler(qs portssvc.QuotationSvc) *quotationHandler {
	return &quotationHandler{quotationService: qs}
}

// registerQuotationRoutes registers routes related to quotations.
func registerQuotationRoutes(rg *gin.RouterGroup, quotationService portssvc.QuotationSvc) {
	h := newQuotationHandler(quotationService)

	quotations := rg.Group("/quotations")
	{
		quotations.POST("/preview", h.previewSchedule)
	}
}

// previewSchedule godoc
// @Summary Preview a payment schedule
// @Description Generates the amortization schedule for hypothetical commercial terms without persisting anything
// @Tags quotations
// @Accept  json
// @Produce  json
// @Param   quotation body dto.QuotationPreviewRequest true "Hypothetical terms"
// @Success 200 {object} dto.SchedulePreviewResponse
// @Failure 400 {object} map[string]string "Terms cannot produce a schedule"
// @Failure 500 {object} map[string]string "Failed to generate preview"
// @Security BearerAuth
// @Router /quotations/preview [post]
func (h *quotationHandler) previewSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.QuotationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.quotationService.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to generate preview", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate preview"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
