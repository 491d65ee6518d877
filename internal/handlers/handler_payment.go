package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to payment records.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payment records.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	rg.POST("/plans/:planID/payments", h.recordPayment)
	rg.GET("/plans/:planID/payments", h.listPayments)

	payments := rg.Group("/payments")
	{
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/verify", h.verifyPayment)
		payments.POST("/:paymentID/reject", h.rejectPayment)
	}
}

// recordPayment godoc
// @Summary Record a payment against a plan
// @Description Appends a new payment record; allocation to dues happens at statement time
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 409 {object} map[string]string "Plan is inactive"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /plans/{planID}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), planID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Plan is inactive"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments for a plan
// @Description Retrieves a paginated list of payment records for a plan, newest first
// @Tags payments
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /plans/{planID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), planID, params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list payments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPayment godoc
// @Summary Get a payment record
// @Description Retrieves a single payment record by its ID
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID (UUID)"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get payment from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// verifyPayment godoc
// @Summary Verify a recorded payment
// @Description Marks a recorded payment as verified after back-office confirmation
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID (UUID)"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment status does not allow verification"
// @Failure 500 {object} map[string]string "Failed to verify payment"
// @Security BearerAuth
// @Router /payments/{paymentID}/verify [post]
func (h *paymentHandler) verifyPayment(c *gin.Context) {
	h.transitionPayment(c, h.paymentService.VerifyPayment, "verify")
}

// rejectPayment godoc
// @Summary Reject a payment
// @Description Marks a payment as rejected; rejected payments never count toward any due
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID (UUID)"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment status does not allow rejection"
// @Failure 500 {object} map[string]string "Failed to reject payment"
// @Security BearerAuth
// @Router /payments/{paymentID}/reject [post]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	h.transitionPayment(c, h.paymentService.RejectPayment, "reject")
}

type transitionFn func(ctx context.Context, paymentID string, requestingUserID string) (*domain.PaymentRecord, error)

func (h *paymentHandler) transitionPayment(c *gin.Context, transition transitionFn, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := transition(c.Request.Context(), paymentID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Payment status does not allow this transition"})
		default:
			logger.Error("Failed to "+action+" payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
