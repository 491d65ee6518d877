package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintera/finplan-backend/internal/apperrors"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/middleware"
)

const asOfDateFormat = "2006-01-02"

// planHandler handles HTTP requests related to payment plans and their
// derived schedules and statements.
type planHandler struct {
	planService      portssvc.PlanSvcFacade
	statementService portssvc.StatementSvc
}

// newPlanHandler creates a new planHandler.
func newPlanHandler(ps portssvc.PlanSvcFacade, ss portssvc.StatementSvc) *planHandler {
	return &planHandler{
		planService:      ps,
		statementService: ss,
	}
}

// RegisterPlanRoutes registers routes related to payment plans.
func RegisterPlanRoutes(rg *gin.RouterGroup, planService portssvc.PlanSvcFacade, statementService portssvc.StatementSvc) {
	h := newPlanHandler(planService, statementService)

	plans := rg.Group("/plans")
	{
		plans.POST("", h.createPlan)
		plans.GET("/:planID", h.getPlan)
		plans.PUT("/:planID", h.updatePlan)
		plans.DELETE("/:planID", h.deactivatePlan)
		plans.GET("/:planID/schedule", h.getSchedule)
		plans.GET("/:planID/statement", h.getStatement)
	}

	rg.GET("/sales/:saleID/plans", h.listPlansBySale)
}

// createPlan godoc
// @Summary Create a new payment plan
// @Description Validates the commercial terms and creates a payment plan for a sale
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} map[string]string "Invalid input or terms that cannot produce a schedule"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create plan"
// @Security BearerAuth
// @Router /plans [post]
func (h *planHandler) createPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Plan terms rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create plan in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// getPlan godoc
// @Summary Get a payment plan
// @Description Retrieves the commercial terms of a payment plan
// @Tags plans
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve plan"
// @Security BearerAuth
// @Router /plans/{planID} [get]
func (h *planHandler) getPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	plan, err := h.planService.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		} else {
			logger.Error("Failed to get plan from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve plan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// listPlansBySale godoc
// @Summary List payment plans for a sale
// @Description Retrieves a paginated list of payment plans attached to a sale
// @Tags plans
// @Produce  json
// @Param   saleID path string true "Sale ID (UUID)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListPlansResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list plans"
// @Security BearerAuth
// @Router /sales/{saleID}/plans [get]
func (h *planHandler) listPlansBySale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	var params dto.ListPlansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.planService.ListPlansBySale(c.Request.Context(), saleID, params)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list plans from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updatePlan godoc
// @Summary Update a payment plan
// @Description Updates the commercial terms of an active plan; the schedule is rederived on the next read
// @Tags plans
// @Accept  json
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Param   plan body dto.UpdatePlanRequest true "Fields to update"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} map[string]string "Invalid input or terms that cannot produce a schedule"
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 409 {object} map[string]string "Plan is inactive"
// @Failure 500 {object} map[string]string "Failed to update plan"
// @Security BearerAuth
// @Router /plans/{planID} [put]
func (h *planHandler) updatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), planID, req, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Plan is inactive"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update plan in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// deactivatePlan godoc
// @Summary Deactivate a payment plan
// @Description Marks a plan inactive; history is preserved and statements stay readable
// @Tags plans
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Success 204 "Plan deactivated"
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 409 {object} map[string]string "Plan already inactive"
// @Failure 500 {object} map[string]string "Failed to deactivate plan"
// @Security BearerAuth
// @Router /plans/{planID} [delete]
func (h *planHandler) deactivatePlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.planService.DeactivatePlan(c.Request.Context(), planID, requestingUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Plan already inactive"})
		default:
			logger.Error("Failed to deactivate plan in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate plan"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getSchedule godoc
// @Summary Get the generated schedule for a plan
// @Description Returns the amortization schedule derived from the plan's terms
// @Tags plans
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 500 {object} map[string]string "Failed to generate schedule"
// @Security BearerAuth
// @Router /plans/{planID}/schedule [get]
func (h *planHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	schedule, err := h.statementService.GetSchedule(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		} else {
			logger.Error("Failed to generate schedule", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ScheduleResponse{
		PlanID: planID,
		Dues:   dto.ToScheduledDueResponses(schedule),
	})
}

// getStatement godoc
// @Summary Get the reconciled statement for a plan
// @Description Recomputes the schedule, allocates all recorded payments and classifies each due as of the given date
// @Tags plans
// @Produce  json
// @Param   planID path string true "Plan ID (UUID)"
// @Param   asOf query string false "Reference date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 404 {object} map[string]string "Plan not found"
// @Failure 500 {object} map[string]string "Failed to compute statement"
// @Security BearerAuth
// @Router /plans/{planID}/statement [get]
func (h *planHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	planID := c.Param("planID")

	asOf := time.Now().UTC()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse(asOfDateFormat, asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), planID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		} else {
			logger.Error("Failed to compute statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(planID, statement))
}
