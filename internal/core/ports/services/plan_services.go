package services

import (
	"context"

	"github.com/fintera/finplan-backend/internal/core/domain"
	"github.com/fintera/finplan-backend/internal/dto"
)

// PlanReaderSvc defines read operations for payment plan data
type PlanReaderSvc interface {
	// GetPlanByID retrieves a specific payment plan by its ID.
	GetPlanByID(ctx context.Context, planID string) (*domain.PlanConfig, error)

	// ListPlansBySale retrieves a paginated list of plans for a sale.
	ListPlansBySale(ctx context.Context, saleID string, params dto.ListPlansParams) (*dto.ListPlansResponse, error)
}

// PlanWriterSvc defines write operations for payment plan data
type PlanWriterSvc interface {
	// CreatePlan validates and persists a new payment plan.
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest, creatorUserID string) (*domain.PlanConfig, error)

	// UpdatePlan updates a plan's commercial terms. The previously derived
	// schedule needs no explicit invalidation: recomputation is total.
	UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, requestingUserID string) (*domain.PlanConfig, error)

	// DeactivatePlan marks a plan as inactive.
	DeactivatePlan(ctx context.Context, planID string, requestingUserID string) error
}

// PlanSvcFacade combines all plan-related service interfaces
type PlanSvcFacade interface {
	PlanReaderSvc
	PlanWriterSvc
}
