package repositories

import (
	"context"
	"time"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// PlanReader defines read operations for payment plan data
type PlanReader interface {
	// FindPlanByID retrieves a specific payment plan by its unique identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.PlanConfig, error)

	// ListPlansBySale retrieves a paginated list of plans for a given sale using token-based pagination.
	// It returns the plans, a token for the next page, and an error.
	ListPlansBySale(ctx context.Context, saleID string, limit int, nextToken *string) ([]domain.PlanConfig, *string, error)
}

// PlanWriter defines write operations for payment plan data
type PlanWriter interface {
	// SavePlan persists a new payment plan.
	SavePlan(ctx context.Context, plan domain.PlanConfig) error

	// UpdatePlan updates the commercial terms of an existing plan.
	UpdatePlan(ctx context.Context, plan domain.PlanConfig) error

	// DeactivatePlan marks a plan as inactive.
	DeactivatePlan(ctx context.Context, planID string, updatedByUserID string, updatedAt time.Time) error
}

// PlanRepositoryFacade combines all plan-related repository interfaces
// This is a facade for clients that need access to all operations
type PlanRepositoryFacade interface {
	PlanReader
	PlanWriter
}
