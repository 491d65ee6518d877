package services

import (
	"context"
	"time"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// StatementSvc produces the derived, presentation-ready view of a plan:
// its generated schedule reconciled against the recorded payments and
// classified as of a reference date. Nothing it returns is ever persisted.
type StatementSvc interface {
	// GetStatement recomputes the full statement for a plan as of the given date.
	GetStatement(ctx context.Context, planID string, asOf time.Time) (*domain.PlanStatement, error)

	// GetSchedule returns just the generated amortization schedule for a plan.
	GetSchedule(ctx context.Context, planID string) ([]domain.ScheduledDue, error)
}
