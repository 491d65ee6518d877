package services

import (
	"context"

	"github.com/fintera/finplan-backend/internal/dto"
)

// QuotationSvc is the reduced, one-shot reuse of the schedule generator:
// a preview amortization table for a not-yet-committed quotation. No plan is
// persisted and no reconciliation runs.
type QuotationSvc interface {
	// PreviewSchedule generates a schedule for hypothetical commercial terms.
	PreviewSchedule(ctx context.Context, req dto.QuotationPreviewRequest) (*dto.SchedulePreviewResponse, error)
}
