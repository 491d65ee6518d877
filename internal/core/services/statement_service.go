package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintera/finplan-backend/internal/core/domain"
	portsrepo "github.com/fintera/finplan-backend/internal/core/ports/repositories"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/utils/paymentplan"
)

// statementServiceImpl implements the StatementSvc interface. It owns no
// state of its own: every statement is recomputed from the plan configuration
// and the full payment history on demand.
type statementServiceImpl struct {
	BaseService
	planRepo    portsrepo.PlanReader
	paymentRepo portsrepo.PaymentReader
}

// NewStatementService creates a new statement service
func NewStatementService(planRepo portsrepo.PlanReader, paymentRepo portsrepo.PaymentReader) portssvc.StatementSvc {
	return &statementServiceImpl{planRepo: planRepo, paymentRepo: paymentRepo}
}

// Ensure statementServiceImpl implements the StatementSvc interface
var _ portssvc.StatementSvc = (*statementServiceImpl)(nil)

func (s *statementServiceImpl) GetStatement(ctx context.Context, planID string, asOf time.Time) (*domain.PlanStatement, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	schedule, err := paymentplan.Generate(*plan, plan.StartDate)
	if err != nil {
		s.LogError(ctx, err, "Stored plan no longer generates a schedule",
			slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	payments, err := s.paymentRepo.FindAllPaymentsByPlan(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for statement",
			slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	result := paymentplan.Allocate(schedule, payments)
	statement := paymentplan.Classify(result, paymentplan.DateOnly(asOf), plan.StartDate)

	s.LogDebug(ctx, "Statement computed",
		slog.String("plan_id", planID),
		slog.Int("dues", len(statement.Dues)),
		slog.Int("payments", len(payments)))
	return &statement, nil
}

func (s *statementServiceImpl) GetSchedule(ctx context.Context, planID string) ([]domain.ScheduledDue, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	schedule, err := paymentplan.Generate(*plan, plan.StartDate)
	if err != nil {
		s.LogError(ctx, err, "Stored plan no longer generates a schedule",
			slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}
	return schedule, nil
}
