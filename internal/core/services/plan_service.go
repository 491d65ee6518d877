package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portsrepo "github.com/fintera/finplan-backend/internal/core/ports/repositories"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/utils/paymentplan"
)

// ErrPlanInactive is returned when a write is attempted against a
// deactivated plan.
var ErrPlanInactive = fmt.Errorf("plan is inactive: %w", apperrors.ErrConflict)

// planServiceImpl implements the PlanSvcFacade interface
type planServiceImpl struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
}

// NewPlanService creates a new plan service
func NewPlanService(repo portsrepo.PlanRepositoryFacade) portssvc.PlanSvcFacade {
	return &planServiceImpl{planRepo: repo}
}

// Ensure planServiceImpl implements the PlanSvcFacade interface
var _ portssvc.PlanSvcFacade = (*planServiceImpl)(nil)

func (s *planServiceImpl) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, creatorUserID string) (*domain.PlanConfig, error) {
	now := time.Now()

	plan := domain.PlanConfig{
		PlanID:            uuid.NewString(),
		SaleID:            req.SaleID,
		BuyerID:           req.BuyerID,
		TotalAmount:       req.TotalAmount,
		InstallmentCount:  req.InstallmentCount,
		InstallmentDueDay: req.InstallmentDueDay,
		StartDate:         paymentplan.DateOnly(req.StartDate),
		CurrencyCode:      req.CurrencyCode,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.DownPayment != nil {
		plan.DownPayment = domain.DownPayment{
			Amount: req.DownPayment.Amount,
			Date:   paymentplan.DateOnly(req.DownPayment.Date),
		}
	}
	if req.FinalSettlement != nil {
		settlement := domain.FinalSettlement{Amount: req.FinalSettlement.Amount}
		if req.FinalSettlement.Date != nil {
			settlement.Date = paymentplan.DateOnly(*req.FinalSettlement.Date)
		}
		plan.FinalSettlement = &settlement
	}

	// A configuration that cannot produce a schedule is rejected up front,
	// before anything is persisted.
	if _, err := paymentplan.Generate(plan, plan.StartDate); err != nil {
		s.LogError(ctx, err, "Plan configuration rejected",
			slog.String("sale_id", req.SaleID))
		return nil, err
	}

	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to save plan",
			slog.String("plan_id", plan.PlanID),
			slog.String("sale_id", plan.SaleID))
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.LogInfo(ctx, "Plan created successfully",
		slog.String("plan_id", plan.PlanID),
		slog.String("sale_id", plan.SaleID))
	return &plan, nil
}

func (s *planServiceImpl) GetPlanByID(ctx context.Context, planID string) (*domain.PlanConfig, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		s.LogDebug(ctx, "Failed to get plan", slog.String("plan_id", planID))
		return nil, err
	}
	return plan, nil
}

func (s *planServiceImpl) ListPlansBySale(ctx context.Context, saleID string, params dto.ListPlansParams) (*dto.ListPlansResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	plans, nextToken, err := s.planRepo.ListPlansBySale(ctx, saleID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans", slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve plans: %w", err)
	}

	return &dto.ListPlansResponse{
		Plans:     dto.ToPlanResponses(plans),
		NextToken: nextToken,
	}, nil
}

func (s *planServiceImpl) UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, requestingUserID string) (*domain.PlanConfig, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	if req.TotalAmount != nil {
		plan.TotalAmount = *req.TotalAmount
	}
	if req.DownPayment != nil {
		plan.DownPayment = domain.DownPayment{
			Amount: req.DownPayment.Amount,
			Date:   paymentplan.DateOnly(req.DownPayment.Date),
		}
	}
	if req.InstallmentCount != nil {
		plan.InstallmentCount = *req.InstallmentCount
	}
	if req.InstallmentDueDay != nil {
		plan.InstallmentDueDay = *req.InstallmentDueDay
	}
	if req.FinalSettlement != nil {
		settlement := domain.FinalSettlement{Amount: req.FinalSettlement.Amount}
		if req.FinalSettlement.Date != nil {
			settlement.Date = paymentplan.DateOnly(*req.FinalSettlement.Date)
		}
		plan.FinalSettlement = &settlement
	}
	if req.StartDate != nil {
		plan.StartDate = paymentplan.DateOnly(*req.StartDate)
	}

	// The edited terms must still generate a valid schedule. Statements are
	// recomputed in full on every read, so no derived state needs clearing.
	if _, err := paymentplan.Generate(*plan, plan.StartDate); err != nil {
		s.LogError(ctx, err, "Plan update rejected",
			slog.String("plan_id", planID))
		return nil, err
	}

	plan.LastUpdatedAt = time.Now()
	plan.LastUpdatedBy = requestingUserID

	if err := s.planRepo.UpdatePlan(ctx, *plan); err != nil {
		s.LogError(ctx, err, "Failed to update plan", slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	s.LogInfo(ctx, "Plan updated successfully", slog.String("plan_id", planID))
	return plan, nil
}

func (s *planServiceImpl) DeactivatePlan(ctx context.Context, planID string, requestingUserID string) error {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return err
	}
	if !plan.IsActive {
		return ErrPlanInactive
	}

	if err := s.planRepo.DeactivatePlan(ctx, planID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate plan", slog.String("plan_id", planID))
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}

	s.LogInfo(ctx, "Plan deactivated", slog.String("plan_id", planID))
	return nil
}
