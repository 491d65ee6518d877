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

// ErrPaymentNotVerifiable is returned when a status transition is attempted
// from a state that does not allow it. Rejection is terminal; verification is
// only possible from the recorded state.
var ErrPaymentNotVerifiable = fmt.Errorf("payment status does not allow this transition: %w", apperrors.ErrConflict)

// paymentServiceImpl implements the PaymentSvcFacade interface
type paymentServiceImpl struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	planRepo    portsrepo.PlanReader
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, planRepo portsrepo.PlanReader) portssvc.PaymentSvcFacade {
	return &paymentServiceImpl{paymentRepo: paymentRepo, planRepo: planRepo}
}

// Ensure paymentServiceImpl implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentServiceImpl)(nil)

func (s *paymentServiceImpl) RecordPayment(ctx context.Context, planID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.PaymentRecord, error) {
	plan, err := s.planRepo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	payment := domain.PaymentRecord{
		PaymentID:    uuid.NewString(),
		PlanID:       planID,
		Amount:       req.Amount.Round(2),
		Date:         paymentplan.DateOnly(req.Date),
		Method:       req.Method,
		Reference:    req.Reference,
		RecordStatus: domain.PaymentRecorded,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment",
			slog.String("payment_id", payment.PaymentID),
			slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("plan_id", planID),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

func (s *paymentServiceImpl) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		s.LogDebug(ctx, "Failed to get payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	return payment, nil
}

func (s *paymentServiceImpl) ListPayments(ctx context.Context, planID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	payments, nextToken, err := s.paymentRepo.ListPaymentsByPlan(ctx, planID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("plan_id", planID))
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.PaymentRecord, error) {
	return s.transitionPayment(ctx, paymentID, requestingUserID, domain.PaymentVerified)
}

func (s *paymentServiceImpl) RejectPayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.PaymentRecord, error) {
	return s.transitionPayment(ctx, paymentID, requestingUserID, domain.PaymentRejected)
}

func (s *paymentServiceImpl) transitionPayment(ctx context.Context, paymentID string, requestingUserID string, target domain.PaymentRecordStatus) (*domain.PaymentRecord, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !allowedTransition(payment.RecordStatus, target) {
		s.LogDebug(ctx, "Payment transition refused",
			slog.String("payment_id", paymentID),
			slog.String("from", string(payment.RecordStatus)),
			slog.String("to", string(target)))
		return nil, ErrPaymentNotVerifiable
	}

	now := time.Now()
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, paymentID, target, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update payment status",
			slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	payment.RecordStatus = target
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = requestingUserID

	s.LogInfo(ctx, "Payment status updated",
		slog.String("payment_id", paymentID),
		slog.String("status", string(target)))
	return payment, nil
}

// allowedTransition encodes the payment lifecycle: verification only from
// recorded, rejection from recorded or verified, rejected is terminal.
func allowedTransition(from, to domain.PaymentRecordStatus) bool {
	switch to {
	case domain.PaymentVerified:
		return from == domain.PaymentRecorded
	case domain.PaymentRejected:
		return from == domain.PaymentRecorded || from == domain.PaymentVerified
	default:
		return false
	}
}
