package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/utils/paymentplan"
)

// quotationServiceImpl implements the QuotationSvc interface. It has no
// repository dependencies: previews are computed and discarded.
type quotationServiceImpl struct {
	BaseService
}

// NewQuotationService creates a new quotation service
func NewQuotationService() portssvc.QuotationSvc {
	return &quotationServiceImpl{}
}

// Ensure quotationServiceImpl implements the QuotationSvc interface
var _ portssvc.QuotationSvc = (*quotationServiceImpl)(nil)

func (s *quotationServiceImpl) PreviewSchedule(ctx context.Context, req dto.QuotationPreviewRequest) (*dto.SchedulePreviewResponse, error) {
	cfg := domain.PlanConfig{
		TotalAmount:       req.TotalAmount,
		InstallmentCount:  req.InstallmentCount,
		InstallmentDueDay: req.InstallmentDueDay,
		StartDate:         paymentplan.DateOnly(req.StartDate),
		CurrencyCode:      req.CurrencyCode,
	}
	if req.DownPayment != nil {
		cfg.DownPayment = domain.DownPayment{
			Amount: req.DownPayment.Amount,
			Date:   paymentplan.DateOnly(req.DownPayment.Date),
		}
	}
	if req.FinalSettlement != nil {
		settlement := domain.FinalSettlement{Amount: req.FinalSettlement.Amount}
		if req.FinalSettlement.Date != nil {
			settlement.Date = paymentplan.DateOnly(*req.FinalSettlement.Date)
		}
		cfg.FinalSettlement = &settlement
	}

	schedule, err := paymentplan.Generate(cfg, cfg.StartDate)
	if err != nil {
		s.LogDebug(ctx, "Quotation preview rejected")
		return nil, err
	}

	total := decimal.Zero
	for _, due := range schedule {
		total = total.Add(due.Amount)
	}

	return &dto.SchedulePreviewResponse{
		Dues:           dto.ToScheduledDueResponses(schedule),
		TotalScheduled: total,
		CurrencyCode:   req.CurrencyCode,
	}, nil
}
