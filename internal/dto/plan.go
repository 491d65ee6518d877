package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// DownPaymentRequest carries the down-payment portion of a plan request.
type DownPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   time.Time       `json:"date" binding:"required"`
}

// FinalSettlementRequest carries the optional settlement portion of a plan request.
// Date may be omitted; the schedule then places the settlement 30 days after
// the last installment.
type FinalSettlementRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Date   *time.Time      `json:"date"`
}

// CreatePlanRequest defines the data needed to create a new payment plan.
type CreatePlanRequest struct {
	SaleID            string                  `json:"saleID" binding:"required,uuid"`
	BuyerID           string                  `json:"buyerID" binding:"required,uuid"`
	TotalAmount       decimal.Decimal         `json:"totalAmount" binding:"required"`
	DownPayment       *DownPaymentRequest     `json:"downPayment"`
	InstallmentCount  int                     `json:"installmentCount" binding:"gte=0"`
	InstallmentDueDay int                     `json:"installmentDueDay" binding:"omitempty,min=1,max=31"`
	FinalSettlement   *FinalSettlementRequest `json:"finalSettlement"`
	StartDate         time.Time               `json:"startDate" binding:"required"`
	CurrencyCode      string                  `json:"currencyCode" binding:"required,uppercase,len=3"`
}

// UpdatePlanRequest defines the data allowed for updating a plan.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePlanRequest struct {
	TotalAmount       *decimal.Decimal        `json:"totalAmount"`
	DownPayment       *DownPaymentRequest     `json:"downPayment"`
	InstallmentCount  *int                    `json:"installmentCount" binding:"omitempty,gte=0"`
	InstallmentDueDay *int                    `json:"installmentDueDay" binding:"omitempty,min=1,max=31"`
	FinalSettlement   *FinalSettlementRequest `json:"finalSettlement"`
	StartDate         *time.Time              `json:"startDate"`
}

// PlanResponse defines the data returned for a payment plan.
type PlanResponse struct {
	PlanID            string                  `json:"planID"`
	SaleID            string                  `json:"saleID"`
	BuyerID           string                  `json:"buyerID"`
	TotalAmount       decimal.Decimal         `json:"totalAmount"`
	DownPayment       *DownPaymentRequest     `json:"downPayment,omitempty"`
	InstallmentCount  int                     `json:"installmentCount"`
	InstallmentDueDay int                     `json:"installmentDueDay,omitempty"`
	FinalSettlement   *FinalSettlementRequest `json:"finalSettlement,omitempty"`
	StartDate         time.Time               `json:"startDate"`
	CurrencyCode      string                  `json:"currencyCode"`
	IsActive          bool                    `json:"isActive"`
	CreatedAt         time.Time               `json:"createdAt"`
	CreatedBy         string                  `json:"createdBy"`
	LastUpdatedAt     time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy     string                  `json:"lastUpdatedBy"`
}

// ListPlansParams holds parameters for listing plans of a sale.
type ListPlansParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListPlansResponse is the paginated plan listing.
type ListPlansResponse struct {
	Plans     []PlanResponse `json:"plans"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToPlanResponse converts a domain.PlanConfig to PlanResponse DTO.
func ToPlanResponse(p *domain.PlanConfig) PlanResponse {
	resp := PlanResponse{
		PlanID:            p.PlanID,
		SaleID:            p.SaleID,
		BuyerID:           p.BuyerID,
		TotalAmount:       p.TotalAmount,
		InstallmentCount:  p.InstallmentCount,
		InstallmentDueDay: p.InstallmentDueDay,
		StartDate:         p.StartDate,
		CurrencyCode:      p.CurrencyCode,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		CreatedBy:         p.CreatedBy,
		LastUpdatedAt:     p.LastUpdatedAt,
		LastUpdatedBy:     p.LastUpdatedBy,
	}
	if p.DownPayment.Amount.IsPositive() {
		resp.DownPayment = &DownPaymentRequest{Amount: p.DownPayment.Amount, Date: p.DownPayment.Date}
	}
	if p.FinalSettlement != nil {
		settlement := &FinalSettlementRequest{Amount: p.FinalSettlement.Amount}
		if !p.FinalSettlement.Date.IsZero() {
			d := p.FinalSettlement.Date
			settlement.Date = &d
		}
		resp.FinalSettlement = settlement
	}
	return resp
}

// ToPlanResponses converts a slice of domain.PlanConfig to []PlanResponse.
func ToPlanResponses(plans []domain.PlanConfig) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = ToPlanResponse(&plans[i])
	}
	return responses
}
