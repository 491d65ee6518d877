package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationPreviewRequest describes a hypothetical plan to price before any
// sale exists. Same shape as CreatePlanRequest minus the sale linkage.
type QuotationPreviewRequest struct {
	TotalAmount       decimal.Decimal         `json:"totalAmount" binding:"required" example:"1000000"`
	DownPayment       *DownPaymentRequest     `json:"downPayment"`
	InstallmentCount  int                     `json:"installmentCount" binding:"gte=0" example:"10"`
	InstallmentDueDay int                     `json:"installmentDueDay" binding:"omitempty,min=1,max=31" example:"1"`
	FinalSettlement   *FinalSettlementRequest `json:"finalSettlement,omitempty"`
	StartDate         time.Time               `json:"startDate" binding:"required" example:"2024-02-01T00:00:00Z"`
	CurrencyCode      string                  `json:"currencyCode" binding:"required,uppercase,len=3" example:"USD"`
}

// SchedulePreviewResponse is the priced schedule for a quotation.
type SchedulePreviewResponse struct {
	Dues           []ScheduledDueResponse `json:"dues"`
	TotalScheduled decimal.Decimal        `json:"totalScheduled"`
	CurrencyCode   string                 `json:"currencyCode"`
}
