package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// RecordPaymentRequest defines the data needed to register a payment against a plan.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Method    string          `json:"method" binding:"required,paymentmethod"`
	Reference string          `json:"reference"`
}

// PaymentResponse defines the data returned for a payment record.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	PlanID        string          `json:"planID"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	RecordStatus  string          `json:"recordStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListPaymentsParams holds parameters for listing payments of a plan.
type ListPaymentsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse is the paginated payment listing.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentRecord to PaymentResponse DTO.
func ToPaymentResponse(p *domain.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		PlanID:        p.PlanID,
		Amount:        p.Amount,
		Date:          p.Date,
		Method:        p.Method,
		Reference:     p.Reference,
		RecordStatus:  string(p.RecordStatus),
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ToPaymentResponses converts a slice of domain.PaymentRecord to []PaymentResponse.
func ToPaymentResponses(payments []domain.PaymentRecord) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
