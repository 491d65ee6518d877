package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// ScheduledDueResponse is one row of a generated schedule.
type ScheduledDueResponse struct {
	Sequence int             `json:"sequence"`
	DueDate  time.Time       `json:"dueDate"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     string          `json:"kind"`
	Label    string          `json:"label"`
}

// AppliedPaymentResponse shows which payment covered part of a due in the
// current computation. The link is derived, not stored.
type AppliedPaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
}

// DueViewResponse is one classified row of a plan statement.
type DueViewResponse struct {
	ScheduledDueResponse
	Status          string                   `json:"status"`
	PartiallyPaid   bool                     `json:"partiallyPaid"`
	AmountAllocated decimal.Decimal          `json:"amountAllocated"`
	AmountPending   decimal.Decimal          `json:"amountPending"`
	AppliedPayments []AppliedPaymentResponse `json:"appliedPayments,omitempty"`
}

// PlanSummaryResponse aggregates the portfolio metrics of a statement.
type PlanSummaryResponse struct {
	TotalScheduled   decimal.Decimal  `json:"totalScheduled"`
	TotalPaid        decimal.Decimal  `json:"totalPaid"`
	TotalPending     decimal.Decimal  `json:"totalPending"`
	ProgressPercent  decimal.Decimal  `json:"progressPercent"`
	NextDue          *DueViewResponse `json:"nextDue,omitempty"`
	MonthlyVelocity  decimal.Decimal  `json:"monthlyVelocity"`
	MonthsToComplete *int             `json:"monthsToComplete,omitempty"`
}

// SkippedRecordResponse reports a malformed payment excluded from allocation.
type SkippedRecordResponse struct {
	PaymentID string `json:"paymentID"`
	Reason    string `json:"reason"`
}

// StatementResponse is the full plan statement returned to presentation code.
type StatementResponse struct {
	PlanID               string                  `json:"planID"`
	AsOf                 time.Time               `json:"asOf"`
	Dues                 []DueViewResponse       `json:"dues"`
	Summary              PlanSummaryResponse     `json:"summary"`
	UnallocatedRemainder decimal.Decimal         `json:"unallocatedRemainder"`
	SkippedRecords       []SkippedRecordResponse `json:"skippedRecords,omitempty"`
}

// ScheduleResponse is the bare generated schedule for a plan.
type ScheduleResponse struct {
	PlanID string                 `json:"planID"`
	Dues   []ScheduledDueResponse `json:"dues"`
}

// ToScheduledDueResponse converts a domain.ScheduledDue to its DTO.
func ToScheduledDueResponse(due domain.ScheduledDue) ScheduledDueResponse {
	return ScheduledDueResponse{
		Sequence: due.Sequence,
		DueDate:  due.DueDate,
		Amount:   due.Amount,
		Kind:     string(due.Kind),
		Label:    due.Label,
	}
}

// ToScheduledDueResponses converts a schedule to its DTO rows.
func ToScheduledDueResponses(dues []domain.ScheduledDue) []ScheduledDueResponse {
	responses := make([]ScheduledDueResponse, len(dues))
	for i, due := range dues {
		responses[i] = ToScheduledDueResponse(due)
	}
	return responses
}

// ToDueViewResponse converts a domain.DueView to its DTO.
func ToDueViewResponse(view domain.DueView) DueViewResponse {
	resp := DueViewResponse{
		ScheduledDueResponse: ToScheduledDueResponse(view.Due),
		Status:               string(view.Status),
		PartiallyPaid:        view.PartiallyPaid,
		AmountAllocated:      view.AmountAllocated,
		AmountPending:        view.AmountPending,
	}
	if len(view.AppliedPayments) > 0 {
		resp.AppliedPayments = make([]AppliedPaymentResponse, len(view.AppliedPayments))
		for i, applied := range view.AppliedPayments {
			resp.AppliedPayments[i] = AppliedPaymentResponse{
				PaymentID:     applied.PaymentID,
				AmountApplied: applied.AmountApplied,
			}
		}
	}
	return resp
}

// ToStatementResponse converts a domain.PlanStatement to StatementResponse DTO.
func ToStatementResponse(planID string, statement *domain.PlanStatement) StatementResponse {
	resp := StatementResponse{
		PlanID:               planID,
		AsOf:                 statement.AsOf,
		Dues:                 make([]DueViewResponse, len(statement.Dues)),
		UnallocatedRemainder: statement.UnallocatedRemainder,
	}
	for i, view := range statement.Dues {
		resp.Dues[i] = ToDueViewResponse(view)
	}

	summary := statement.Summary
	resp.Summary = PlanSummaryResponse{
		TotalScheduled:   summary.TotalScheduled,
		TotalPaid:        summary.TotalPaid,
		TotalPending:     summary.TotalPending,
		ProgressPercent:  summary.ProgressPercent,
		MonthlyVelocity:  summary.MonthlyVelocity,
		MonthsToComplete: summary.MonthsToComplete,
	}
	if summary.NextDue != nil {
		next := ToDueViewResponse(*summary.NextDue)
		resp.Summary.NextDue = &next
	}

	if len(statement.SkippedRecords) > 0 {
		resp.SkippedRecords = make([]SkippedRecordResponse, len(statement.SkippedRecords))
		for i, skipped := range statement.SkippedRecords {
			resp.SkippedRecords[i] = SkippedRecordResponse{PaymentID: skipped.PaymentID, Reason: skipped.Reason}
		}
	}
	return resp
}
