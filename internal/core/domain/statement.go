package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueStatus is the derived state of a scheduled due as of a reference date.
type DueStatus string

const (
	DuePaid    DueStatus = "PAID"
	DuePending DueStatus = "PENDING"
	DueOverdue DueStatus = "OVERDUE"
)

// DueView is the presentation-ready state of one due: the due itself plus
// its reconciliation and classification results.
type DueView struct {
	Due             ScheduledDue     `json:"due"`
	Status          DueStatus        `json:"status"`
	PartiallyPaid   bool             `json:"partiallyPaid"`
	AmountAllocated decimal.Decimal  `json:"amountAllocated"`
	AmountPending   decimal.Decimal  `json:"amountPending"`
	AppliedPayments []AppliedPayment `json:"appliedPayments,omitempty"`
}

// PlanSummary aggregates portfolio metrics across a plan's dues.
type PlanSummary struct {
	TotalScheduled  decimal.Decimal `json:"totalScheduled"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalPending    decimal.Decimal `json:"totalPending"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
	NextDue         *DueView        `json:"nextDue,omitempty"`
	MonthlyVelocity decimal.Decimal `json:"monthlyVelocity"`
	// MonthsToComplete is nil when velocity is zero: completion is
	// indeterminate, never a division failure.
	MonthsToComplete *int `json:"monthsToComplete,omitempty"`
}

// PlanStatement is the only artifact the presentation layer consumes: the
// classified dues plus aggregate metrics, recomputed in full on every read.
type PlanStatement struct {
	AsOf                 time.Time       `json:"asOf"`
	Dues                 []DueView       `json:"dues"`
	Summary              PlanSummary     `json:"summary"`
	UnallocatedRemainder decimal.Decimal `json:"unallocatedRemainder"`
	SkippedRecords       []SkippedRecord `json:"skippedRecords,omitempty"`
}
