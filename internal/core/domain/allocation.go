package domain

import "github.com/shopspring/decimal"

// AppliedPayment records how much of one payment was applied to one due.
// The link exists only for the lifetime of a single computation; it is never
// persisted as a foreign key.
type AppliedPayment struct {
	PaymentID     string          `json:"paymentID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
}

// Allocation is the reconciliation result for a single scheduled due.
type Allocation struct {
	Due             ScheduledDue     `json:"due"`
	AmountAllocated decimal.Decimal  `json:"amountAllocated"`
	AppliedPayments []AppliedPayment `json:"appliedPayments"`
	AmountPending   decimal.Decimal  `json:"amountPending"`
}

// SkippedRecord is a diagnostic for a malformed payment record that was
// excluded from allocation instead of aborting the computation.
type SkippedRecord struct {
	PaymentID string `json:"paymentID"`
	Reason    string `json:"reason"`
}

// AllocationResult is the full output of one allocation pass: one Allocation
// per due (same order and length as the input schedule), the money left over
// once every due is satisfied, and any skipped-record diagnostics.
type AllocationResult struct {
	Allocations          []Allocation    `json:"allocations"`
	UnallocatedRemainder decimal.Decimal `json:"unallocatedRemainder"`
	SkippedRecords       []SkippedRecord `json:"skippedRecords,omitempty"`
}
