package paymentplan

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// Allocate reconciles recorded payments against a schedule with a
// deterministic greedy policy: oldest obligations are paid off by the oldest
// available money, regardless of a payment's own date relative to a due's
// date. A single payment may be split across dues and a single due may be
// covered by several payments. Rejected records are excluded; malformed
// records are skipped and reported rather than aborting the computation.
//
// The returned allocations are in the same order and of the same length as
// the input schedule. Conservation holds: the allocated sum plus the
// unallocated remainder equals the sum of accepted payment amounts.
func Allocate(schedule []domain.ScheduledDue, payments []domain.PaymentRecord) domain.AllocationResult {
	accepted, skipped := screenPayments(payments)

	// Oldest money first; payment ID breaks date ties so reruns are stable.
	sort.SliceStable(accepted, func(i, j int) bool {
		if !accepted[i].Date.Equal(accepted[j].Date) {
			return accepted[i].Date.Before(accepted[j].Date)
		}
		return accepted[i].PaymentID < accepted[j].PaymentID
	})

	// Oldest obligation first, but results stay in schedule order.
	dueOrder := make([]int, len(schedule))
	for i := range dueOrder {
		dueOrder[i] = i
	}
	sort.SliceStable(dueOrder, func(a, b int) bool {
		di, dj := schedule[dueOrder[a]], schedule[dueOrder[b]]
		if !di.DueDate.Equal(dj.DueDate) {
			return di.DueDate.Before(dj.DueDate)
		}
		return di.Sequence < dj.Sequence
	})

	remainders := make([]decimal.Decimal, len(accepted))
	for i, p := range accepted {
		remainders[i] = p.Amount.Round(2)
	}

	allocations := make([]domain.Allocation, len(schedule))
	cursor := 0
	for _, idx := range dueOrder {
		due := schedule[idx]
		alloc := domain.Allocation{
			Due:             due,
			AmountAllocated: decimal.Zero,
		}

		need := due.Amount
		for need.IsPositive() && cursor < len(accepted) {
			if !remainders[cursor].IsPositive() {
				cursor++
				continue
			}
			applied := decimal.Min(need, remainders[cursor])
			alloc.AppliedPayments = append(alloc.AppliedPayments, domain.AppliedPayment{
				PaymentID:     accepted[cursor].PaymentID,
				AmountApplied: applied,
			})
			alloc.AmountAllocated = alloc.AmountAllocated.Add(applied)
			remainders[cursor] = remainders[cursor].Sub(applied)
			need = need.Sub(applied)
		}

		alloc.AmountPending = due.Amount.Sub(alloc.AmountAllocated)
		if alloc.AmountPending.IsNegative() {
			alloc.AmountPending = decimal.Zero
		}
		allocations[idx] = alloc
	}

	remainder := decimal.Zero
	for _, r := range remainders {
		remainder = remainder.Add(r)
	}

	return domain.AllocationResult{
		Allocations:          allocations,
		UnallocatedRemainder: remainder,
		SkippedRecords:       skipped,
	}
}

// screenPayments drops rejected records silently and malformed records with
// a diagnostic, returning the payments eligible for allocation.
func screenPayments(payments []domain.PaymentRecord) ([]domain.PaymentRecord, []domain.SkippedRecord) {
	accepted := make([]domain.PaymentRecord, 0, len(payments))
	var skipped []domain.SkippedRecord
	for _, p := range payments {
		if p.RecordStatus == domain.PaymentRejected {
			continue
		}
		if !p.Amount.IsPositive() {
			skipped = append(skipped, domain.SkippedRecord{PaymentID: p.PaymentID, Reason: "non-positive amount"})
			continue
		}
		if p.Date.IsZero() {
			skipped = append(skipped, domain.SkippedRecord{PaymentID: p.PaymentID, Reason: "missing payment date"})
			continue
		}
		accepted = append(accepted, p)
	}
	return accepted, skipped
}
