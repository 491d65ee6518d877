package paymentplan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// Classify derives per-due statuses and aggregate portfolio metrics from an
// allocation result. A due is PAID when nothing is pending, OVERDUE when its
// due date has passed the reference date and money is still pending, and
// PENDING otherwise. A due with some but not all of its amount covered also
// carries the partially-paid flag.
func Classify(result domain.AllocationResult, asOf, planStart time.Time) domain.PlanStatement {
	asOf = DateOnly(asOf)

	dues := make([]domain.DueView, len(result.Allocations))
	totalScheduled := decimal.Zero
	totalPaid := decimal.Zero
	for i, alloc := range result.Allocations {
		view := domain.DueView{
			Due:             alloc.Due,
			AmountAllocated: alloc.AmountAllocated,
			AmountPending:   alloc.AmountPending,
			AppliedPayments: alloc.AppliedPayments,
		}
		switch {
		case !alloc.AmountPending.IsPositive():
			view.Status = domain.DuePaid
		case alloc.Due.DueDate.Before(asOf):
			view.Status = domain.DueOverdue
		default:
			view.Status = domain.DuePending
		}
		view.PartiallyPaid = alloc.AmountPending.IsPositive() && alloc.AmountPending.LessThan(alloc.Due.Amount)
		dues[i] = view

		totalScheduled = totalScheduled.Add(alloc.Due.Amount)
		totalPaid = totalPaid.Add(decimal.Min(alloc.Due.Amount, alloc.AmountAllocated))
	}

	summary := domain.PlanSummary{
		TotalScheduled: totalScheduled,
		TotalPaid:      totalPaid,
		TotalPending:   totalScheduled.Sub(totalPaid),
	}

	if totalScheduled.IsPositive() {
		summary.ProgressPercent = totalPaid.Div(totalScheduled).Mul(hundred).Round(2)
	} else {
		summary.ProgressPercent = decimal.Zero
	}

	summary.NextDue = nextUnpaidDue(dues)

	monthsElapsed := MonthsElapsed(planStart, asOf)
	if monthsElapsed < 1 {
		monthsElapsed = 1
	}
	summary.MonthlyVelocity = totalPaid.Div(decimal.NewFromInt(int64(monthsElapsed))).Round(2)

	if summary.MonthlyVelocity.IsPositive() {
		months := int(summary.TotalPending.Div(summary.MonthlyVelocity).Ceil().IntPart())
		summary.MonthsToComplete = &months
	}

	return domain.PlanStatement{
		AsOf:                 asOf,
		Dues:                 dues,
		Summary:              summary,
		UnallocatedRemainder: result.UnallocatedRemainder,
		SkippedRecords:       result.SkippedRecords,
	}
}

// nextUnpaidDue returns a copy of the earliest due that still needs money.
func nextUnpaidDue(dues []domain.DueView) *domain.DueView {
	var next *domain.DueView
	for i := range dues {
		if dues[i].Status == domain.DuePaid {
			continue
		}
		if next == nil || dues[i].Due.DueDate.Before(next.Due.DueDate) {
			candidate := dues[i]
			next = &candidate
		}
	}
	return next
}
