package paymentplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintera/finplan-backend/internal/core/domain"
	"github.com/fintera/finplan-backend/internal/utils/paymentplan"
)

func TestClassify_ReconciliationScenario(t *testing.T) {
	// Dues of 70,000 at Feb 1 and Mar 1; payments of 50,000 (Feb 5) and
	// 40,000 (Mar 10). Due 1 ends up fully paid, due 2 is 50,000 short.
	payments := []domain.PaymentRecord{
		payment("p1", "50000", date(2024, 2, 5)),
		payment("p2", "40000", date(2024, 3, 10)),
	}
	result := paymentplan.Allocate(twoDues(), payments)

	statement := paymentplan.Classify(result, date(2024, 3, 10), date(2024, 1, 1))
	require.Len(t, statement.Dues, 2)

	assert.Equal(t, domain.DuePaid, statement.Dues[0].Status)
	assert.False(t, statement.Dues[0].PartiallyPaid)

	assert.Equal(t, domain.DueOverdue, statement.Dues[1].Status)
	assert.True(t, statement.Dues[1].PartiallyPaid)
	assert.True(t, statement.Dues[1].AmountPending.Equal(dec("50000")))

	// Before the second due date the same due is merely pending.
	earlier := paymentplan.Classify(result, date(2024, 2, 20), date(2024, 1, 1))
	assert.Equal(t, domain.DuePending, earlier.Dues[1].Status)
}

func TestClassify_NoPaymentsBaseline(t *testing.T) {
	result := paymentplan.Allocate(twoDues(), nil)
	statement := paymentplan.Classify(result, date(2024, 2, 15), date(2024, 1, 1))

	for _, due := range statement.Dues {
		assert.NotEqual(t, domain.DuePaid, due.Status, "due %d cannot be paid without payments", due.Due.Sequence)
	}
	assert.Equal(t, domain.DueOverdue, statement.Dues[0].Status)
	assert.Equal(t, domain.DuePending, statement.Dues[1].Status)
	assert.True(t, statement.Summary.TotalPaid.IsZero())
	assert.True(t, statement.Summary.ProgressPercent.IsZero())
}

func TestClassify_DueDateEqualToAsOfIsPending(t *testing.T) {
	result := paymentplan.Allocate(twoDues(), nil)
	statement := paymentplan.Classify(result, date(2024, 2, 1), date(2024, 1, 1))

	// Overdue requires dueDate strictly before the reference date.
	assert.Equal(t, domain.DuePending, statement.Dues[0].Status)
}

func TestClassify_SummaryMetrics(t *testing.T) {
	payments := []domain.PaymentRecord{
		payment("p1", "70000", date(2024, 2, 5)),
	}
	result := paymentplan.Allocate(twoDues(), payments)
	statement := paymentplan.Classify(result, date(2024, 3, 15), date(2024, 1, 1))

	summary := statement.Summary
	assert.True(t, summary.TotalScheduled.Equal(dec("140000")))
	assert.True(t, summary.TotalPaid.Equal(dec("70000")))
	assert.True(t, summary.TotalPending.Equal(dec("70000")))
	assert.True(t, summary.ProgressPercent.Equal(dec("50")))

	require.NotNil(t, summary.NextDue)
	assert.Equal(t, 2, summary.NextDue.Due.Sequence)

	// Two whole months elapsed between Jan 1 and Mar 15.
	assert.True(t, summary.MonthlyVelocity.Equal(dec("35000")))
	require.NotNil(t, summary.MonthsToComplete)
	assert.Equal(t, 2, *summary.MonthsToComplete)
}

func TestClassify_ZeroVelocityIsIndeterminate(t *testing.T) {
	result := paymentplan.Allocate(twoDues(), nil)
	statement := paymentplan.Classify(result, date(2024, 6, 1), date(2024, 1, 1))

	assert.True(t, statement.Summary.MonthlyVelocity.IsZero())
	assert.Nil(t, statement.Summary.MonthsToComplete)
}

func TestClassify_FullyPaidPlan(t *testing.T) {
	payments := []domain.PaymentRecord{
		payment("p1", "140000", date(2024, 1, 10)),
	}
	result := paymentplan.Allocate(twoDues(), payments)
	statement := paymentplan.Classify(result, date(2024, 6, 1), date(2024, 1, 1))

	for _, due := range statement.Dues {
		assert.Equal(t, domain.DuePaid, due.Status)
	}
	assert.Nil(t, statement.Summary.NextDue)
	assert.True(t, statement.Summary.TotalPending.IsZero())
	assert.True(t, statement.Summary.ProgressPercent.Equal(dec("100")))
	require.NotNil(t, statement.Summary.MonthsToComplete)
	assert.Equal(t, 0, *statement.Summary.MonthsToComplete)
}

func TestClassify_EmptySchedule(t *testing.T) {
	statement := paymentplan.Classify(domain.AllocationResult{}, date(2024, 1, 1), date(2024, 1, 1))

	assert.Empty(t, statement.Dues)
	assert.True(t, statement.Summary.ProgressPercent.IsZero())
	assert.Nil(t, statement.Summary.NextDue)
	assert.Nil(t, statement.Summary.MonthsToComplete)
}

func TestClassify_Idempotence(t *testing.T) {
	payments := []domain.PaymentRecord{
		payment("p1", "50000", date(2024, 2, 5)),
	}
	result := paymentplan.Allocate(twoDues(), payments)

	first := paymentplan.Classify(result, date(2024, 3, 1), date(2024, 1, 1))
	second := paymentplan.Classify(result, date(2024, 3, 1), date(2024, 1, 1))
	assert.Equal(t, first, second)
}
