// Package paymentplan holds the pure payment-plan engine: schedule
// generation, payment allocation and due classification. Every function is
// side-effect free and deterministic; callers fetch records, the engine only
// computes. Amounts are rounded to 2 decimal places at computation
// boundaries, with a 1-cent epsilon for equality in invariants.
package paymentplan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
)

// CentEpsilon is the standard tolerance for monetary equality comparisons.
var CentEpsilon = decimal.New(1, -2)

// settlementGraceDays is the fallback gap between the last installment and a
// settlement whose date was not specified.
const settlementGraceDays = 30

// ConfigError reports an invalid plan configuration. It is the only failure
// the engine produces; no partial schedule ever accompanies it.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid plan configuration: " + e.Reason
}

// Unwrap lets callers classify a ConfigError with errors.Is(err, apperrors.ErrValidation).
func (e *ConfigError) Unwrap() error {
	return apperrors.ErrValidation
}

// Generate turns a plan configuration into an ordered schedule of dues:
// the down payment (sequence 0) when its amount is positive, one installment
// per month starting one month after startDate, and the final settlement
// last. The per-installment amount is the installment-bearing principal
// divided by the count and rounded to 2 decimals; the last installment
// absorbs the rounding remainder so the schedule sums exactly to the total.
func Generate(cfg domain.PlanConfig, startDate time.Time) ([]domain.ScheduledDue, error) {
	if err := validateConfig(cfg, startDate); err != nil {
		return nil, err
	}

	startDate = DateOnly(startDate)
	schedule := make([]domain.ScheduledDue, 0, cfg.InstallmentCount+2)
	remaining := cfg.TotalAmount.Round(2)

	if cfg.DownPayment.Amount.IsPositive() {
		schedule = append(schedule, domain.ScheduledDue{
			Sequence: 0,
			DueDate:  DateOnly(cfg.DownPayment.Date),
			Amount:   cfg.DownPayment.Amount.Round(2),
			Kind:     domain.KindDownPayment,
			Label:    "Down payment",
		})
		remaining = remaining.Sub(cfg.DownPayment.Amount.Round(2))
	}

	amountForInstallments := remaining
	if cfg.FinalSettlement != nil {
		amountForInstallments = remaining.Sub(cfg.FinalSettlement.Amount.Round(2))
	}
	if amountForInstallments.IsNegative() {
		return nil, &ConfigError{Reason: "down payment and settlement exceed the total amount"}
	}
	if cfg.InstallmentCount == 0 && amountForInstallments.Abs().GreaterThan(CentEpsilon) {
		return nil, &ConfigError{Reason: "plan without installments does not sum to the total amount"}
	}

	lastDueDate := startDate
	if cfg.InstallmentCount > 0 {
		n := int64(cfg.InstallmentCount)
		perInstallment := amountForInstallments.Div(decimal.NewFromInt(n)).Round(2)
		lastInstallment := amountForInstallments.Sub(perInstallment.Mul(decimal.NewFromInt(n - 1)))
		// Sub-cent per-installment amounts either round to zero or, when the
		// division rounds up, leave the remainder-absorbing last installment
		// negative. Neither is a schedulable due.
		if !perInstallment.IsPositive() || !lastInstallment.IsPositive() {
			return nil, &ConfigError{Reason: "installment count is too high for the amount to be financed"}
		}

		for i := 1; i <= cfg.InstallmentCount; i++ {
			amount := perInstallment
			if i == cfg.InstallmentCount {
				amount = lastInstallment
			}
			dueDate := AddCalendarMonths(startDate, i)
			schedule = append(schedule, domain.ScheduledDue{
				Sequence: i,
				DueDate:  dueDate,
				Amount:   amount,
				Kind:     domain.KindInstallment,
				Label:    fmt.Sprintf("Installment %d of %d", i, cfg.InstallmentCount),
			})
			lastDueDate = dueDate
		}
	}

	if cfg.FinalSettlement != nil {
		settlementDate := DateOnly(cfg.FinalSettlement.Date)
		if cfg.FinalSettlement.Date.IsZero() {
			settlementDate = lastDueDate.AddDate(0, 0, settlementGraceDays)
		}
		schedule = append(schedule, domain.ScheduledDue{
			Sequence: cfg.InstallmentCount + 1,
			DueDate:  settlementDate,
			Amount:   cfg.FinalSettlement.Amount.Round(2),
			Kind:     domain.KindSettlement,
			Label:    "Final settlement",
		})
	}

	return schedule, nil
}

func validateConfig(cfg domain.PlanConfig, startDate time.Time) error {
	if !cfg.TotalAmount.IsPositive() {
		return &ConfigError{Reason: "total amount must be positive"}
	}
	if cfg.InstallmentCount < 0 {
		return &ConfigError{Reason: "installment count must not be negative"}
	}
	if cfg.DownPayment.Amount.IsNegative() {
		return &ConfigError{Reason: "down payment must not be negative"}
	}
	if cfg.DownPayment.Amount.GreaterThan(cfg.TotalAmount) {
		return &ConfigError{Reason: "down payment exceeds the total amount"}
	}
	if cfg.DownPayment.Amount.IsPositive() && cfg.DownPayment.Date.IsZero() {
		return &ConfigError{Reason: "down payment date is required"}
	}
	if cfg.InstallmentDueDay != 0 && (cfg.InstallmentDueDay < 1 || cfg.InstallmentDueDay > 31) {
		return &ConfigError{Reason: "installment due day must be between 1 and 31"}
	}
	if cfg.InstallmentCount > 0 && startDate.IsZero() {
		return &ConfigError{Reason: "start date is required when the plan has installments"}
	}
	if cfg.FinalSettlement != nil {
		if !cfg.FinalSettlement.Amount.IsPositive() {
			return &ConfigError{Reason: "final settlement amount must be positive"}
		}
		if cfg.FinalSettlement.Date.IsZero() && cfg.InstallmentCount == 0 {
			return &ConfigError{Reason: "final settlement date is required when the plan has no installments"}
		}
	}
	return nil
}
