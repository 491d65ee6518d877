package paymentplan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fintera/finplan-backend/internal/utils/paymentplan"
)

func TestAddCalendarMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2024, 1, 15), 1, date(2024, 2, 15)},
		{"jan 31 clamps to leap feb", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"jan 31 clamps to non-leap feb", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"may 31 clamps to june 30", date(2024, 5, 31), 1, date(2024, 6, 30)},
		{"year rollover", date(2024, 11, 30), 3, date(2025, 2, 28)},
		{"many months", date(2024, 1, 31), 13, date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentplan.AddCalendarMonths(tt.start, tt.months))
		})
	}
}

func TestMonthsElapsed(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", date(2024, 1, 1), date(2024, 1, 1), 0},
		{"under a month", date(2024, 1, 1), date(2024, 1, 31), 0},
		{"exactly a month", date(2024, 1, 1), date(2024, 2, 1), 1},
		{"partial second month", date(2024, 1, 15), date(2024, 2, 14), 0},
		{"across a year", date(2023, 6, 10), date(2024, 6, 10), 12},
		{"to before from", date(2024, 5, 1), date(2024, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentplan.MonthsElapsed(tt.from, tt.to))
		})
	}
}
