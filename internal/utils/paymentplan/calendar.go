package paymentplan

import "time"

// DateOnly strips any time-of-day component, keeping the calendar date in UTC.
// Schedule and reconciliation math works on whole days only.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddCalendarMonths adds n calendar months to a date, clamping the day to the
// last valid day of the target month (Jan 31 + 1 month -> Feb 28/29).
func AddCalendarMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, time.UTC)
}

// MonthsElapsed counts whole calendar months between two dates, never below
// zero. A partially elapsed month does not count.
func MonthsElapsed(from, to time.Time) int {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
