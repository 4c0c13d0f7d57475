// Package budget implements the budget status and spend-aggregation engine.
//
// Everything in this package is a pure function over in-memory budget
// definitions and transactions: no database access, no clocks, no shared
// state. The budgets endpoints, the dashboard summary, and the monthly
// report all consume the same Assemble output, so percentage and status
// can never disagree between surfaces.
package budget

import "time"

// Normalize truncates a date to the first day of its month at UTC
// midnight, the canonical form a budget period is stored in. The input's
// location is discarded so a local-time read and a stored UTC period
// always land on the same key.
func Normalize(period time.Time) time.Time {
	period = period.UTC()
	return time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthBounds returns the first and last instant of the month containing
// period, in UTC. Both bounds are inclusive for spend aggregation.
func MonthBounds(period time.Time) (start, end time.Time) {
	start = Normalize(period)
	lastDay := start.AddDate(0, 1, -1)
	end = time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 999999999, time.UTC)
	return start, end
}
