package budget

import (
	"time"

	"monetra/internal/models"
)

// AggregateSpend sums the matching expense transactions for one budget
// definition within [start, end], both bounds inclusive. Amounts are summed
// as absolute values; expenses are magnitudes here, and a stray negative
// from an upstream import must not cancel out real spend. An empty match
// set yields 0.
func AggregateSpend(def *models.Budget, txns []models.Transaction, start, end time.Time) int64 {
	var total int64
	for i := range txns {
		t := &txns[i]
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		if !Matches(def, t) {
			continue
		}
		amount := t.Amount
		if amount < 0 {
			amount = -amount
		}
		total += amount
	}
	return total
}
