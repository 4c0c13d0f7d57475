package budget

import (
	"time"

	"monetra/internal/models"
)

// unknownName is displayed when neither a group nor a category name is
// available for a budget.
const unknownName = "Unknown"

// Enriched is a budget definition augmented with computed spend, status,
// and display fields. It is derived on every read and never persisted.
type Enriched struct {
	models.Budget
	DisplayName string  `json:"display_name"`
	ActualSpend int64   `json:"actual_spend"`
	Percentage  float64 `json:"percentage"`
	Status      Status  `json:"status"`
	Remaining   int64   `json:"remaining"`
	OverBudget  int64   `json:"over_budget"`
}

// Assemble enriches each budget definition with the spend aggregated from
// txns over the month containing period. The input order of definitions is
// preserved; consumers that want a ranking sort the result themselves.
//
// A malformed definition never fails the batch: it aggregates zero spend
// and classifies as ok, so one corrupt row cannot take down a dashboard.
// Given identical inputs the output is identical; callers may recompute
// freely.
func Assemble(definitions []models.Budget, txns []models.Transaction, period time.Time) []Enriched {
	start, end := MonthBounds(period)

	enriched := make([]Enriched, 0, len(definitions))
	for i := range definitions {
		def := &definitions[i]

		spend := AggregateSpend(def, txns, start, end)
		percentage, status := Classify(spend, def.Amount)

		e := Enriched{
			Budget:      *def,
			DisplayName: displayName(def),
			ActualSpend: spend,
			Percentage:  percentage,
			Status:      status,
		}
		if def.Amount > spend {
			e.Remaining = def.Amount - spend
		}
		if spend > def.Amount {
			e.OverBudget = spend - def.Amount
		}

		enriched = append(enriched, e)
	}
	return enriched
}

// displayName picks the group name for grouped budgets, the category name
// otherwise, and falls back to "Unknown" when the relation was not loaded.
func displayName(def *models.Budget) string {
	if def.GroupID != nil && def.Group != nil && def.Group.Name != "" {
		return def.Group.Name
	}
	if def.Category != nil && def.Category.Name != "" {
		return def.Category.Name
	}
	return unknownName
}
