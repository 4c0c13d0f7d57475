package budget

import "sort"

// Summary aggregates an enriched budget list into the overall totals
// and status buckets shown by the dashboard widget.
type Summary struct {
	TotalBudgeted     int64   `json:"total_budgeted"`
	TotalSpent        int64   `json:"total_spent"`
	TotalRemaining    int64   `json:"total_remaining"`
	OverallPercentage float64 `json:"overall_percentage"`

	Over    []Enriched `json:"over"`
	Warning []Enriched `json:"warning"`
	OnTrack []Enriched `json:"on_track"`
}

// Summarize buckets an enriched list by status and computes the overall
// totals. TotalRemaining can go negative when spending exceeds the overall
// budget.
func Summarize(list []Enriched) Summary {
	s := Summary{
		Over:    []Enriched{},
		Warning: []Enriched{},
		OnTrack: []Enriched{},
	}

	for _, e := range list {
		s.TotalBudgeted += e.Amount
		s.TotalSpent += e.ActualSpend

		switch e.Status {
		case StatusOver:
			s.Over = append(s.Over, e)
		case StatusWarning:
			s.Warning = append(s.Warning, e)
		default:
			s.OnTrack = append(s.OnTrack, e)
		}
	}

	s.TotalRemaining = s.TotalBudgeted - s.TotalSpent
	s.OverallPercentage, _ = Classify(s.TotalSpent, s.TotalBudgeted)
	return s
}

// SortByPercentage returns a copy of list ordered by descending consumed
// percentage. The sort is stable so equal budgets keep their input order.
func SortByPercentage(list []Enriched) []Enriched {
	sorted := make([]Enriched, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	return sorted
}

// NeedsAttention returns the n most-consumed budgets, most over-budget
// first. It is the single implementation of the ranking previously
// duplicated by every consumer.
func NeedsAttention(list []Enriched, n int) []Enriched {
	if n <= 0 {
		return []Enriched{}
	}
	sorted := SortByPercentage(list)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
