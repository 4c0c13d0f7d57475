package budget

import (
	"testing"
	"time"

	"monetra/internal/models"
)

func enrichedFixture(t *testing.T) []Enriched {
	t.Helper()

	period := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	midMonth := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)

	defs := []models.Budget{
		namedCategoryBudget("cat-rent", "Rent", 100000),      // 100% -> warning
		namedCategoryBudget("cat-food", "Food", 50000),       // 120% -> over
		namedCategoryBudget("cat-fun", "Fun", 20000),         // 25%  -> ok
		namedCategoryBudget("cat-travel", "Travel", 40000),   // 0%   -> ok
	}
	txns := []models.Transaction{
		datedExpense("cat-rent", 100000, midMonth),
		datedExpense("cat-food", 60000, midMonth),
		datedExpense("cat-fun", 5000, midMonth),
	}
	return Assemble(defs, txns, period)
}

func TestSummarize(t *testing.T) {
	s := Summarize(enrichedFixture(t))

	if s.TotalBudgeted != 210000 {
		t.Errorf("expected total budgeted 210000, got %d", s.TotalBudgeted)
	}
	if s.TotalSpent != 165000 {
		t.Errorf("expected total spent 165000, got %d", s.TotalSpent)
	}
	if s.TotalRemaining != 45000 {
		t.Errorf("expected total remaining 45000, got %d", s.TotalRemaining)
	}
	wantPct := float64(165000) / float64(210000) * 100
	if s.OverallPercentage != wantPct {
		t.Errorf("expected overall percentage %v, got %v", wantPct, s.OverallPercentage)
	}

	if len(s.Over) != 1 || s.Over[0].DisplayName != "Food" {
		t.Errorf("expected over bucket [Food], got %v", bucketNames(s.Over))
	}
	if len(s.Warning) != 1 || s.Warning[0].DisplayName != "Rent" {
		t.Errorf("expected warning bucket [Rent], got %v", bucketNames(s.Warning))
	}
	if len(s.OnTrack) != 2 {
		t.Errorf("expected 2 on-track budgets, got %v", bucketNames(s.OnTrack))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalBudgeted != 0 || s.TotalSpent != 0 || s.TotalRemaining != 0 {
		t.Errorf("expected zero totals, got %+v", s)
	}
	if s.OverallPercentage != 0 {
		t.Errorf("expected 0%% overall for empty list, got %v", s.OverallPercentage)
	}
	if s.Over == nil || s.Warning == nil || s.OnTrack == nil {
		t.Error("expected empty, non-nil buckets")
	}
}

func TestSortByPercentage(t *testing.T) {
	list := enrichedFixture(t)
	sorted := SortByPercentage(list)

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Percentage < sorted[i].Percentage {
			t.Fatalf("expected descending percentages, got %v before %v",
				sorted[i-1].Percentage, sorted[i].Percentage)
		}
	}
	if sorted[0].DisplayName != "Food" {
		t.Errorf("expected Food (most consumed) first, got %s", sorted[0].DisplayName)
	}

	// Input must not be reordered.
	if list[0].DisplayName != "Rent" {
		t.Errorf("expected input list untouched, got %s first", list[0].DisplayName)
	}
}

func TestNeedsAttention(t *testing.T) {
	list := enrichedFixture(t)

	top := NeedsAttention(list, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(top))
	}
	if top[0].DisplayName != "Food" || top[1].DisplayName != "Rent" {
		t.Errorf("expected [Food, Rent], got %v", bucketNames(top))
	}

	all := NeedsAttention(list, 10)
	if len(all) != len(list) {
		t.Errorf("expected full list when n exceeds length, got %d", len(all))
	}

	if got := NeedsAttention(list, 0); len(got) != 0 {
		t.Errorf("expected empty list for n=0, got %d", len(got))
	}
	if got := NeedsAttention(list, -3); len(got) != 0 {
		t.Errorf("expected empty list for negative n, got %d", len(got))
	}
}

func bucketNames(list []Enriched) []string {
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.DisplayName)
	}
	return names
}
