package budget

import (
	"reflect"
	"testing"
	"time"

	"monetra/internal/models"
)

func namedCategoryBudget(categoryID, categoryName string, amount int64) models.Budget {
	def := categoryBudget(categoryID, amount)
	cat := &models.Category{Name: categoryName, Type: models.CategoryTypeExpense}
	cat.ID = categoryID
	def.Category = cat
	return def
}

func TestAssemble(t *testing.T) {
	period := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	midMonth := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

	t.Run("under_budget", func(t *testing.T) {
		defs := []models.Budget{namedCategoryBudget("cat-groceries", "Groceries", 50000)}
		txns := []models.Transaction{datedExpense("cat-groceries", 45000, midMonth)}

		got := Assemble(defs, txns, period)
		if len(got) != 1 {
			t.Fatalf("expected 1 enriched budget, got %d", len(got))
		}
		e := got[0]
		if e.ActualSpend != 45000 {
			t.Errorf("expected spend 45000, got %d", e.ActualSpend)
		}
		if e.Percentage != 90 {
			t.Errorf("expected percentage 90, got %v", e.Percentage)
		}
		if e.Status != StatusOK {
			t.Errorf("expected status ok, got %s", e.Status)
		}
		if e.Remaining != 5000 {
			t.Errorf("expected remaining 5000, got %d", e.Remaining)
		}
		if e.OverBudget != 0 {
			t.Errorf("expected over_budget 0, got %d", e.OverBudget)
		}
		if e.DisplayName != "Groceries" {
			t.Errorf("expected display name Groceries, got %s", e.DisplayName)
		}
	})

	t.Run("over_budget", func(t *testing.T) {
		defs := []models.Budget{namedCategoryBudget("cat-groceries", "Groceries", 50000)}
		txns := []models.Transaction{datedExpense("cat-groceries", 55000, midMonth)}

		e := Assemble(defs, txns, period)[0]
		if e.Percentage != 110 {
			t.Errorf("expected percentage 110, got %v", e.Percentage)
		}
		if e.Status != StatusOver {
			t.Errorf("expected status over, got %s", e.Status)
		}
		if e.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", e.Remaining)
		}
		if e.OverBudget != 5000 {
			t.Errorf("expected over_budget 5000, got %d", e.OverBudget)
		}
	})

	t.Run("grouped_budget_warning", func(t *testing.T) {
		defs := []models.Budget{groupBudget("grp-food", "Food", 60000, "cat-groceries", "cat-restaurants")}
		txns := []models.Transaction{
			datedExpense("cat-groceries", 30000, midMonth),
			datedExpense("cat-restaurants", 25000, midMonth),
			datedExpense("cat-other", 100000, midMonth),
		}

		e := Assemble(defs, txns, period)[0]
		if e.ActualSpend != 55000 {
			t.Errorf("expected spend 55000, got %d", e.ActualSpend)
		}
		if e.Status != StatusWarning {
			t.Errorf("expected status warning at %.2f%%, got %s", e.Percentage, e.Status)
		}
		if e.DisplayName != "Food" {
			t.Errorf("expected display name Food, got %s", e.DisplayName)
		}
	})

	t.Run("zero_amount_budget_stays_ok", func(t *testing.T) {
		defs := []models.Budget{namedCategoryBudget("cat-groceries", "Groceries", 0)}
		txns := []models.Transaction{datedExpense("cat-groceries", 12345, midMonth)}

		e := Assemble(defs, txns, period)[0]
		if e.Percentage != 0 {
			t.Errorf("expected percentage 0 for zero-amount budget, got %v", e.Percentage)
		}
		if e.Status != StatusOK {
			t.Errorf("expected status ok for zero-amount budget, got %s", e.Status)
		}
		if e.OverBudget != 12345 {
			t.Errorf("expected over_budget 12345, got %d", e.OverBudget)
		}
	})

	t.Run("malformed_definition_degrades", func(t *testing.T) {
		malformed := models.Budget{Amount: 50000} // neither scope set
		defs := []models.Budget{
			namedCategoryBudget("cat-groceries", "Groceries", 50000),
			malformed,
		}
		txns := []models.Transaction{datedExpense("cat-groceries", 1000, midMonth)}

		got := Assemble(defs, txns, period)
		if len(got) != 2 {
			t.Fatalf("one malformed record must not fail the batch; got %d results", len(got))
		}
		bad := got[1]
		if bad.ActualSpend != 0 {
			t.Errorf("expected malformed budget to aggregate 0 spend, got %d", bad.ActualSpend)
		}
		if bad.Status != StatusOK {
			t.Errorf("expected malformed budget status ok, got %s", bad.Status)
		}
		if bad.DisplayName != "Unknown" {
			t.Errorf("expected display name Unknown, got %s", bad.DisplayName)
		}
	})

	t.Run("preserves_input_order", func(t *testing.T) {
		defs := []models.Budget{
			namedCategoryBudget("cat-a", "Alpha", 100),
			namedCategoryBudget("cat-b", "Beta", 100),
			namedCategoryBudget("cat-c", "Gamma", 100),
		}
		txns := []models.Transaction{
			datedExpense("cat-b", 500, midMonth), // most over-budget, still second
		}

		got := Assemble(defs, txns, period)
		names := []string{got[0].DisplayName, got[1].DisplayName, got[2].DisplayName}
		if !reflect.DeepEqual(names, []string{"Alpha", "Beta", "Gamma"}) {
			t.Errorf("expected input order preserved, got %v", names)
		}
	})

	t.Run("deterministic_and_idempotent", func(t *testing.T) {
		defs := []models.Budget{
			namedCategoryBudget("cat-groceries", "Groceries", 50000),
			groupBudget("grp-food", "Food", 60000, "cat-groceries", "cat-restaurants"),
		}
		txns := []models.Transaction{
			datedExpense("cat-groceries", 30000, midMonth),
			datedExpense("cat-restaurants", 25000, midMonth),
		}

		first := Assemble(defs, txns, period)
		second := Assemble(defs, txns, period)
		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical output for identical inputs")
		}
	})

	t.Run("remaining_and_over_budget_complementary", func(t *testing.T) {
		defs := []models.Budget{
			namedCategoryBudget("cat-a", "Under", 10000),
			namedCategoryBudget("cat-b", "Exact", 10000),
			namedCategoryBudget("cat-c", "Over", 10000),
		}
		txns := []models.Transaction{
			datedExpense("cat-a", 4000, midMonth),
			datedExpense("cat-b", 10000, midMonth),
			datedExpense("cat-c", 16000, midMonth),
		}

		for _, e := range Assemble(defs, txns, period) {
			if e.ActualSpend == e.Amount {
				if e.Remaining != 0 || e.OverBudget != 0 {
					t.Errorf("%s: expected both 0 at exact spend, got remaining=%d over=%d",
						e.DisplayName, e.Remaining, e.OverBudget)
				}
				continue
			}
			if (e.Remaining > 0) == (e.OverBudget > 0) {
				t.Errorf("%s: exactly one of remaining/over_budget must be positive, got remaining=%d over=%d",
					e.DisplayName, e.Remaining, e.OverBudget)
			}
		}
	})
}
