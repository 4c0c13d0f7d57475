package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestDashboardFlow_SummaryAndAttention(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dashboard@test.com", "password123")

	foodID := app.createCategory(t, token, "Food", "expense")
	rentID := app.createCategory(t, token, "Rent", "expense")
	accountID := app.createCashAccount(t, token, "Checking", 1000000)

	for catID, amount := range map[string]int64{foodID: 50000, rentID: 100000} {
		rec := app.request("POST", "/api/v1/budgets",
			fmt.Sprintf(`{"category_id":%q,"period":%q,"amount":%d}`, catID, currentPeriod(), amount), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	now := time.Now().UTC()
	// Food blows its budget (120%), rent stays on track (40%).
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"type":"expense","amount":60000,"category_id":%q,"date":%q}`,
			accountID, foodID, now.Format(time.RFC3339)), token)
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"type":"expense","amount":40000,"category_id":%q,"date":%q}`,
			accountID, rentID, now.Format(time.RFC3339)), token)

	// Summary totals and buckets
	rec := app.request("GET", "/api/v1/dashboard/summary?period="+currentPeriod(), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_budgeted"].(float64) != 150000 {
		t.Errorf("expected total_budgeted 150000, got %.0f", summary["total_budgeted"].(float64))
	}
	if summary["total_spent"].(float64) != 100000 {
		t.Errorf("expected total_spent 100000, got %.0f", summary["total_spent"].(float64))
	}
	if n := len(summary["over"].([]interface{})); n != 1 {
		t.Errorf("expected 1 over-budget entry, got %d", n)
	}
	if n := len(summary["on_track"].([]interface{})); n != 1 {
		t.Errorf("expected 1 on-track entry, got %d", n)
	}

	// Attention list: worst offender first
	rec = app.request("GET", "/api/v1/dashboard/attention?period="+currentPeriod(), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	attention := parseJSON(t, rec)["budgets"].([]interface{})
	if len(attention) == 0 {
		t.Fatal("expected at least one budget needing attention")
	}
	first := attention[0].(map[string]interface{})
	if first["display_name"] != "Food" {
		t.Errorf("expected Food first in attention list, got %v", first["display_name"])
	}
	if first["status"] != "over" {
		t.Errorf("expected Food over budget, got %v", first["status"])
	}
}

func TestDashboardFlow_SummaryRefreshesAfterSpend(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dashcache@test.com", "password123")

	categoryID := app.createCategory(t, token, "Hobbies", "expense")
	accountID := app.createCashAccount(t, token, "Cash", 100000)

	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%q,"period":%q,"amount":10000}`, categoryID, currentPeriod()), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Warm the cache with a zero-spend read
	rec = app.request("GET", "/api/v1/dashboard/summary?period="+currentPeriod(), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_spent"].(float64) != 0 {
		t.Fatalf("expected 0 spent before transactions, got %.0f", summary["total_spent"].(float64))
	}

	// Recording a transaction invalidates the cached summary
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"type":"expense","amount":4000,"category_id":%q,"date":%q}`,
			accountID, categoryID, time.Now().UTC().Format(time.RFC3339)), token)

	rec = app.request("GET", "/api/v1/dashboard/summary?period="+currentPeriod(), "", token)
	summary = parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_spent"].(float64) != 4000 {
		t.Errorf("expected 4000 spent after transaction, got %.0f", summary["total_spent"].(float64))
	}
}

func TestDashboardFlow_MonthlyReport(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "report@test.com", "password123")

	expenseID := app.createCategory(t, token, "Groceries", "expense")
	incomeID := app.createCategory(t, token, "Salary", "income")
	accountID := app.createCashAccount(t, token, "Checking", 0)

	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%q,"period":%q,"amount":50000}`, expenseID, currentPeriod()), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	now := time.Now().UTC()
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"type":"income","amount":300000,"category_id":%q,"date":%q}`,
			accountID, incomeID, now.Format(time.RFC3339)), token)
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"account_id":%q,"type":"expense","amount":55000,"category_id":%q,"date":%q}`,
			accountID, expenseID, now.Format(time.RFC3339)), token)

	rec = app.request("GET", "/api/v1/reports/budgets?period="+currentPeriod(), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)["report"].(map[string]interface{})
	if report["total_income"].(float64) != 300000 {
		t.Errorf("expected total_income 300000, got %.0f", report["total_income"].(float64))
	}
	if report["total_expense"].(float64) != 55000 {
		t.Errorf("expected total_expense 55000, got %.0f", report["total_expense"].(float64))
	}
	budgets := report["budgets"].([]interface{})
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget in report, got %d", len(budgets))
	}
	entry := budgets[0].(map[string]interface{})
	if entry["status"] != "over" {
		t.Errorf("expected over status at 110%%, got %v", entry["status"])
	}
}
