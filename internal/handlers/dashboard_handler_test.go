package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"monetra/internal/budget"
	"monetra/internal/models"
	"monetra/internal/services"
)

type mockDashboardService struct {
	getBudgetSummaryFn  func(userID string, period time.Time) (*budget.Summary, error)
	getNeedsAttentionFn func(userID string, period time.Time, limit int) ([]budget.Enriched, error)
	getMonthlyReportFn  func(userID string, period time.Time) (*services.MonthlyReport, error)
}

func (m *mockDashboardService) GetBudgetSummary(userID string, period time.Time) (*budget.Summary, error) {
	if m.getBudgetSummaryFn != nil {
		return m.getBudgetSummaryFn(userID, period)
	}
	return &budget.Summary{}, nil
}

func (m *mockDashboardService) GetNeedsAttention(userID string, period time.Time, limit int) ([]budget.Enriched, error) {
	if m.getNeedsAttentionFn != nil {
		return m.getNeedsAttentionFn(userID, period, limit)
	}
	return []budget.Enriched{}, nil
}

func (m *mockDashboardService) GetMonthlyReport(userID string, period time.Time) (*services.MonthlyReport, error) {
	if m.getMonthlyReportFn != nil {
		return m.getMonthlyReportFn(userID, period)
	}
	return &services.MonthlyReport{}, nil
}

func (m *mockDashboardService) InvalidateUser(string) {}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/dashboard/summary", handler.GetBudgetSummary)
	auth.GET("/dashboard/attention", handler.GetNeedsAttention)
	auth.GET("/reports/budgets", handler.GetMonthlyReport)
	return r
}

func TestDashboardHandler_GetBudgetSummary(t *testing.T) {
	t.Run("returns 200 with summary", func(t *testing.T) {
		svc := &mockDashboardService{
			getBudgetSummaryFn: func(string, time.Time) (*budget.Summary, error) {
				return &budget.Summary{
					TotalBudgeted:     150000,
					TotalSpent:        130000,
					TotalRemaining:    20000,
					OverallPercentage: 86.67,
				}, nil
			},
		}
		handler := NewDashboardHandler(svc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/summary?period=2025-09", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary := result["summary"].(map[string]interface{})
		if summary["total_budgeted"].(float64) != 150000 {
			t.Errorf("expected total budgeted 150000, got %v", summary["total_budgeted"])
		}
	})

	t.Run("returns 400 on malformed period", func(t *testing.T) {
		handler := NewDashboardHandler(&mockDashboardService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/summary?period=bad", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetNeedsAttention(t *testing.T) {
	t.Run("passes default limit", func(t *testing.T) {
		var gotLimit int
		svc := &mockDashboardService{
			getNeedsAttentionFn: func(_ string, _ time.Time, limit int) ([]budget.Enriched, error) {
				gotLimit = limit
				return []budget.Enriched{
					{Budget: models.Budget{Base: models.Base{ID: testBudgetID}}, Percentage: 120, Status: budget.StatusOver},
				}, nil
			},
		}
		handler := NewDashboardHandler(svc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/attention", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotLimit != defaultAttentionLimit {
			t.Errorf("expected default limit %d, got %d", defaultAttentionLimit, gotLimit)
		}
	})

	t.Run("returns 400 on bad limit", func(t *testing.T) {
		handler := NewDashboardHandler(&mockDashboardService{})
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/dashboard/attention?limit=0", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetMonthlyReport(t *testing.T) {
	t.Run("returns 200 with report", func(t *testing.T) {
		svc := &mockDashboardService{
			getMonthlyReportFn: func(_ string, period time.Time) (*services.MonthlyReport, error) {
				return &services.MonthlyReport{
					Period:       period,
					TotalIncome:  300000,
					TotalExpense: 55000,
				}, nil
			},
		}
		handler := NewDashboardHandler(svc)
		r := setupDashboardRouter(handler)

		rec := doRequest(r, "GET", "/reports/budgets?period=2025-09", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		report := result["report"].(map[string]interface{})
		if report["total_income"].(float64) != 300000 {
			t.Errorf("expected income 300000, got %v", report["total_income"])
		}
	})
}
