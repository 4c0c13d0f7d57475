package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"monetra/internal/budget"
	apperrors "monetra/internal/errors"
	"monetra/internal/models"
)

// dashboardService serves the dashboard and reports surfaces. Both are
// projections over the budget overview; the enriched list is cached per
// user and month so a dashboard poll does not recompute spend on every
// request. Invalidation is driven by transaction and budget events.
type dashboardService struct {
	db            *gorm.DB
	budgetService BudgetServicer

	mu    sync.RWMutex
	cache map[string]map[time.Time][]budget.Enriched
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, budgetService BudgetServicer) DashboardServicer {
	return &dashboardService{
		db:            db,
		budgetService: budgetService,
		cache:         make(map[string]map[time.Time][]budget.Enriched),
	}
}

// overview returns the enriched budget list for the month, computing and
// caching it on a miss.
func (s *dashboardService) overview(userID string, period time.Time) ([]budget.Enriched, error) {
	period = budget.Normalize(period)

	s.mu.RLock()
	if byPeriod, ok := s.cache[userID]; ok {
		if enriched, ok := byPeriod[period]; ok {
			s.mu.RUnlock()
			return enriched, nil
		}
	}
	s.mu.RUnlock()

	enriched, err := s.budgetService.GetBudgetOverview(userID, period)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cache[userID] == nil {
		s.cache[userID] = make(map[time.Time][]budget.Enriched)
	}
	s.cache[userID][period] = enriched
	s.mu.Unlock()

	return enriched, nil
}

// GetBudgetSummary returns month-level totals and status buckets.
func (s *dashboardService) GetBudgetSummary(userID string, period time.Time) (*budget.Summary, error) {
	enriched, err := s.overview(userID, period)
	if err != nil {
		return nil, err
	}
	summary := budget.Summarize(enriched)
	return &summary, nil
}

// GetNeedsAttention returns the budgets closest to or past their limit,
// most consumed first.
func (s *dashboardService) GetNeedsAttention(userID string, period time.Time, limit int) ([]budget.Enriched, error) {
	enriched, err := s.overview(userID, period)
	if err != nil {
		return nil, err
	}
	return budget.NeedsAttention(enriched, limit), nil
}

// GetMonthlyReport returns the full reports-view payload: all budgets
// ranked by consumption plus month-level income and expense totals.
func (s *dashboardService) GetMonthlyReport(userID string, period time.Time) (*MonthlyReport, error) {
	period = budget.Normalize(period)

	enriched, err := s.overview(userID, period)
	if err != nil {
		return nil, err
	}

	start, end := budget.MonthBounds(period)

	totalIncome, err := s.sumTransactions(userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.sumTransactions(userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Period:       period,
		Budgets:      budget.SortByPercentage(enriched),
		Summary:      budget.Summarize(enriched),
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
	}, nil
}

// InvalidateUser drops every cached month for the user. Called whenever a
// transaction or budget changes; the next read recomputes.
func (s *dashboardService) InvalidateUser(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}

func (s *dashboardService) sumTransactions(userID string, transactionType models.TransactionType, start, end time.Time) (int64, error) {
	var total int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, transactionType, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
