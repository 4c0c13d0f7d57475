package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"monetra/internal/budget"
	apperrors "monetra/internal/errors"
	"monetra/internal/events"
	"monetra/internal/models"
	"monetra/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db  *gorm.DB
	bus *events.Bus
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, bus *events.Bus) BudgetServicer {
	return &budgetService{db: db, bus: bus}
}

// CreateBudget creates a monthly budget scoped to exactly one category or
// one category group. Period is normalized to the first day of its month;
// at most one budget per user, period, and scope target may exist.
func (s *budgetService) CreateBudget(userID string, categoryID, groupID *string, period time.Time, amount int64, note string) (*models.Budget, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	if (categoryID == nil) == (groupID == nil) {
		return nil, apperrors.ErrInvalidBudgetScope
	}

	if period.IsZero() {
		period = time.Now().UTC()
	}
	period = budget.Normalize(period)

	// Verify the scope target exists and belongs to the user
	if categoryID != nil {
		var count int64
		s.db.Model(&models.Category{}).Where("id = ? AND user_id = ?", *categoryID, userID).Count(&count)
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	} else {
		var group models.CategoryGroup
		if err := s.db.Preload("Categories").Where("id = ? AND user_id = ?", *groupID, userID).First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrGroupNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(group.Categories) == 0 {
			return nil, apperrors.ErrEmptyGroup
		}
	}

	// One budget per scope target per month
	dup := s.db.Model(&models.Budget{}).Where("user_id = ? AND period = ?", userID, period)
	if categoryID != nil {
		dup = dup.Where("category_id = ?", *categoryID)
	} else {
		dup = dup.Where("group_id = ?", *groupID)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	b := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		GroupID:    groupID,
		Period:     period,
		Amount:     amount,
		Note:       note,
	}

	if err := s.db.Create(b).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.bus.Publish(events.Event{Type: events.BudgetChanged, UserID: userID})

	return b, nil
}

// GetUserBudgets retrieves a paginated list of budget definitions for a
// user, optionally restricted to a single month.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest, period *time.Time) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if period != nil {
		base = base.Where("period = ?", budget.Normalize(*period))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Preload("Group.Categories").
		Order("period DESC, created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID retrieves a budget by ID for a specific user
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var b models.Budget
	if err := s.db.Preload("Category").
		Preload("Group.Categories").
		Where("id = ? AND user_id = ?", budgetID, userID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &b, nil
}

// GetBudgetOverview returns every budget for the month enriched with
// actual spend, percentage, and status. Definitions whose category or
// group has gone missing still appear, with zero spend and an ok status.
func (s *budgetService) GetBudgetOverview(userID string, period time.Time) ([]budget.Enriched, error) {
	period = budget.Normalize(period)

	var definitions []models.Budget
	if err := s.db.Preload("Category").
		Preload("Group.Categories").
		Where("user_id = ? AND period = ?", userID, period).
		Order("created_at ASC").
		Find(&definitions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := budget.MonthBounds(period)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
		userID, models.TransactionTypeExpense, start, end).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget.Assemble(definitions, transactions, period), nil
}

// UpdateBudget updates a budget's amount and note. The scope and period
// are immutable; re-targeting a budget is a delete followed by a create.
func (s *budgetService) UpdateBudget(userID, budgetID string, amount *int64, note *string) (*models.Budget, error) {
	b, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
		}
		updates["amount"] = *amount
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.bus.Publish(events.Event{Type: events.BudgetChanged, UserID: userID})
	}

	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget deletes a budget definition. Transactions are untouched.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	b, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(b).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.bus.Publish(events.Event{Type: events.BudgetChanged, UserID: userID})

	return nil
}
