package services

import (
	"time"

	"gorm.io/gorm"

	"monetra/internal/budget"
	"monetra/internal/models"
	"monetra/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name, description, currency string, accountType models.AccountType, initialBalance int64) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID, name, description string) (*models.Account, error)
	ApplyToBalance(tx *gorm.DB, account *models.Account, transactionType models.TransactionType, amount int64) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, color string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, description, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// GroupServicer defines the contract for category-group business logic.
type GroupServicer interface {
	CreateGroup(userID, name, description string, categoryIDs []string) (*models.CategoryGroup, error)
	GetUserGroups(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.CategoryGroup], error)
	GetGroupByID(userID, groupID string) (*models.CategoryGroup, error)
	UpdateGroup(userID, groupID, name, description string) (*models.CategoryGroup, error)
	SetGroupCategories(userID, groupID string, categoryIDs []string) (*models.CategoryGroup, error)
	DeleteGroup(userID, groupID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
	MinAmount  *int64
	MaxAmount  *int64
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, accountID string, categoryID *string, transactionType models.TransactionType, amount int64, description string, date time.Time) (*models.Transaction, error)
	CreateTransfer(userID, fromAccountID, toAccountID string, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetAccountTransactions(userID, accountID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetServicer defines the contract for budget-related business logic.
// GetBudgetOverview is the single source of enriched budget data; every
// surface that shows spend, percentage, or status goes through it.
type BudgetServicer interface {
	CreateBudget(userID string, categoryID, groupID *string, period time.Time, amount int64, note string) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, period *time.Time) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	GetBudgetOverview(userID string, period time.Time) ([]budget.Enriched, error)
	UpdateBudget(userID, budgetID string, amount *int64, note *string) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// MonthlyReport is the reports-view payload: the full enriched budget list
// ranked most-consumed first, plus month-level income/expense totals.
type MonthlyReport struct {
	Period       time.Time         `json:"period"`
	Budgets      []budget.Enriched `json:"budgets"`
	Summary      budget.Summary    `json:"summary"`
	TotalIncome  int64             `json:"total_income"`
	TotalExpense int64             `json:"total_expense"`
}

// DashboardServicer defines the contract for the dashboard and reports
// surfaces. Both are projections over the budget overview.
type DashboardServicer interface {
	GetBudgetSummary(userID string, period time.Time) (*budget.Summary, error)
	GetNeedsAttention(userID string, period time.Time, limit int) ([]budget.Enriched, error)
	GetMonthlyReport(userID string, period time.Time) (*MonthlyReport, error)
	InvalidateUser(userID string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
