package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"monetra/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates a cash account with the given balance (in cents).
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Account %d", nextID()),
		Type:     models.AccountTypeCash,
		Balance:  balance,
		Currency: "USD",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGroup creates a category group linked to the given categories.
func CreateTestGroup(t *testing.T, db *gorm.DB, userID string, categories ...*models.Category) *models.CategoryGroup {
	t.Helper()

	group := &models.CategoryGroup{
		UserID: userID,
		Name:   fmt.Sprintf("Test Group %d", nextID()),
	}
	for _, cat := range categories {
		group.Categories = append(group.Categories, *cat)
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateTestExpense creates an expense transaction for the given category and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, accountID string, categoryID *string, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       models.TransactionTypeExpense,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return txn
}

// CreateTestBudget creates a budget for the given category and month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string, period time.Time, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: &categoryID,
		Period:     time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC),
		Amount:     amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGroupBudget creates a budget targeting a category group.
func CreateTestGroupBudget(t *testing.T, db *gorm.DB, userID, groupID string, period time.Time, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:  userID,
		GroupID: &groupID,
		Period:  time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC),
		Amount:  amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test group budget: %v", err)
	}
	return budget
}
