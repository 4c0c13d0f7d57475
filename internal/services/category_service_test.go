package services

import (
	"testing"
	"time"

	"monetra/internal/models"
	"monetra/internal/pagination"
	"monetra/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "Groceries", models.CategoryTypeExpense, "weekly shop", "cart", "#4CAF50")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Type != models.CategoryTypeExpense {
			t.Errorf("expected expense type, got %s", cat.Type)
		}
	})

	t.Run("duplicate_name_same_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Groceries", models.CategoryTypeExpense, "", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Groceries", models.CategoryTypeExpense, "", "", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_type_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Other", models.CategoryTypeExpense, "", "", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Other", models.CategoryTypeIncome, "", "", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Bad", models.CategoryType("stocks"), "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("returns_user_categories_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeIncome)
		testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserCategories(user1.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 categories, got %d", result.TotalItems)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("removes_from_groups", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		groupSvc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		group := testutil.CreateTestGroup(t, db, user.ID, cat1, cat2)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat1.ID))

		reloaded, err := groupSvc.GetGroupByID(user.ID, group.ID)
		testutil.AssertNoError(t, err)
		if len(reloaded.Categories) != 1 {
			t.Errorf("expected 1 remaining member, got %d", len(reloaded.Categories))
		}
	})

	t.Run("transactions_keep_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID, 0)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		txn := testutil.CreateTestExpense(t, db, user.ID, account.ID, &cat.ID, 1000, time.Now())

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat.ID))

		var reloaded models.Transaction
		testutil.AssertNoError(t, db.Where("id = ?", txn.ID).First(&reloaded).Error)
		if reloaded.CategoryID == nil || *reloaded.CategoryID != cat.ID {
			t.Error("expected transaction to keep its category reference")
		}
	})
}

func TestGroupService(t *testing.T) {
	t.Run("create_requires_members", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGroup(user.ID, "Food", "", nil)
		testutil.AssertAppError(t, err, "EMPTY_GROUP")
	})

	t.Run("create_with_members", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		group, err := svc.CreateGroup(user.ID, "Food", "dining and delivery", []string{cat1.ID, cat2.ID})
		testutil.AssertNoError(t, err)

		if len(group.Categories) != 2 {
			t.Errorf("expected 2 members, got %d", len(group.Categories))
		}
	})

	t.Run("rejects_foreign_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		_, err := svc.CreateGroup(user1.ID, "Sneaky", "", []string{cat.ID})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("set_categories_replaces_membership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		group := testutil.CreateTestGroup(t, db, user.ID, cat1)

		updated, err := svc.SetGroupCategories(user.ID, group.ID, []string{cat2.ID})
		testutil.AssertNoError(t, err)

		if len(updated.Categories) != 1 || updated.Categories[0].ID != cat2.ID {
			t.Error("expected membership replaced with cat2")
		}
	})

	t.Run("delete_group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGroupService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		group := testutil.CreateTestGroup(t, db, user.ID, cat)

		testutil.AssertNoError(t, svc.DeleteGroup(user.ID, group.ID))

		_, err := svc.GetGroupByID(user.ID, group.ID)
		testutil.AssertAppError(t, err, "GROUP_NOT_FOUND")
	})
}
