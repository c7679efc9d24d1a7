package services

import (
	"testing"

	"duitku/internal/models"
	"duitku/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, "Groceries", 500, marchStart, false)
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", budget.Name)
		}
		if budget.Amount != 500 {
			t.Errorf("expected amount 500, got %f", budget.Amount)
		}
	})

	t.Run("duplicate_name_and_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "Groceries", 500, marchStart, false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, "Groceries", 300, marchStart, false)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("same_name_different_month_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "Groceries", 500, marchStart, false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, "Groceries", 500, marchStart.AddDate(0, 1, 0), false)
		testutil.AssertNoError(t, err)
	})

	t.Run("same_name_other_user_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user1.ID, "Groceries", 500, marchStart, false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user2.ID, "Groceries", 500, marchStart, false)
		testutil.AssertNoError(t, err)
	})
}

func TestCreateBudgetWithCategory(t *testing.T) {
	t.Run("creates_budget_and_link", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		basic := testutil.CreateTestBasicCategory(t, db)

		budget, err := svc.CreateBudgetWithCategory(user.ID, "Food", 400, marchStart, false, basic.ID)
		testutil.AssertNoError(t, err)

		var link models.BudgetBasicCategory
		if err := db.Where("budget_id = ?", budget.ID).First(&link).Error; err != nil {
			t.Fatalf("expected category link: %v", err)
		}
		if link.BasicCategoryID != basic.ID {
			t.Errorf("expected category %d, got %d", basic.ID, link.BasicCategoryID)
		}
		if link.Amount != 400 {
			t.Errorf("expected link amount 400, got %f", link.Amount)
		}
	})

	t.Run("duplicate_category_and_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		basic := testutil.CreateTestBasicCategory(t, db)

		_, err := svc.CreateBudgetWithCategory(user.ID, "Food", 400, marchStart, false, basic.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudgetWithCategory(user.ID, "Dining", 200, marchStart, false, basic.ID)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})
}

func TestAddBudgetCategories(t *testing.T) {
	t.Run("links_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		basic1 := testutil.CreateTestBasicCategory(t, db)
		basic2 := testutil.CreateTestBasicCategory(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 500, marchStart)

		err := svc.AddBudgetCategories(user.ID, []BudgetCategoryLink{
			{BudgetID: budget.ID, BasicCategoryID: basic1.ID, Amount: 300},
			{BudgetID: budget.ID, BasicCategoryID: basic2.ID, Amount: 200},
		})
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.BudgetBasicCategory{}).Where("budget_id = ?", budget.ID).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 links, got %d", count)
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.AddBudgetCategories(user.ID, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_budget_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		basic := testutil.CreateTestBasicCategory(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, 500, marchStart)

		err := svc.AddBudgetCategories(intruder.ID, []BudgetCategoryLink{
			{BudgetID: budget.ID, BasicCategoryID: basic.ID},
		})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		// Nothing is linked when the transaction rolls back.
		var count int64
		db.Model(&models.BudgetBasicCategory{}).Where("budget_id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected rollback to leave no links, got %d", count)
		}
	})
}

func TestGetUserBudgets(t *testing.T) {
	t.Run("returns_user_budgets_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, 500, marchStart)
		testutil.CreateTestBudget(t, db, other.ID, 300, marchStart)

		budgets, err := svc.GetUserBudgets(user.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		if budgets[0].UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, budgets[0].UserID)
		}
	})

	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, 500, marchStart)
		testutil.CreateTestBudget(t, db, user.ID, 300, marchStart.AddDate(0, 1, 0))

		budgets, err := svc.GetUserBudgets(user.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(budgets))
		}
		if !budgets[0].StartDate.After(budgets[1].StartDate) {
			t.Error("expected budgets ordered newest first")
		}
	})

	t.Run("none_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetUserBudgets(user.ID)
		testutil.AssertAppError(t, err, "NO_BUDGETS_FOUND")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 500, marchStart)

		amount := 750.0
		updated, err := svc.UpdateBudget(user.ID, budget.ID, "", &amount, nil)
		testutil.AssertNoError(t, err)
		if updated.Amount != 750 {
			t.Errorf("expected amount 750, got %f", updated.Amount)
		}

		var stored models.Budget
		db.First(&stored, budget.ID)
		if stored.Name != budget.Name {
			t.Errorf("name should be unchanged, got %s", stored.Name)
		}
		if stored.Amount != 750 {
			t.Errorf("expected stored amount 750, got %f", stored.Amount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateBudget(user.ID, 9999, "New Name", nil, nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("foreign_budget_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, 500, marchStart)

		_, err := svc.UpdateBudget(intruder.ID, budget.ID, "Hijacked", nil, nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("removes_budget_and_links", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		basic := testutil.CreateTestBasicCategory(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 500, marchStart)
		testutil.LinkBudgetBasicCategory(t, db, budget.ID, basic.ID)

		err := svc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Budget{}).Where("id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("budget should be deleted")
		}
		db.Model(&models.BudgetBasicCategory{}).Where("budget_id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("category links should be deleted")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteBudget(user.ID, 9999)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
