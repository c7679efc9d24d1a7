package services

import (
	"testing"

	"duitku/internal/models"
	"duitku/internal/pagination"
	"duitku/internal/testutil"
)

func TestCreateIncome(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)

		income, err := svc.CreateIncome(user.ID, 3500, midMarch, "Salary", models.PaymentTypeOnline, category.ID)
		testutil.AssertNoError(t, err)
		if income.ID == 0 {
			t.Fatal("expected non-zero income ID")
		}
		if income.Amount != 3500 {
			t.Errorf("expected amount 3500, got %f", income.Amount)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateIncome(user.ID, 3500, midMarch, "Salary", models.PaymentTypeOnline, 9999)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserIncomes(t *testing.T) {
	t.Run("paginated_newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)

		for i := 0; i < 3; i++ {
			testutil.CreateTestIncome(t, db, user.ID, category.ID, float64(100*(i+1)), midMarch.AddDate(0, 0, i))
		}

		result, err := svc.GetUserIncomes(user.ID, pagination.PageRequest{Page: 1, PageSize: 2})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 total incomes, got %d", result.TotalItems)
		}
		if len(result.Data) != 2 {
			t.Fatalf("expected 2 incomes on page 1, got %d", len(result.Data))
		}
		if !result.Data[0].Date.After(result.Data[1].Date) {
			t.Error("expected incomes ordered newest first")
		}
		if result.Data[0].IncomeCategory == nil {
			t.Error("expected income category to be preloaded")
		}
	})

	t.Run("other_users_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)

		testutil.CreateTestIncome(t, db, other.ID, category.ID, 900, midMarch)

		result, err := svc.GetUserIncomes(user.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no incomes, got %d", result.TotalItems)
		}
	})
}

func TestUpdateIncome(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)
		income := testutil.CreateTestIncome(t, db, user.ID, category.ID, 3500, midMarch)

		amount := 3700.0
		updated, err := svc.UpdateIncome(user.ID, income.ID, &amount, nil, "", nil, nil)
		testutil.AssertNoError(t, err)
		if updated.Amount != 3700 {
			t.Errorf("expected amount 3700, got %f", updated.Amount)
		}

		var stored models.Income
		db.First(&stored, income.ID)
		if stored.Description != income.Description {
			t.Error("description should be unchanged")
		}
	})

	t.Run("foreign_income_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)
		income := testutil.CreateTestIncome(t, db, owner.ID, category.ID, 3500, midMarch)

		amount := 1.0
		_, err := svc.UpdateIncome(intruder.ID, income.ID, &amount, nil, "", nil, nil)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}

func TestDeleteIncome(t *testing.T) {
	t.Run("removes_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestIncomeCategory(t, db)
		income := testutil.CreateTestIncome(t, db, user.ID, category.ID, 3500, midMarch)

		err := svc.DeleteIncome(user.ID, income.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Income{}).Where("id = ?", income.ID).Count(&count)
		if count != 0 {
			t.Error("income should be deleted")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewIncomeService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteIncome(user.ID, 9999)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}
