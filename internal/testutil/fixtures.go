package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"duitku/internal/models"

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
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Username: fmt.Sprintf("user%d", nextID()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBasicCategory creates a system expense category.
func CreateTestBasicCategory(t *testing.T, db *gorm.DB) *models.BasicCategory {
	t.Helper()

	category := &models.BasicCategory{
		Name: fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test basic category: %v", err)
	}
	return category
}

// CreateTestCustomizeCategory creates a user-defined expense category.
func CreateTestCustomizeCategory(t *testing.T, db *gorm.DB, userID uint) *models.CustomizeCategory {
	t.Helper()

	category := &models.CustomizeCategory{
		UserID: userID,
		Name:   fmt.Sprintf("Test Custom Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test customize category: %v", err)
	}
	return category
}

// CreateTestSubCategory creates a leaf subcategory under the given parent.
// The parent ID may point at either a basic or a customize category.
func CreateTestSubCategory(t *testing.T, db *gorm.DB, parentCategoryID uint) *models.SubCategory {
	t.Helper()

	sub := &models.SubCategory{
		Name:             fmt.Sprintf("Test Subcategory %d", nextID()),
		ParentCategoryID: parentCategoryID,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return sub
}

// CreateTestIncomeCategory creates an income category.
func CreateTestIncomeCategory(t *testing.T, db *gorm.DB) *models.IncomeCategory {
	t.Helper()

	category := &models.IncomeCategory{
		Name: fmt.Sprintf("Test Income Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test income category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget starting at the given date.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, amount float64, startDate time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Budget %d", nextID()),
		Amount:    amount,
		StartDate: startDate,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// LinkBudgetBasicCategory attaches a basic category to a budget.
func LinkBudgetBasicCategory(t *testing.T, db *gorm.DB, budgetID, basicCategoryID uint) *models.BudgetBasicCategory {
	t.Helper()

	link := &models.BudgetBasicCategory{
		BudgetID:        budgetID,
		BasicCategoryID: basicCategoryID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to link budget to basic category: %v", err)
	}
	return link
}

// LinkBudgetCustomizeCategory attaches a customize category to a budget.
func LinkBudgetCustomizeCategory(t *testing.T, db *gorm.DB, budgetID, customizeCategoryID uint) *models.BudgetCustomizeCategory {
	t.Helper()

	link := &models.BudgetCustomizeCategory{
		BudgetID:            budgetID,
		CustomizeCategoryID: customizeCategoryID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to link budget to customize category: %v", err)
	}
	return link
}

// CreateTestExpense creates an expense on the given date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, subCategoryID uint, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Date:          date,
		Description:   fmt.Sprintf("Test Expense %d", nextID()),
		PaymentType:   models.PaymentTypeCash,
		SubCategoryID: subCategoryID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income entry on the given date.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, incomeCategoryID uint, amount float64, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:           userID,
		Amount:           amount,
		Date:             date,
		Description:      fmt.Sprintf("Test Income %d", nextID()),
		PaymentType:      models.PaymentTypeCard,
		IncomeCategoryID: incomeCategoryID,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestNotification creates a notification of the given type and links
// it to the user.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID uint, notificationType models.NotificationType, title string, date time.Time) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		Title: title,
		Type:  notificationType,
		Date:  date,
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}

	link := &models.UserNotification{
		NotificationID: notification.ID,
		UserID:         userID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to link test notification to user: %v", err)
	}
	return notification
}
