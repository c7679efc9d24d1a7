package services

import (
	"time"

	"duitku/internal/models"
	"duitku/internal/pagination"
)

// AlertServicer defines the contract for the budget threshold evaluator.
type AlertServicer interface {
	EvaluateBudgets(userID uint) (*BudgetCheckSummary, error)
}

// BudgetCategoryLink attaches a category allocation to a budget.
type BudgetCategoryLink struct {
	BudgetID        uint    `json:"budget_id" binding:"required"`
	BasicCategoryID uint    `json:"basic_category_id" binding:"required"`
	Amount          float64 `json:"amount"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID uint, name string, amount float64, startDate time.Time, recurrence bool) (*models.Budget, error)
	CreateBudgetWithCategory(userID uint, name string, amount float64, startDate time.Time, recurrence bool, basicCategoryID uint) (*models.Budget, error)
	AddBudgetCategories(userID uint, links []BudgetCategoryLink) error
	GetUserBudgets(userID uint) ([]models.Budget, error)
	GetBudgetByID(userID, budgetID uint) (*models.Budget, error)
	UpdateBudget(userID, budgetID uint, name string, amount *float64, startDate *time.Time) (*models.Budget, error)
	DeleteBudget(userID, budgetID uint) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, amount float64, date time.Time, description string, paymentType models.PaymentType, subCategoryID uint) (*models.Expense, error)
	GetMonthExpenses(userID uint, month time.Time) ([]models.Expense, error)
	GetCategoryTotals(userID uint, basicCategoryIDs []uint, month time.Time) ([]CategoryTotal, error)
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID uint, amount float64, date time.Time, description string, paymentType models.PaymentType, incomeCategoryID uint) (*models.Income, error)
	GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	UpdateIncome(userID, incomeID uint, amount *float64, date *time.Time, description string, paymentType *models.PaymentType, incomeCategoryID *uint) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// NotificationUpdate holds the optional fields of a partial notification
// update. Nil pointers and empty strings leave the column untouched.
type NotificationUpdate struct {
	Title       string
	Type        *models.NotificationType
	Description string
	Image       string
	AdminID     *uint
}

// NotificationServicer defines the contract for notification business logic.
type NotificationServicer interface {
	GetWelfareNotifications() ([]models.Notification, error)
	GetWelfareNotificationsByDate(date time.Time) ([]models.Notification, error)
	CreateNotification(title string, notificationType models.NotificationType, description, image string, adminID *uint) (*models.Notification, error)
	UpdateNotification(notificationID uint, update NotificationUpdate) (*models.Notification, error)
	DeleteNotification(notificationID uint) error
	GetUserTransactionNotifications(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
}

// TransactionServicer defines the contract for the unified transaction feed.
type TransactionServicer interface {
	GetUserTransactions(userID uint) ([]TransactionEntry, error)
}

// AnalysisServicer defines the contract for the monthly spending analysis.
type AnalysisServicer interface {
	GetMonthlyAnalysis(userID uint, month time.Time) ([]CategoryAnalysis, error)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	GetUserByID(userID uint) (*models.User, error)
	UpdateProfile(userID uint, username, phoneNumber, address string) (*models.User, error)
}
