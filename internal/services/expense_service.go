package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
)

// CategoryTotal is the month spend of one basic category.
type CategoryTotal struct {
	BasicCategoryID uint    `json:"basic_category_id"`
	TotalAmount     float64 `json:"total_amount"`
}

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense under a leaf subcategory.
func (s *expenseService) CreateExpense(userID uint, amount float64, date time.Time, description string, paymentType models.PaymentType, subCategoryID uint) (*models.Expense, error) {
	var sub models.SubCategory
	if err := s.db.First(&sub, subCategoryID).Error; err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown subcategory")
	}

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Date:          date,
		Description:   description,
		PaymentType:   paymentType,
		SubCategoryID: subCategoryID,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetMonthExpenses lists the user's expenses for the calendar month of the
// given date, with subcategories preloaded.
func (s *expenseService) GetMonthExpenses(userID uint, month time.Time) ([]models.Expense, error) {
	monthStart, monthEnd := monthWindow(month)

	var expenses []models.Expense
	err := s.db.
		Preload("SubCategory").
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Order("date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(expenses) == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}
	return expenses, nil
}

// GetCategoryTotals sums the user's month spending per basic category for
// the requested category ids. Categories without expenses are omitted.
func (s *expenseService) GetCategoryTotals(userID uint, basicCategoryIDs []uint, month time.Time) ([]CategoryTotal, error) {
	if len(basicCategoryIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "No category ids provided")
	}
	monthStart, monthEnd := monthWindow(month)

	var totals []CategoryTotal
	err := s.db.Model(&models.Expense{}).
		Select("bc.id AS basic_category_id, SUM(expenses.amount) AS total_amount").
		Joins("JOIN sub_categories sc ON sc.id = expenses.sub_category_id").
		Joins("JOIN basic_categories bc ON bc.id = sc.parent_category_id").
		Where("expenses.user_id = ? AND bc.id IN ? AND expenses.date >= ? AND expenses.date < ?",
			userID, basicCategoryIDs, monthStart, monthEnd).
		Group("bc.id").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// monthWindow returns the half-open calendar-month window containing t,
// in t's location.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
