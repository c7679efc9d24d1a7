package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a new budget. A budget with the same name and start
// date for the same user is rejected.
func (s *budgetService) CreateBudget(userID uint, name string, amount float64, startDate time.Time, recurrence bool) (*models.Budget, error) {
	var existing models.Budget
	err := s.db.Where("user_id = ? AND name = ? AND start_date = ?", userID, name, startDate).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateBudget
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget := &models.Budget{
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		StartDate:  startDate,
		Recurrence: recurrence,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// CreateBudgetWithCategory creates a budget and its first basic-category
// link in one transaction.
func (s *budgetService) CreateBudgetWithCategory(userID uint, name string, amount float64, startDate time.Time, recurrence bool, basicCategoryID uint) (*models.Budget, error) {
	var count int64
	err := s.db.Model(&models.Budget{}).
		Joins("JOIN budget_basic_categories bbc ON bbc.budget_id = budgets.id").
		Where("budgets.user_id = ? AND budgets.start_date = ? AND bbc.basic_category_id = ?", userID, startDate, basicCategoryID).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		StartDate:  startDate,
		Recurrence: recurrence,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		link := &models.BudgetBasicCategory{
			BudgetID:        budget.ID,
			BasicCategoryID: basicCategoryID,
			Amount:          amount,
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// AddBudgetCategories attaches category allocations to existing budgets.
// All links are inserted in one transaction so they succeed or fail together.
func (s *budgetService) AddBudgetCategories(userID uint, links []BudgetCategoryLink) error {
	if len(links) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Expected a non-empty list of categories")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range links {
			// Budgets can only be extended by their owner.
			var budget models.Budget
			if err := tx.Where("id = ? AND user_id = ?", l.BudgetID, userID).First(&budget).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrBudgetNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			link := &models.BudgetBasicCategory{
				BudgetID:        l.BudgetID,
				BasicCategoryID: l.BasicCategoryID,
				Amount:          l.Amount,
			}
			if err := tx.Create(link).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

// GetUserBudgets returns the user's budgets newest first, with their
// category links preloaded.
func (s *budgetService) GetUserBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.db.
		Preload("BasicCategories.BasicCategory").
		Preload("CustomizeCategories.CustomizeCategory").
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&budgets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(budgets) == 0 {
		return nil, apperrors.ErrNoBudgetsFound
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(userID, budgetID uint, name string, amount *float64, startDate *time.Time) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		updates["amount"] = *amount
	}
	if startDate != nil {
		updates["start_date"] = *startDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget removes a budget and its category links in one transaction.
func (s *budgetService) DeleteBudget(userID, budgetID uint) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetBasicCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budgetID).Delete(&models.BudgetCustomizeCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(budget).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
