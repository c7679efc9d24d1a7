package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
	"duitku/internal/pagination"
)

// incomeService handles income-related business logic.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome records a new income entry.
func (s *incomeService) CreateIncome(userID uint, amount float64, date time.Time, description string, paymentType models.PaymentType, incomeCategoryID uint) (*models.Income, error) {
	var category models.IncomeCategory
	if err := s.db.First(&category, incomeCategoryID).Error; err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown income category")
	}

	income := &models.Income{
		UserID:           userID,
		Amount:           amount,
		Date:             date,
		Description:      description,
		PaymentType:      paymentType,
		IncomeCategoryID: incomeCategoryID,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// GetUserIncomes returns a paginated list of the user's income entries,
// newest first.
func (s *incomeService) GetUserIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Preload("IncomeCategory").
		Order("date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateIncome updates an existing income entry's fields.
func (s *incomeService) UpdateIncome(userID, incomeID uint, amount *float64, date *time.Time, description string, paymentType *models.PaymentType, incomeCategoryID *uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if amount != nil {
		updates["amount"] = *amount
	}
	if date != nil {
		updates["date"] = *date
	}
	if description != "" {
		updates["description"] = description
	}
	if paymentType != nil {
		updates["payment_type"] = *paymentType
	}
	if incomeCategoryID != nil {
		updates["income_category_id"] = *incomeCategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&income).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &income, nil
}

// DeleteIncome removes an income entry.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", incomeID, userID).Delete(&models.Income{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrIncomeNotFound
	}
	return nil
}
