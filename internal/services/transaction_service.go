package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
)

// TransactionEntry is one row of the unified expense/income feed. Category
// and icon columns are nullable because either side of the union may lack
// the decoration.
type TransactionEntry struct {
	TransactionID    uint               `json:"transaction_id"`
	Amount           float64            `json:"amount"`
	Date             time.Time          `json:"date"`
	Description      string             `json:"description"`
	PaymentType      models.PaymentType `json:"payment_type"`
	UserID           uint               `json:"user_id"`
	SubCategoryID    *uint              `json:"sub_category_id,omitempty"`
	IncomeCategoryID *uint              `json:"income_category_id,omitempty"`
	TransactionType  string             `json:"transaction_type"`
	SubCategoryName  *string            `json:"sub_category_name,omitempty"`
	CategoryName     *string            `json:"category_name,omitempty"`
	Codepoint        *string            `json:"codepoint,omitempty"`
	FontFamily       *string            `json:"font_family,omitempty"`
	Color            *string            `json:"color,omitempty"`
}

// transactionService produces the combined expense and income feed.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

const transactionFeedQuery = `
SELECT
    e.id AS transaction_id,
    e.amount,
    e.date,
    e.description,
    e.payment_type,
    e.user_id,
    e.sub_category_id,
    NULL AS income_category_id,
    'Expense' AS transaction_type,
    s.name AS sub_category_name,
    bc.name AS category_name,
    i.codepoint,
    i.font_family,
    i.color
FROM expenses e
LEFT JOIN sub_categories s ON e.sub_category_id = s.id
LEFT JOIN basic_categories bc ON s.parent_category_id = bc.id
LEFT JOIN icons i ON s.icon_id = i.id
WHERE e.user_id = ? AND e.deleted_at IS NULL

UNION ALL

SELECT
    inc.id AS transaction_id,
    inc.amount,
    inc.date,
    inc.description,
    inc.payment_type,
    inc.user_id,
    NULL AS sub_category_id,
    inc.income_category_id,
    'Income' AS transaction_type,
    ic.name AS sub_category_name,
    NULL AS category_name,
    ico.codepoint,
    ico.font_family,
    ico.color
FROM incomes inc
LEFT JOIN income_categories ic ON inc.income_category_id = ic.id
LEFT JOIN icons ico ON ic.icon_id = ico.id
WHERE inc.user_id = ? AND inc.deleted_at IS NULL

ORDER BY date DESC, transaction_type`

// GetUserTransactions returns the user's expenses and income interleaved,
// newest first, decorated with category names and icons.
func (s *transactionService) GetUserTransactions(userID uint) ([]TransactionEntry, error) {
	var entries []TransactionEntry
	if err := s.db.Raw(transactionFeedQuery, userID, userID).Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(entries) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "No transactions found")
	}
	return entries, nil
}
