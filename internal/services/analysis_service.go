package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "duitku/internal/errors"
)

// CategoryAnalysis is one row of the monthly budget-versus-spend view.
type CategoryAnalysis struct {
	CategoryName  string  `json:"category_name"`
	Codepoint     *string `json:"codepoint,omitempty"`
	FontFamily    *string `json:"font_family,omitempty"`
	Color         *string `json:"color,omitempty"`
	BudgetAmount  float64 `json:"budget_amount"`
	ExpenseAmount float64 `json:"expense_amount"`
}

// analysisService computes spending against budgets per basic category.
type analysisService struct {
	db *gorm.DB
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(db *gorm.DB) AnalysisServicer {
	return &analysisService{db: db}
}

const monthlyAnalysisQuery = `
SELECT
    bc.name AS category_name,
    i.codepoint,
    i.font_family,
    i.color,
    COALESCE(b.amount, 0) AS budget_amount,
    COALESCE(SUM(e.amount), 0) AS expense_amount
FROM basic_categories bc
JOIN budget_basic_categories bbc ON bc.id = bbc.basic_category_id
JOIN budgets b ON bbc.budget_id = b.id
    AND b.user_id = ? AND b.deleted_at IS NULL
LEFT JOIN icons i ON bc.icon_id = i.id
LEFT JOIN sub_categories sc ON bc.id = sc.parent_category_id
LEFT JOIN expenses e ON sc.id = e.sub_category_id
    AND e.user_id = ? AND e.date >= ? AND e.date < ? AND e.deleted_at IS NULL
WHERE b.start_date >= ? AND b.start_date < ?
GROUP BY bc.id, bc.name, i.codepoint, i.font_family, i.color, b.amount
ORDER BY bc.name`

// GetMonthlyAnalysis returns budgeted versus spent amounts per basic
// category for the calendar month containing the given date. Only budgets
// starting in that month contribute rows.
func (s *analysisService) GetMonthlyAnalysis(userID uint, month time.Time) ([]CategoryAnalysis, error) {
	monthStart, monthEnd := monthWindow(month)

	var rows []CategoryAnalysis
	err := s.db.Raw(monthlyAnalysisQuery,
		userID, userID, monthStart, monthEnd, monthStart, monthEnd,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoAnalysisData
	}
	return rows, nil
}
