package models

import "time"

// Budget represents a monthly spending plan. A budget is "active" for an
// evaluation run when its start date falls inside the evaluation month.
type Budget struct {
	Base
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Name       string    `gorm:"not null" json:"name"`
	Amount     float64   `gorm:"not null" json:"amount"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	Recurrence bool      `gorm:"default:false" json:"recurrence"`

	// Relationships
	BasicCategories     []BudgetBasicCategory     `gorm:"foreignKey:BudgetID" json:"basic_categories,omitempty"`
	CustomizeCategories []BudgetCustomizeCategory `gorm:"foreignKey:BudgetID" json:"customize_categories,omitempty"`
}

// BudgetBasicCategory links a budget to a basic category with a per-category
// allocation
type BudgetBasicCategory struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	BudgetID        uint    `gorm:"not null;uniqueIndex:ux_budget_basic" json:"budget_id"`
	BasicCategoryID uint    `gorm:"not null;uniqueIndex:ux_budget_basic" json:"basic_category_id"`
	Amount          float64 `json:"amount"`

	BasicCategory *BasicCategory `gorm:"foreignKey:BasicCategoryID" json:"basic_category,omitempty"`
}

// BudgetCustomizeCategory links a budget to a user-defined category
type BudgetCustomizeCategory struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	BudgetID            uint    `gorm:"not null;uniqueIndex:ux_budget_customize" json:"budget_id"`
	CustomizeCategoryID uint    `gorm:"not null;uniqueIndex:ux_budget_customize" json:"customize_category_id"`
	Amount              float64 `json:"amount"`

	CustomizeCategory *CustomizeCategory `gorm:"foreignKey:CustomizeCategoryID" json:"customize_category,omitempty"`
}
