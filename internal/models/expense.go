package models

import "time"

// PaymentType represents how a transaction was paid
type PaymentType string

const (
	PaymentTypeCash    PaymentType = "cash"
	PaymentTypeCard    PaymentType = "card"
	PaymentTypeEWallet PaymentType = "ewallet"
	PaymentTypeOnline  PaymentType = "online"
)

// Expense represents a spending entry under a leaf subcategory
type Expense struct {
	Base
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Date          time.Time   `gorm:"not null;index" json:"date"`
	Description   string      `json:"description"`
	PaymentType   PaymentType `gorm:"not null" json:"payment_type"`
	SubCategoryID uint        `gorm:"not null" json:"sub_category_id"`

	SubCategory *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
}

// Income represents an income entry
type Income struct {
	Base
	UserID           uint        `gorm:"not null;index" json:"user_id"`
	Amount           float64     `gorm:"not null" json:"amount"`
	Date             time.Time   `gorm:"not null;index" json:"date"`
	Description      string      `json:"description"`
	PaymentType      PaymentType `gorm:"not null" json:"payment_type"`
	IncomeCategoryID uint        `gorm:"not null" json:"income_category_id"`

	IncomeCategory *IncomeCategory `gorm:"foreignKey:IncomeCategoryID" json:"income_category,omitempty"`
}
