package models

// User represents an app user
type User struct {
	Base
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	Username    string `gorm:"not null" json:"username"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Budgets  []Budget  `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Incomes  []Income  `gorm:"foreignKey:UserID" json:"incomes,omitempty"`
}

// Admin represents a back-office admin who authors welfare notifications
type Admin struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
}
