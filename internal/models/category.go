package models

// Icon holds the glyph metadata displayed next to a category
type Icon struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Codepoint  string `gorm:"not null" json:"codepoint"`
	FontFamily string `gorm:"not null" json:"font_family"`
	Color      string `json:"color"`
}

// BasicCategory is a system-provided expense category shared by all users
type BasicCategory struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	IconID *uint  `json:"icon_id,omitempty"`

	Icon *Icon `gorm:"foreignKey:IconID" json:"icon,omitempty"`
}

// CustomizeCategory is a user-defined expense category
type CustomizeCategory struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	IconID *uint  `json:"icon_id,omitempty"`

	Icon *Icon `gorm:"foreignKey:IconID" json:"icon,omitempty"`
}

// SubCategory is the leaf an expense points at. ParentCategoryID resolves
// through either the basic or the customize category table; the two are
// alternative lookup paths, not a foreign key to a single table.
type SubCategory struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"not null" json:"name"`
	ParentCategoryID uint   `gorm:"not null;index" json:"parent_category_id"`
	IconID           *uint  `json:"icon_id,omitempty"`

	Icon *Icon `gorm:"foreignKey:IconID" json:"icon,omitempty"`
}

// IncomeCategory classifies income entries
type IncomeCategory struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	IconID *uint  `json:"icon_id,omitempty"`

	Icon *Icon `gorm:"foreignKey:IconID" json:"icon,omitempty"`
}
