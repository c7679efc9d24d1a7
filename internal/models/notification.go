package models

import "time"

// NotificationType distinguishes admin-authored announcements from
// system-generated budget alerts
type NotificationType string

const (
	NotificationTypeWelfare     NotificationType = "welfare"
	NotificationTypeTransaction NotificationType = "transaction"
)

// Notification is a message shown in the user's inbox. For budget threshold
// alerts the title doubles as the deduplication key: one alert per
// (user, budget, threshold) per month.
type Notification struct {
	Base
	Title       string           `gorm:"not null;index" json:"title"`
	Type        NotificationType `gorm:"not null;index" json:"type"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Date        time.Time        `gorm:"not null" json:"date"`
	AdminID     *uint            `json:"admin_id,omitempty"`

	Admin *Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// UserNotification links a notification to the user it was generated for
type UserNotification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	NotificationID uint      `gorm:"not null;uniqueIndex:ux_user_notification" json:"notification_id"`
	UserID         uint      `gorm:"not null;uniqueIndex:ux_user_notification;index" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
