package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"duitku/internal/config"
	apperrors "duitku/internal/errors"
	"duitku/internal/models"
	"duitku/internal/pagination"
)

// notificationService handles the notification inbox: admin-authored
// welfare announcements plus the per-user transaction alerts produced by
// the evaluator.
type notificationService struct {
	db  *gorm.DB
	cfg config.AlertConfig
	now func() time.Time
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB, cfg config.AlertConfig) NotificationServicer {
	return &notificationService{db: db, cfg: cfg, now: time.Now}
}

// GetWelfareNotifications lists all welfare notifications.
func (s *notificationService) GetWelfareNotifications() ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.
		Where("type = ?", models.NotificationTypeWelfare).
		Order("date DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(notifications) == 0 {
		return nil, apperrors.ErrNoNotifications
	}
	return notifications, nil
}

// GetWelfareNotificationsByDate lists welfare notifications dated on the
// given calendar day in the configured zone.
func (s *notificationService) GetWelfareNotificationsByDate(date time.Time) ([]models.Notification, error) {
	loc := s.cfg.Location()
	day := date.In(loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var notifications []models.Notification
	err := s.db.
		Where("type = ? AND date >= ? AND date < ?", models.NotificationTypeWelfare, dayStart, dayEnd).
		Order("date DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(notifications) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoNotifications, "No notifications found for the specified date")
	}
	return notifications, nil
}

// CreateNotification stores a new notification, timestamped in the
// configured zone.
func (s *notificationService) CreateNotification(title string, notificationType models.NotificationType, description, image string, adminID *uint) (*models.Notification, error) {
	notification := &models.Notification{
		Title:       title,
		Type:        notificationType,
		Description: description,
		Image:       image,
		Date:        s.now().In(s.cfg.Location()),
		AdminID:     adminID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return notification, nil
}

// UpdateNotification applies a partial update. Provided fields replace the
// stored ones and the timestamp is refreshed, mirroring how an edited
// announcement bumps to the top of the inbox.
func (s *notificationService) UpdateNotification(notificationID uint, update NotificationUpdate) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if update.Title != "" {
		updates["title"] = update.Title
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Description != "" {
		updates["description"] = update.Description
	}
	if update.Image != "" {
		updates["image"] = update.Image
	}
	if update.AdminID != nil {
		updates["admin_id"] = *update.AdminID
	}
	updates["date"] = s.now().In(s.cfg.Location())

	if err := s.db.Model(&notification).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &notification, nil
}

// DeleteNotification removes a notification and its user links.
func (s *notificationService) DeleteNotification(notificationID uint) error {
	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notificationID).Delete(&models.UserNotification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&notification).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserTransactionNotifications returns the user's budget alerts,
// paginated, newest first.
func (s *notificationService) GetUserTransactionNotifications(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.Model(&models.Notification{}).
		Joins("JOIN user_notifications un ON un.notification_id = notifications.id").
		Where("notifications.type = ? AND un.user_id = ?", models.NotificationTypeTransaction, userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := base.
		Order("notifications.date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notifications, page.Page, page.PageSize, totalItems)
	return &result, nil
}
