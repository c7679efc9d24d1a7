package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "duitku/internal/errors"
	"duitku/internal/models"
	"duitku/internal/pagination"
	"duitku/internal/services"
)

// NotificationHandler handles notification requests, including the
// budget-threshold check that generates transaction alerts.
type NotificationHandler struct {
	notificationService services.NotificationServicer
	alertService        services.AlertServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer, alertService services.AlertServicer) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		alertService:        alertService,
	}
}

// CreateNotificationRequest represents the request payload for creating a notification.
type CreateNotificationRequest struct {
	Title       string                  `json:"title" binding:"required,min=1,max=200"`
	Type        models.NotificationType `json:"type" binding:"required,notification_type"`
	Description string                  `json:"description"`
	Image       string                  `json:"image"`
	AdminID     *uint                   `json:"admin_id"`
}

// UpdateNotificationRequest represents the request payload for a partial update.
type UpdateNotificationRequest struct {
	Title       string                   `json:"title" binding:"omitempty,min=1,max=200"`
	Type        *models.NotificationType `json:"type" binding:"omitempty,notification_type"`
	Description string                   `json:"description"`
	Image       string                   `json:"image"`
	AdminID     *uint                    `json:"admin_id"`
}

// CheckBudgetRequest carries the user whose budgets should be evaluated.
type CheckBudgetRequest struct {
	UserID uint `json:"userid" binding:"required,gt=0"`
}

// GetWelfareNotifications handles listing welfare notifications.
// @Summary     Get welfare notifications
// @Description List all welfare notifications
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Notification "Notifications"
// @Failure     404 {object} ErrorResponse "No notifications"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [get]
func (h *NotificationHandler) GetWelfareNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetWelfareNotifications()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetWelfareNotificationsByDate handles listing welfare notifications for a day.
// @Summary     Get welfare notifications by date
// @Description List welfare notifications dated on the given day
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Date (YYYY-MM-DD)"
// @Success     200 {array} models.Notification "Notifications"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     404 {object} ErrorResponse "No notifications for date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/date [get]
func (h *NotificationHandler) GetWelfareNotificationsByDate(c *gin.Context) {
	date, err := parseDateQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetWelfareNotificationsByDate(date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// CreateNotification handles creating a notification.
// @Summary     Create notification
// @Description Create a new notification
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNotificationRequest true "Notification details"
// @Success     201 {object} models.Notification "Notification created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	notification, err := h.notificationService.CreateNotification(req.Title, req.Type, req.Description, req.Image, req.AdminID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

// UpdateNotification handles a partial notification update.
// @Summary     Update notification
// @Description Update fields of an existing notification; its timestamp is refreshed
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                       true "Notification ID"
// @Param       request body UpdateNotificationRequest true "Updated fields"
// @Success     200 {object} models.Notification "Updated notification"
// @Failure     400 {object} ErrorResponse "Invalid input or notification ID"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/{id} [put]
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	notification, err := h.notificationService.UpdateNotification(notificationID, services.NotificationUpdate{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		Image:       req.Image,
		AdminID:     req.AdminID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// DeleteNotification handles deleting a notification.
// @Summary     Delete notification
// @Description Delete a notification and its user links
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     200 {object} MessageResponse "Notification deleted"
// @Failure     400 {object} ErrorResponse "Invalid notification ID"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.DeleteNotification(notificationID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification successfully deleted"})
}

// GetTransactionNotifications handles listing a user's budget alerts.
// @Summary     Get transaction notifications
// @Description List the budget alerts linked to a user
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       userid    path  int true  "User ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Notification] "Paginated notifications"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/transactions/{userid} [get]
func (h *NotificationHandler) GetTransactionNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "userid")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.notificationService.GetUserTransactionNotifications(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckBudget triggers the budget threshold evaluation for a user.
// @Summary     Check budget thresholds
// @Description Evaluate the user's active budgets and create threshold alerts where due
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CheckBudgetRequest true "User to evaluate"
// @Success     200 {object} MessageResponse "Analysis completed"
// @Failure     400 {object} ErrorResponse "Missing or invalid userid"
// @Failure     404 {object} ErrorResponse "No budgets found for the user"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/check-budget [post]
func (h *NotificationHandler) CheckBudget(c *gin.Context) {
	var req CheckBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "UserID is required"))
		return
	}

	summary, err := h.alertService.EvaluateBudgets(req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget analysis completed and notifications sent if applicable",
		"summary": summary,
	})
}
