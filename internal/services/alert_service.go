package services

import (
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm"

	"duitku/internal/config"
	apperrors "duitku/internal/errors"
	"duitku/internal/events"
	"duitku/internal/logger"
	"duitku/internal/models"
)

// Stage messages reported when a step of the evaluation fails.
const (
	stageFetchBudgets       = "Error fetching budget data"
	stageFetchExpenses      = "Error fetching expense data"
	stageCheckNotifications = "Error checking notifications"
	stageCreateNotification = "Error creating notification"
	stageLinkNotification   = "Error linking notification to user"
)

const alertEventName = "budget-alert"

// BudgetCheckSummary reports the outcome of one evaluation run.
type BudgetCheckSummary struct {
	BudgetsEvaluated   int `json:"budgets_evaluated"`
	AlertsCreated      int `json:"alerts_created"`
	StaleAlertsRemoved int `json:"stale_alerts_removed"`
}

// alertService is the budget threshold evaluator. Given a user it sums the
// current-month spending of each active budget, picks the highest crossed
// threshold, and ensures exactly one notification per (user, budget,
// threshold) exists for the month.
type alertService struct {
	db        *gorm.DB
	cfg       config.AlertConfig
	publisher events.Publisher
	now       func() time.Time
}

// NewAlertService creates a new AlertServicer. publisher may be nil, in
// which case created alerts are stored but not pushed. A nil concrete
// publisher behind a non-nil interface is treated the same way.
func NewAlertService(db *gorm.DB, cfg config.AlertConfig, publisher events.Publisher) AlertServicer {
	if publisher != nil {
		if v := reflect.ValueOf(publisher); v.Kind() == reflect.Ptr && v.IsNil() {
			publisher = nil
		}
	}
	return &alertService{db: db, cfg: cfg, publisher: publisher, now: time.Now}
}

// EvaluateBudgets runs the full evaluation for one user.
//
// Each budget commits independently: a failure partway through keeps the
// alerts already created and skips the remaining budgets. Re-invocation is
// safe, the dedup key makes completed budgets a no-op.
func (s *alertService) EvaluateBudgets(userID uint) (*BudgetCheckSummary, error) {
	loc := s.cfg.Location()
	now := s.now().In(loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	summary := &BudgetCheckSummary{}

	removed, err := s.retireStaleAlerts(userID, monthStart)
	if err != nil {
		return nil, err
	}
	summary.StaleAlertsRemoved = removed

	var budgets []models.Budget
	if err := s.db.
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, monthStart, monthEnd).
		Find(&budgets).Error; err != nil {
		return nil, stageError(stageFetchBudgets, err)
	}
	if len(budgets) == 0 {
		return nil, apperrors.ErrNoBudgetsFound
	}

	for i := range budgets {
		created, err := s.evaluateBudget(userID, &budgets[i], now, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}
		summary.BudgetsEvaluated++
		if created != nil {
			summary.AlertsCreated++
			s.publish(userID, created)
		}
	}

	return summary, nil
}

// retireStaleAlerts removes transaction notifications from earlier months.
// Threshold alerts are scoped to a billing month; a carried-over alert would
// show a stale percentage. Runs unconditionally on every evaluation.
func (s *alertService) retireStaleAlerts(userID uint, monthStart time.Time) (int, error) {
	var staleIDs []uint
	err := s.db.Model(&models.Notification{}).
		Joins("JOIN user_notifications un ON un.notification_id = notifications.id").
		Where("notifications.type = ? AND un.user_id = ? AND notifications.date < ?",
			models.NotificationTypeTransaction, userID, monthStart).
		Pluck("notifications.id", &staleIDs).Error
	if err != nil {
		return 0, stageError(stageCheckNotifications, err)
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id IN ? AND user_id = ?", staleIDs, userID).
			Delete(&models.UserNotification{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", staleIDs).Delete(&models.Notification{}).Error
	})
	if err != nil {
		return 0, stageError(stageCheckNotifications, err)
	}
	return len(staleIDs), nil
}

// evaluateBudget aggregates one budget's spending, derives the highest
// crossed threshold, and creates the deduplicated alert if needed. The
// dedup check and both inserts share one transaction so a concurrent run on
// the same connection pool cannot observe the gap between check and insert.
// Returns the created notification, or nil when no alert was due or it
// already exists.
func (s *alertService) evaluateBudget(userID uint, budget *models.Budget, now, monthStart, monthEnd time.Time) (*models.Notification, error) {
	totalSpent, err := s.sumBudgetSpending(userID, budget.ID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	// A zero or negative budget amount yields no percentage rather than a
	// division by zero; such budgets never alert.
	percentage := 0.0
	if budget.Amount > 0 {
		percentage = totalSpent / budget.Amount * 100
	}

	threshold, reached := maxReachedThreshold(s.cfg.Thresholds, percentage)
	if !reached {
		return nil, nil
	}

	title := fmt.Sprintf("Budget %q reached %d%%", budget.Name, threshold)

	var created *models.Notification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Notification{}).
			Joins("JOIN user_notifications un ON un.notification_id = notifications.id").
			Where("notifications.title = ? AND un.user_id = ?", title, userID).
			Count(&count).Error; err != nil {
			return stageError(stageCheckNotifications, err)
		}
		if count > 0 {
			// Already alerted for this threshold this month.
			return nil
		}

		notification := &models.Notification{
			Title:       title,
			Type:        models.NotificationTypeTransaction,
			Description: s.alertDescription(budget, totalSpent, threshold, monthEnd),
			Date:        now,
		}
		if err := tx.Create(notification).Error; err != nil {
			return stageError(stageCreateNotification, err)
		}

		link := &models.UserNotification{NotificationID: notification.ID, UserID: userID}
		if err := tx.Create(link).Error; err != nil {
			return stageError(stageLinkNotification, err)
		}

		created = notification
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// sumBudgetSpending sums the user's current-month expenses whose subcategory
// reaches the budget through the basic-category or the customize-category
// link path. The two EXISTS clauses are alternative membership checks, so an
// expense reachable through both still counts once.
func (s *alertService) sumBudgetSpending(userID, budgetID uint, monthStart, monthEnd time.Time) (float64, error) {
	var totalSpent float64
	err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
		Where(`(EXISTS (
				SELECT 1 FROM sub_categories sc
				JOIN basic_categories bc ON sc.parent_category_id = bc.id
				JOIN budget_basic_categories bbc ON bbc.basic_category_id = bc.id
				WHERE sc.id = expenses.sub_category_id AND bbc.budget_id = ?
			) OR EXISTS (
				SELECT 1 FROM sub_categories sc
				JOIN customize_categories cc ON sc.parent_category_id = cc.id
				JOIN budget_customize_categories bcc ON bcc.customize_category_id = cc.id
				WHERE sc.id = expenses.sub_category_id AND bcc.budget_id = ?
			))`, budgetID, budgetID).
		Scan(&totalSpent).Error
	if err != nil {
		return 0, stageError(stageFetchExpenses, err)
	}
	return totalSpent, nil
}

// maxReachedThreshold returns the highest threshold the percentage meets or
// exceeds. Only the maximum is alerted so a user at 95% gets the 90% alert,
// not every lower one as well.
func maxReachedThreshold(thresholds []int, percentage float64) (int, bool) {
	best, reached := 0, false
	for _, t := range thresholds {
		if percentage >= float64(t) && t > best {
			best, reached = t, true
		}
	}
	return best, reached
}

func (s *alertService) alertDescription(budget *models.Budget, totalSpent float64, threshold int, nextMonthStart time.Time) string {
	tip := s.cfg.TipMessages[threshold]
	if tip == "" {
		tip = "To stay within your budget, review your spending for the remaining period and plan your upcoming purchases carefully."
	}
	return fmt.Sprintf(
		"Your spending has reached %d%% of your budget: %q.\n\n"+
			"Details:\n"+
			"- Budget Name: %s\n"+
			"- Total Expense: RM %.2f\n"+
			"- Budget Amount: RM %.2f\n\n"+
			"Tips:\n%s\n\n"+
			"This alert will be removed automatically on %s.",
		threshold, budget.Name, budget.Name, totalSpent, budget.Amount, tip,
		nextMonthStart.Format("2 January 2006"),
	)
}

// publish pushes a freshly created alert to the user's event channel.
// Best effort: a failure is logged and never surfaces to the caller.
func (s *alertService) publish(userID uint, notification *models.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(events.UserChannel(userID), alertEventName, notification); err != nil {
		logger.Get().Warnw("failed to publish budget alert",
			"user_id", userID,
			"notification_id", notification.ID,
			"error", err,
		)
	}
}

// stageError wraps a database error with the evaluation stage it occurred in.
func stageError(stage string, err error) *apperrors.AppError {
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInternalServer, stage), err)
}
