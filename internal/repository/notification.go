package repository

import (
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
)

// InsertNotification stores an in-app notification.
func (r *Repository) InsertNotification(n *models.Notification) error {
	query := `
		INSERT INTO futura.notifications (user_id, target_role, title, message, is_read, created_at)
		VALUES (NULLIF($1, 0), NULLIF($2, ''), $3, $4, false, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, n.UserID, n.TargetRole, n.Title, n.Message).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications lists notifications addressed to a user directly or
// via their role, newest first.
func (r *Repository) ListNotifications(userID int64, role string) ([]*models.Notification, error) {
	query := `
		SELECT id, COALESCE(user_id, 0), COALESCE(target_role, ''), title, message, is_read, created_at
		FROM futura.notifications
		WHERE user_id = $1 OR target_role = $2
		ORDER BY created_at DESC
		LIMIT 100`
	rows, err := r.db.Query(query, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.TargetRole, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flags a notification as read.
func (r *Repository) MarkNotificationRead(id int64) error {
	res, err := r.db.Exec(`UPDATE futura.notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	return nil
}
