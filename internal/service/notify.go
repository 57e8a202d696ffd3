package service

import (
	"context"

	"github.com/futurahomes/backoffice/internal/models"
)

// notifyUser writes an in-app notification for a user. Best-effort:
// failures are logged and never fail the primary operation.
func (s *Service) notifyUser(userID int64, title, message string) {
	n := &models.Notification{UserID: userID, Title: title, Message: message}
	if err := s.store.InsertNotification(n); err != nil {
		s.log.Warnf("Failed to notify user %d: %v", userID, err)
	}
}

// notifyRole writes an in-app notification addressed to every user
// holding a role. Best-effort.
func (s *Service) notifyRole(role, title, message string) {
	n := &models.Notification{TargetRole: role, Title: title, Message: message}
	if err := s.store.InsertNotification(n); err != nil {
		s.log.Warnf("Failed to notify role %s: %v", role, err)
	}
}

// ListNotifications returns the authenticated user's notifications.
func (s *Service) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListNotifications(userID, user.Role)
}

// MarkNotificationRead flags a notification as read.
func (s *Service) MarkNotificationRead(id int64) error {
	return s.store.MarkNotificationRead(id)
}
