package models

import "time"

// Notification is an in-app message delivered to a user or a role.
type Notification struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id,omitempty"`
	TargetRole string    `json:"target_role,omitempty"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
