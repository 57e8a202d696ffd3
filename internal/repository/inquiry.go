package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

// InsertInquiry stores a new complaint or service request.
func (r *Repository) InsertInquiry(q *models.Inquiry) error {
	query := `
		INSERT INTO futura.inquiries (user_id, subject, message, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, q.UserID, q.Subject, q.Message, q.Category, q.Status).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}
	return nil
}

// CountRecentInquiries counts inquiries by a user with the same subject
// since the cutoff. Used for the 24-hour duplicate gate.
func (r *Repository) CountRecentInquiries(userID int64, subject string, since time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM futura.inquiries
		WHERE user_id = $1 AND subject = $2 AND created_at >= $3`
	if err := r.db.QueryRow(query, userID, subject, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent inquiries: %w", err)
	}
	return count, nil
}

// ListInquiries lists inquiries, optionally filtered by user.
func (r *Repository) ListInquiries(userID int64) ([]*models.Inquiry, error) {
	query := `
		SELECT id, user_id, subject, message, category, status, created_at, updated_at
		FROM futura.inquiries
		WHERE $1 = 0 OR user_id = $1
		ORDER BY created_at DESC
		LIMIT 200`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*models.Inquiry
	for rows.Next() {
		q := &models.Inquiry{}
		if err := rows.Scan(&q.ID, &q.UserID, &q.Subject, &q.Message, &q.Category, &q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, q)
	}
	return inquiries, rows.Err()
}

// FindInquiryByID returns a single inquiry.
func (r *Repository) FindInquiryByID(id int64) (*models.Inquiry, error) {
	q := &models.Inquiry{}
	query := `
		SELECT id, user_id, subject, message, category, status, created_at, updated_at
		FROM futura.inquiries
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&q.ID, &q.UserID, &q.Subject, &q.Message, &q.Category, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inquiry: %w", err)
	}
	return q, nil
}

// UpdateInquiryStatus moves an inquiry through its workflow.
func (r *Repository) UpdateInquiryStatus(id int64, status string) error {
	res, err := r.db.Exec(`
		UPDATE futura.inquiries
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inquiry %d: %w", id, ErrNotFound)
	}
	return nil
}
