package repository

import (
	"database/sql"
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
)

// CreateReservation creates a new reservation in the database
func (r *Repository) CreateReservation(res *models.Reservation) error {
	query := `
		INSERT INTO futura.reservations (property_id, user_id, reservation_status, reservation_fee, total_price, downpayment_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING reservation_id, created_at, updated_at`
	err := r.db.QueryRow(query, res.PropertyID, res.UserID, res.ReservationStatus, res.ReservationFee, res.TotalPrice, res.DownpaymentTotal).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// FindReservationByID retrieves a reservation by id
func (r *Repository) FindReservationByID(id int64) (*models.Reservation, error) {
	res := &models.Reservation{}
	query := `
		SELECT reservation_id, property_id, user_id, reservation_status, reservation_fee, total_price, downpayment_total, created_at, updated_at
		FROM futura.reservations
		WHERE reservation_id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&res.ID, &res.PropertyID, &res.UserID, &res.ReservationStatus, &res.ReservationFee, &res.TotalPrice, &res.DownpaymentTotal, &res.CreatedAt, &res.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return res, nil
}

// UpdateReservationStatus sets a reservation's status.
func (r *Repository) UpdateReservationStatus(id int64, status string) error {
	res, err := r.db.Exec(`
		UPDATE futura.reservations
		SET reservation_status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE reservation_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	return nil
}
