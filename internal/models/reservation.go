package models

import "time"

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationApproved  = "approved"
	ReservationRejected  = "rejected"
	ReservationConverted = "converted"
)

// Reservation represents a buyer's hold on a property prior to contract.
type Reservation struct {
	ID                int64     `json:"reservation_id"`
	PropertyID        int64     `json:"property_id"`
	UserID            int64     `json:"user_id"`
	ReservationStatus string    `json:"reservation_status"`
	ReservationFee    float64   `json:"reservation_fee"`
	TotalPrice        float64   `json:"total_price"`
	DownpaymentTotal  float64   `json:"downpayment_total"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateReservationRequest is the body of POST /reservations.
type CreateReservationRequest struct {
	PropertyID       int64   `json:"property_id" validate:"required,gt=0"`
	UserID           int64   `json:"user_id" validate:"required,gt=0"`
	ReservationFee   float64 `json:"reservation_fee" validate:"required,gt=0"`
	TotalPrice       float64 `json:"total_price" validate:"required,gt=0"`
	DownpaymentTotal float64 `json:"downpayment_total" validate:"required,gt=0"`
}
