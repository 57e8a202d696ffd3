package models

import "time"

// PaymentTransaction is an immutable ledger row recorded per walk-in payment.
type PaymentTransaction struct {
	ID              int64     `json:"transaction_id"`
	ScheduleID      int64     `json:"schedule_id"`
	ContractID      int64     `json:"contract_id"`
	AmountPaid      float64   `json:"amount_paid"`
	PenaltyPaid     float64   `json:"penalty_paid"`
	PaymentMethod   string    `json:"payment_method"`
	ReferenceNumber string    `json:"reference_number"`
	ReceiptNumber   string    `json:"receipt_number"`
	ProcessedBy     string    `json:"processed_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// WalkInPaymentRequest is the body of POST /contracts/payment/walk-in.
type WalkInPaymentRequest struct {
	ScheduleID      int64    `json:"schedule_id" validate:"required,gt=0"`
	AmountPaid      float64  `json:"amount_paid" validate:"required,gt=0"`
	PenaltyPaid     *float64 `json:"penalty_paid,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod   string   `json:"payment_method" validate:"required,oneof=cash check bank_transfer gcash"`
	ReferenceNumber string   `json:"reference_number,omitempty"`
	ProcessedBy     string   `json:"processed_by" validate:"required"`
}

// WalkInPaymentResult is returned after a recorded payment.
type WalkInPaymentResult struct {
	Transaction *PaymentTransaction `json:"transaction"`
	Schedule    *PaymentSchedule    `json:"schedule"`
	Penalty     float64             `json:"penalty_applied"`
}

// ScheduleDetails is returned by GET /contracts/payment/walk-in.
type ScheduleDetails struct {
	Schedule     *PaymentSchedule      `json:"schedule"`
	Contract     *Contract             `json:"contract"`
	Penalty      float64               `json:"current_penalty"`
	DaysOverdue  int                   `json:"days_overdue"`
	Transactions []*PaymentTransaction `json:"transactions"`
}
