package models

import "time"

// Payment statuses for a schedule row.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// PaymentSchedule represents one scheduled installment within a
// contract's payment plan.
type PaymentSchedule struct {
	ID                 int64     `json:"schedule_id"`
	ContractID         int64     `json:"contract_id"`
	InstallmentNumber  int       `json:"installment_number"`
	Description        string    `json:"installment_description"`
	ScheduledAmount    float64   `json:"scheduled_amount"`
	PaidAmount         float64   `json:"paid_amount"`
	RemainingAmount    float64   `json:"remaining_amount"`
	DueDate            time.Time `json:"due_date"`
	GracePeriodEndDate time.Time `json:"grace_period_end_date"`
	PaymentStatus      string    `json:"payment_status"`
	IsOverdue          bool      `json:"is_overdue"`
	DaysOverdue        int       `json:"days_overdue"`
	PenaltyRate        float64   `json:"penalty_rate,omitempty"`
	PenaltyAmount      float64   `json:"penalty_amount"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PaymentSummary aggregates a contract's schedule rows.
type PaymentSummary struct {
	TotalInstallments   int     `json:"total_installments"`
	PaidInstallments    int     `json:"paid_installments"`
	PendingInstallments int     `json:"pending_installments"`
	OverdueInstallments int     `json:"overdue_installments"`
	TotalScheduled      float64 `json:"total_scheduled"`
	TotalPaid           float64 `json:"total_paid"`
	TotalRemaining      float64 `json:"total_remaining"`
	TotalPenalties      float64 `json:"total_penalties"`
}
