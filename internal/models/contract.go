package models

import "time"

// Contract statuses.
const (
	ContractStatusActive    = "active"
	ContractStatusCancelled = "cancelled"
	ContractStatusCompleted = "completed"
)

// Downpayment statuses.
const (
	DownpaymentInProgress = "in_progress"
	DownpaymentCompleted  = "completed"
	DownpaymentDefaulted  = "defaulted"
)

// Contract represents a property sale agreement with an amortized
// downpayment schedule.
type Contract struct {
	ID                   int64     `json:"contract_id"`
	ReservationID        int64     `json:"reservation_id"`
	PropertyID           int64     `json:"property_id"`
	UserID               int64     `json:"user_id"`
	TotalContractPrice   float64   `json:"total_contract_price"`
	DownpaymentTotal     float64   `json:"downpayment_total"`
	PaymentPlanMonths    int       `json:"payment_plan_months"`
	MonthlyInstallment   float64   `json:"monthly_installment"`
	RemainingBalance     float64   `json:"remaining_balance"`
	ContractStatus       string    `json:"contract_status"`
	DownpaymentStatus    string    `json:"downpayment_status"`
	FinalInstallmentDate time.Time `json:"final_installment_date"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateContractRequest is the body of POST /contracts/create.
type CreateContractRequest struct {
	ReservationID     int64 `json:"reservation_id" validate:"required,gt=0"`
	PaymentPlanMonths int   `json:"payment_plan_months" validate:"required,min=1,max=60"`
}

// ContractDetails bundles a contract with its schedules for responses.
type ContractDetails struct {
	Contract  *Contract          `json:"contract"`
	Schedules []*PaymentSchedule `json:"schedules"`
	Summary   *PaymentSummary    `json:"summary"`
}
