package models

import "time"

// PlanChangeAudit is an append-only record of a committed plan change.
type PlanChangeAudit struct {
	ID            int64     `json:"audit_id"`
	ContractID    int64     `json:"contract_id"`
	OldPlanMonths int       `json:"old_plan_months"`
	NewPlanMonths int       `json:"new_plan_months"`
	OldMonthly    float64   `json:"old_monthly_installment"`
	NewMonthly    float64   `json:"new_monthly_installment"`
	Reason        string    `json:"reason"`
	ChangedBy     string    `json:"changed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidatePlanChangeRequest is the body of POST /contracts/{id}/validate-plan-change.
type ValidatePlanChangeRequest struct {
	NewPaymentPlanMonths int `json:"new_payment_plan_months" validate:"required,min=1,max=60"`
}

// ChangePlanRequest is the body of POST /contracts/{id}/change-plan.
type ChangePlanRequest struct {
	NewPaymentPlanMonths int    `json:"new_payment_plan_months" validate:"required,min=1,max=60"`
	Reason               string `json:"reason" validate:"required"`
	ChangedBy            string `json:"changed_by" validate:"required"`
}

// PlanSnapshot describes one side (current or proposed) of a plan change.
type PlanSnapshot struct {
	PaymentPlanMonths    int       `json:"payment_plan_months"`
	MonthlyInstallment   float64   `json:"monthly_installment"`
	RemainingBalance     float64   `json:"remaining_balance"`
	FinalInstallmentDate time.Time `json:"final_installment_date"`
}

// PlanChangeImpact summarizes what a plan change would do or did.
type PlanChangeImpact struct {
	MonthDelta       int     `json:"month_delta"`
	MonthlyDelta     float64 `json:"monthly_payment_delta"`
	SchedulesKept    int     `json:"schedules_kept"`
	SchedulesDeleted int     `json:"schedules_deleted"`
	SchedulesCreated int     `json:"schedules_created"`
}

// PlanChangePreview is the read-only validation response.
type PlanChangePreview struct {
	Allowed          bool              `json:"allowed"`
	ValidationErrors []string          `json:"validation_errors"`
	Warnings         []string          `json:"warnings"`
	CurrentPlan      *PlanSnapshot     `json:"current_plan,omitempty"`
	ProposedPlan     *PlanSnapshot     `json:"proposed_plan,omitempty"`
	Impact           *PlanChangeImpact `json:"impact,omitempty"`
}

// PlanChangeResult is the committed plan-change response.
type PlanChangeResult struct {
	Contract     *Contract          `json:"contract"`
	KeptPaid     []*PaymentSchedule `json:"kept_paid_schedules"`
	NewSchedules []*PaymentSchedule `json:"new_schedules"`
	Changes      *PlanChangeImpact  `json:"changes"`
}
