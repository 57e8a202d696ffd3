package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

// ValidationResult is the outcome of a plan-change validation. Every
// failing gate contributes its own error; warnings never block.
type ValidationResult struct {
	Allowed  bool
	Errors   []string
	Warnings []string
	Current  *models.PlanSnapshot
	Proposed *models.PlanSnapshot
	Impact   *models.PlanChangeImpact
}

// Partition splits schedule rows into paid and pending sets, pending
// sorted by due date.
func Partition(rows []*models.PaymentSchedule) (paid, pending []*models.PaymentSchedule) {
	for _, row := range rows {
		if row.PaymentStatus == models.PaymentStatusPaid {
			paid = append(paid, row)
		} else {
			pending = append(pending, row)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})
	return paid, pending
}

// SeriesStart returns the start date a regenerated series would use:
// the due date of the earliest pending row, or one month from now when
// nothing is pending.
func SeriesStart(pending []*models.PaymentSchedule, now time.Time) time.Time {
	if len(pending) > 0 {
		return pending[0].DueDate
	}
	return now.AddDate(0, 1, 0)
}

// ValidatePlanChange applies the plan-change gates to a contract and its
// schedules. All gates are evaluated; the result carries every error at
// once. Overdue rows only produce a warning. The proposed plan is an
// informational projection that callers recompute at commit time.
func ValidatePlanChange(contract *models.Contract, rows []*models.PaymentSchedule, newMonths int, now time.Time) *ValidationResult {
	res := &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if contract.ContractStatus != models.ContractStatusActive {
		res.Errors = append(res.Errors, "only active contracts can be modified")
	}
	if contract.DownpaymentStatus == models.DownpaymentCompleted || contract.DownpaymentStatus == models.DownpaymentDefaulted {
		res.Errors = append(res.Errors, fmt.Sprintf("downpayment is %s; plan can no longer be changed", contract.DownpaymentStatus))
	}

	paid, pending := Partition(rows)
	if len(rows) > 0 && len(pending) == 0 {
		res.Errors = append(res.Errors, "all installments already paid")
	}
	if newMonths == contract.PaymentPlanMonths {
		res.Errors = append(res.Errors, fmt.Sprintf("contract already has this plan (%d months)", newMonths))
	}

	overdue := 0
	for _, row := range pending {
		if row.IsOverdue {
			overdue++
		}
	}
	if overdue > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d installment(s) are overdue; penalties will carry into the new plan", overdue))
	}

	res.Allowed = len(res.Errors) == 0

	res.Current = &models.PlanSnapshot{
		PaymentPlanMonths:    contract.PaymentPlanMonths,
		MonthlyInstallment:   contract.MonthlyInstallment,
		RemainingBalance:     contract.RemainingBalance,
		FinalInstallmentDate: contract.FinalInstallmentDate,
	}

	start := SeriesStart(pending, now)
	newMonthly := contract.RemainingBalance / float64(newMonths)
	res.Proposed = &models.PlanSnapshot{
		PaymentPlanMonths:    newMonths,
		MonthlyInstallment:   newMonthly,
		RemainingBalance:     contract.RemainingBalance,
		FinalInstallmentDate: start.AddDate(0, newMonths-1, 0),
	}
	res.Impact = &models.PlanChangeImpact{
		MonthDelta:       newMonths - contract.PaymentPlanMonths,
		MonthlyDelta:     newMonthly - contract.MonthlyInstallment,
		SchedulesKept:    len(paid),
		SchedulesDeleted: len(pending),
		SchedulesCreated: newMonths,
	}
	return res
}
