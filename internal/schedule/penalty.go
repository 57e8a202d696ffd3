package schedule

import (
	"math"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

// Penalty computes the overdue-day count and the accrued penalty for a
// schedule row as of the given time, falling back to DefaultPenaltyRate
// for rows without their own rate.
func Penalty(row *models.PaymentSchedule, asOf time.Time) (daysOverdue int, amount float64) {
	return PenaltyWithDefault(row, asOf, DefaultPenaltyRate)
}

// PenaltyWithDefault computes the overdue-day count and the accrued
// penalty for a schedule row as of the given time. Accrual starts
// AccrualGraceDays after the due date (not at the row's stored
// grace_period_end_date). The row's own penalty_rate wins when set;
// otherwise defaultRate applies, typically the published reference
// rate. The monthly rate is pro-rated per day as rate/30 of the
// scheduled amount and the result is rounded half-up to two decimals.
func PenaltyWithDefault(row *models.PaymentSchedule, asOf time.Time, defaultRate float64) (daysOverdue int, amount float64) {
	graceEnd := row.DueDate.AddDate(0, 0, AccrualGraceDays)
	if !asOf.After(graceEnd) {
		return 0, 0
	}
	daysOverdue = int(math.Floor(asOf.Sub(graceEnd).Hours() / 24))
	if daysOverdue <= 0 {
		return 0, 0
	}
	rate := row.PenaltyRate
	if rate == 0 {
		rate = defaultRate
	}
	if rate == 0 {
		rate = DefaultPenaltyRate
	}
	amount = row.ScheduledAmount * (rate / 30) * float64(daysOverdue)
	amount = math.Round(amount*100) / 100
	return daysOverdue, amount
}
