package schedule

import (
	"fmt"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

// Plan bounds and grace windows.
const (
	MinPlanMonths = 1
	MaxPlanMonths = 60

	// StoredGraceDays is written onto each generated row as
	// grace_period_end_date. AccrualGraceDays is the separate window used
	// by the penalty calculation. The two are maintained independently.
	StoredGraceDays  = 7
	AccrualGraceDays = 3

	// DefaultPenaltyRate is the monthly penalty rate applied when a
	// schedule row carries no rate of its own.
	DefaultPenaltyRate = 0.02
)

// Generate produces `months` installment rows amortizing `principal`.
// Row i (0-based) is due at start + i calendar months; the stored grace
// period ends StoredGraceDays after the due date. Numbering starts at
// startingNumber so a regenerated series continues after already-paid
// installments. The per-row amount is principal / months with no
// residual-cent reconciliation; the last row does not absorb rounding
// drift.
func Generate(principal float64, months int, start time.Time, startingNumber int) []*models.PaymentSchedule {
	monthly := principal / float64(months)
	total := startingNumber - 1 + months

	rows := make([]*models.PaymentSchedule, 0, months)
	for i := 0; i < months; i++ {
		due := start.AddDate(0, i, 0)
		number := startingNumber + i
		rows = append(rows, &models.PaymentSchedule{
			InstallmentNumber:  number,
			Description:        fmt.Sprintf("Monthly Payment %d of %d", number, total),
			ScheduledAmount:    monthly,
			PaidAmount:         0,
			RemainingAmount:    monthly,
			DueDate:            due,
			GracePeriodEndDate: due.AddDate(0, 0, StoredGraceDays),
			PaymentStatus:      models.PaymentStatusPending,
			IsOverdue:          false,
			DaysOverdue:        0,
			PenaltyAmount:      0,
		})
	}
	return rows
}

// Summarize aggregates a contract's schedule rows.
func Summarize(rows []*models.PaymentSchedule) *models.PaymentSummary {
	s := &models.PaymentSummary{TotalInstallments: len(rows)}
	for _, row := range rows {
		s.TotalScheduled += row.ScheduledAmount
		s.TotalPaid += row.PaidAmount
		s.TotalPenalties += row.PenaltyAmount
		switch row.PaymentStatus {
		case models.PaymentStatusPaid:
			s.PaidInstallments++
		default:
			s.PendingInstallments++
			s.TotalRemaining += row.RemainingAmount
			if row.IsOverdue {
				s.OverdueInstallments++
			}
		}
	}
	return s
}
