package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesRequestedRows(t *testing.T) {
	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	for _, months := range []int{1, 3, 12, 60} {
		rows := Generate(12000, months, start, 1)
		require.Len(t, rows, months, "months=%d", months)

		for i, row := range rows {
			assert.Equal(t, i+1, row.InstallmentNumber)
			assert.Equal(t, start.AddDate(0, i, 0), row.DueDate)
			assert.Equal(t, row.DueDate.AddDate(0, 0, StoredGraceDays), row.GracePeriodEndDate)
			assert.Equal(t, models.PaymentStatusPending, row.PaymentStatus)
			assert.Zero(t, row.PaidAmount)
			assert.Equal(t, row.ScheduledAmount, row.RemainingAmount)
			assert.False(t, row.IsOverdue)
			assert.Zero(t, row.DaysOverdue)
			assert.Zero(t, row.PenaltyAmount)
		}
	}
}

func TestGenerateNumberingContinuesAfterPaidRows(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := Generate(6000, 6, start, 3)

	require.Len(t, rows, 6)
	for i, row := range rows {
		assert.Equal(t, 3+i, row.InstallmentNumber)
		assert.Equal(t, fmt.Sprintf("Monthly Payment %d of 8", 3+i), row.Description)
	}
}

// The per-row amount is principal/months with no residual-cent
// reconciliation, so the sum can drift from the principal by float
// error. The drift is expected; it just has to stay tiny.
func TestGenerateSumDrift(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := Generate(10000, 7, start, 1)

	var sum float64
	for _, row := range rows {
		sum += row.ScheduledAmount
	}
	assert.InDelta(t, 10000, sum, 1e-6)
}

func TestGenerateDueDatesUseCalendarMonths(t *testing.T) {
	// Jan 31 start: calendar-month increments normalize, they do not
	// step by fixed 30-day periods.
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := Generate(3000, 3, start, 1)

	require.Len(t, rows, 3)
	assert.Equal(t, start, rows[0].DueDate)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), rows[1].DueDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), rows[2].DueDate)
}

func TestGenerateNineThousandOverThreeMonths(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rows := Generate(9000, 3, start, 1)

	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, 3000.0, row.ScheduledAmount)
		assert.Equal(t, start.AddDate(0, i, 0), row.DueDate)
		assert.Equal(t, row.DueDate.AddDate(0, 0, 7), row.GracePeriodEndDate)
		assert.Equal(t, fmt.Sprintf("Monthly Payment %d of 3", i+1), row.Description)
	}
}

func TestSummarize(t *testing.T) {
	rows := []*models.PaymentSchedule{
		{PaymentStatus: models.PaymentStatusPaid, ScheduledAmount: 1000, PaidAmount: 1000},
		{PaymentStatus: models.PaymentStatusPending, ScheduledAmount: 1000, RemainingAmount: 1000, IsOverdue: true, PenaltyAmount: 4.67},
		{PaymentStatus: models.PaymentStatusPending, ScheduledAmount: 1000, RemainingAmount: 1000},
	}

	s := Summarize(rows)
	assert.Equal(t, 3, s.TotalInstallments)
	assert.Equal(t, 1, s.PaidInstallments)
	assert.Equal(t, 2, s.PendingInstallments)
	assert.Equal(t, 1, s.OverdueInstallments)
	assert.Equal(t, 3000.0, s.TotalScheduled)
	assert.Equal(t, 1000.0, s.TotalPaid)
	assert.Equal(t, 2000.0, s.TotalRemaining)
	assert.Equal(t, 4.67, s.TotalPenalties)
}
