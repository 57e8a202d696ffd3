package repository

import (
	"database/sql"
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/lib/pq"
)

const scheduleColumns = `schedule_id, contract_id, installment_number, installment_description, scheduled_amount,
	paid_amount, remaining_amount, due_date, grace_period_end_date, payment_status, is_overdue, days_overdue,
	penalty_rate, penalty_amount, created_at, updated_at`

func scanSchedules(rows *sql.Rows) ([]*models.PaymentSchedule, error) {
	var schedules []*models.PaymentSchedule
	for rows.Next() {
		s := &models.PaymentSchedule{}
		err := rows.Scan(&s.ID, &s.ContractID, &s.InstallmentNumber, &s.Description, &s.ScheduledAmount,
			&s.PaidAmount, &s.RemainingAmount, &s.DueDate, &s.GracePeriodEndDate, &s.PaymentStatus,
			&s.IsOverdue, &s.DaysOverdue, &s.PenaltyRate, &s.PenaltyAmount, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// InsertSchedules stores a batch of generated schedule rows for a
// contract and fills in their generated ids.
func (r *Repository) InsertSchedules(contractID int64, schedules []*models.PaymentSchedule) error {
	query := `
		INSERT INTO futura.payment_schedules (contract_id, installment_number, installment_description,
			scheduled_amount, paid_amount, remaining_amount, due_date, grace_period_end_date, payment_status,
			is_overdue, days_overdue, penalty_rate, penalty_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING schedule_id, created_at, updated_at`
	for _, s := range schedules {
		s.ContractID = contractID
		err := r.db.QueryRow(query, contractID, s.InstallmentNumber, s.Description,
			s.ScheduledAmount, s.PaidAmount, s.RemainingAmount, s.DueDate, s.GracePeriodEndDate, s.PaymentStatus,
			s.IsOverdue, s.DaysOverdue, s.PenaltyRate, s.PenaltyAmount).
			Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert schedule %d: %w", s.InstallmentNumber, err)
		}
	}
	return nil
}

// ReinsertSchedules writes back previously deleted rows with their
// original ids. Only used by plan-change compensation.
func (r *Repository) ReinsertSchedules(schedules []*models.PaymentSchedule) error {
	query := `
		INSERT INTO futura.payment_schedules (schedule_id, contract_id, installment_number, installment_description,
			scheduled_amount, paid_amount, remaining_amount, due_date, grace_period_end_date, payment_status,
			is_overdue, days_overdue, penalty_rate, penalty_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, CURRENT_TIMESTAMP)`
	for _, s := range schedules {
		_, err := r.db.Exec(query, s.ID, s.ContractID, s.InstallmentNumber, s.Description,
			s.ScheduledAmount, s.PaidAmount, s.RemainingAmount, s.DueDate, s.GracePeriodEndDate, s.PaymentStatus,
			s.IsOverdue, s.DaysOverdue, s.PenaltyRate, s.PenaltyAmount, s.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to reinsert schedule %d: %w", s.ID, err)
		}
	}
	return nil
}

// FindSchedulesByContract lists a contract's schedule rows ordered by
// installment number.
func (r *Repository) FindSchedulesByContract(contractID int64) ([]*models.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM futura.payment_schedules WHERE contract_id = $1 ORDER BY installment_number`
	rows, err := r.db.Query(query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()
	return scanSchedules(rows)
}

// FindScheduleByID retrieves a single schedule row
func (r *Repository) FindScheduleByID(id int64) (*models.PaymentSchedule, error) {
	s := &models.PaymentSchedule{}
	query := `SELECT ` + scheduleColumns + ` FROM futura.payment_schedules WHERE schedule_id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&s.ID, &s.ContractID, &s.InstallmentNumber, &s.Description, &s.ScheduledAmount,
			&s.PaidAmount, &s.RemainingAmount, &s.DueDate, &s.GracePeriodEndDate, &s.PaymentStatus,
			&s.IsOverdue, &s.DaysOverdue, &s.PenaltyRate, &s.PenaltyAmount, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return s, nil
}

// DeleteSchedulesByIDs removes schedule rows by id.
func (r *Repository) DeleteSchedulesByIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(`DELETE FROM futura.payment_schedules WHERE schedule_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to delete schedules: %w", err)
	}
	return nil
}

// DeleteSchedulesByContract removes every schedule row of a contract.
// Only used to roll back a partially created contract.
func (r *Repository) DeleteSchedulesByContract(contractID int64) error {
	if _, err := r.db.Exec(`DELETE FROM futura.payment_schedules WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("failed to delete contract schedules: %w", err)
	}
	return nil
}

// UpdateSchedulePenalty persists a recomputed overdue state onto a row.
func (r *Repository) UpdateSchedulePenalty(id int64, isOverdue bool, daysOverdue int, penalty float64) error {
	_, err := r.db.Exec(`
		UPDATE futura.payment_schedules
		SET is_overdue = $2, days_overdue = $3, penalty_amount = $4, updated_at = CURRENT_TIMESTAMP
		WHERE schedule_id = $1`, id, isOverdue, daysOverdue, penalty)
	if err != nil {
		return fmt.Errorf("failed to update schedule penalty: %w", err)
	}
	return nil
}

// FindOverdueCandidates lists pending rows past a due-date cutoff across
// all contracts, for the nightly sweeper.
func (r *Repository) FindOverdueCandidates() ([]*models.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM futura.payment_schedules
		WHERE payment_status = 'pending' AND due_date < CURRENT_TIMESTAMP
		ORDER BY contract_id, installment_number`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue candidates: %w", err)
	}
	defer rows.Close()
	return scanSchedules(rows)
}
