package repository

import (
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
)

// RecordWalkInPayment invokes the record_walk_in_payment stored
// procedure, which applies the payment to the schedule row, updates the
// contract aggregates, and writes the ledger row. The procedure is an
// external collaborator; only its inputs and the returned transaction
// are part of this surface.
func (r *Repository) RecordWalkInPayment(t *models.PaymentTransaction) error {
	query := `
		SELECT transaction_id, created_at
		FROM futura.record_walk_in_payment($1, $2, $3, $4, $5, $6, $7)`
	err := r.db.QueryRow(query, t.ScheduleID, t.AmountPaid, t.PenaltyPaid, t.PaymentMethod,
		t.ReferenceNumber, t.ReceiptNumber, t.ProcessedBy).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record walk-in payment: %w", err)
	}
	return nil
}

// FindTransactionsBySchedule lists the ledger rows for a schedule.
func (r *Repository) FindTransactionsBySchedule(scheduleID int64) ([]*models.PaymentTransaction, error) {
	query := `
		SELECT transaction_id, schedule_id, contract_id, amount_paid, penalty_paid, payment_method,
			reference_number, receipt_number, processed_by, created_at
		FROM futura.payment_transactions
		WHERE schedule_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.PaymentTransaction
	for rows.Next() {
		t := &models.PaymentTransaction{}
		err := rows.Scan(&t.ID, &t.ScheduleID, &t.ContractID, &t.AmountPaid, &t.PenaltyPaid, &t.PaymentMethod,
			&t.ReferenceNumber, &t.ReceiptNumber, &t.ProcessedBy, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// InsertPlanChangeAudit appends a plan-change audit record.
func (r *Repository) InsertPlanChangeAudit(a *models.PlanChangeAudit) error {
	query := `
		INSERT INTO futura.plan_change_audits (contract_id, old_plan_months, new_plan_months,
			old_monthly_installment, new_monthly_installment, reason, changed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING audit_id, created_at`
	err := r.db.QueryRow(query, a.ContractID, a.OldPlanMonths, a.NewPlanMonths,
		a.OldMonthly, a.NewMonthly, a.Reason, a.ChangedBy).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert plan change audit: %w", err)
	}
	return nil
}
