package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

const contractColumns = `contract_id, reservation_id, property_id, user_id, total_contract_price, downpayment_total,
	payment_plan_months, monthly_installment, remaining_balance, contract_status, downpayment_status,
	final_installment_date, created_at, updated_at`

func scanContract(row *sql.Row) (*models.Contract, error) {
	c := &models.Contract{}
	err := row.Scan(&c.ID, &c.ReservationID, &c.PropertyID, &c.UserID, &c.TotalContractPrice, &c.DownpaymentTotal,
		&c.PaymentPlanMonths, &c.MonthlyInstallment, &c.RemainingBalance, &c.ContractStatus, &c.DownpaymentStatus,
		&c.FinalInstallmentDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateContract creates a new contract in the database
func (r *Repository) CreateContract(c *models.Contract) error {
	query := `
		INSERT INTO futura.contracts (reservation_id, property_id, user_id, total_contract_price, downpayment_total,
			payment_plan_months, monthly_installment, remaining_balance, contract_status, downpayment_status,
			final_installment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING contract_id, created_at, updated_at`
	err := r.db.QueryRow(query, c.ReservationID, c.PropertyID, c.UserID, c.TotalContractPrice, c.DownpaymentTotal,
		c.PaymentPlanMonths, c.MonthlyInstallment, c.RemainingBalance, c.ContractStatus, c.DownpaymentStatus,
		c.FinalInstallmentDate).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

// FindContractByID retrieves a contract by id
func (r *Repository) FindContractByID(id int64) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM futura.contracts WHERE contract_id = $1`
	c, err := scanContract(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contract %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, nil
}

// FindContractByReservation retrieves the contract created for a
// reservation, if any.
func (r *Repository) FindContractByReservation(reservationID int64) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM futura.contracts WHERE reservation_id = $1`
	c, err := scanContract(r.db.QueryRow(query, reservationID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contract for reservation %d: %w", reservationID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract by reservation: %w", err)
	}
	return c, nil
}

// ListContractsByUser lists all contracts belonging to a user.
func (r *Repository) ListContractsByUser(userID int64) ([]*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM futura.contracts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*models.Contract
	for rows.Next() {
		c := &models.Contract{}
		err := rows.Scan(&c.ID, &c.ReservationID, &c.PropertyID, &c.UserID, &c.TotalContractPrice, &c.DownpaymentTotal,
			&c.PaymentPlanMonths, &c.MonthlyInstallment, &c.RemainingBalance, &c.ContractStatus, &c.DownpaymentStatus,
			&c.FinalInstallmentDate, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// UpdateContractPlan writes the plan fields touched by a plan change.
// It is also used to write back captured old values during compensation.
func (r *Repository) UpdateContractPlan(id int64, months int, monthly float64, finalDate time.Time) error {
	res, err := r.db.Exec(`
		UPDATE futura.contracts
		SET payment_plan_months = $2, monthly_installment = $3, final_installment_date = $4, updated_at = CURRENT_TIMESTAMP
		WHERE contract_id = $1`, id, months, monthly, finalDate)
	if err != nil {
		return fmt.Errorf("failed to update contract plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("contract %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteContract hard-deletes a contract. Only used to roll back a
// partially created contract.
func (r *Repository) DeleteContract(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM futura.contracts WHERE contract_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}
