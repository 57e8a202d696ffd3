package service

import (
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/schedule"
	"github.com/google/uuid"
)

// refreshPenalty recomputes a schedule row's overdue state and persists
// it when it differs from the stored values. Fetching schedule details
// and initiating a payment both go through this, so a read can carry a
// write.
func (s *Service) refreshPenalty(row *models.PaymentSchedule) (daysOverdue int, penalty float64) {
	daysOverdue, penalty = schedule.PenaltyWithDefault(row, s.now(), s.defaultPenaltyRate())
	overdue := daysOverdue > 0
	if penalty != row.PenaltyAmount || daysOverdue != row.DaysOverdue || overdue != row.IsOverdue {
		if err := s.store.UpdateSchedulePenalty(row.ID, overdue, daysOverdue, penalty); err != nil {
			s.log.Warnf("Failed to persist penalty for schedule %d: %v", row.ID, err)
		}
		row.IsOverdue = overdue
		row.DaysOverdue = daysOverdue
		row.PenaltyAmount = penalty
	}
	return daysOverdue, penalty
}

// GetScheduleDetails returns a schedule row with its contract, the
// recomputed penalty, and the transaction history.
func (s *Service) GetScheduleDetails(scheduleID int64) (*models.ScheduleDetails, error) {
	row, err := s.store.FindScheduleByID(scheduleID)
	if err != nil {
		return nil, err
	}
	days, penalty := s.refreshPenalty(row)

	contract, err := s.store.FindContractByID(row.ContractID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.store.FindTransactionsBySchedule(scheduleID)
	if err != nil {
		return nil, err
	}
	return &models.ScheduleDetails{
		Schedule:     row,
		Contract:     contract,
		Penalty:      penalty,
		DaysOverdue:  days,
		Transactions: transactions,
	}, nil
}

// RecordWalkInPayment validates and records an in-person payment
// against an installment. The penalty is auto-computed when the request
// does not supply one. Payment application itself is delegated to the
// record_walk_in_payment stored procedure.
func (s *Service) RecordWalkInPayment(req *models.WalkInPaymentRequest) (*models.WalkInPaymentResult, error) {
	row, err := s.store.FindScheduleByID(req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if row.PaymentStatus == models.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: installment %d is already paid", ErrBusinessRule, row.InstallmentNumber)
	}

	_, penalty := s.refreshPenalty(row)

	penaltyPaid := penalty
	if req.PenaltyPaid != nil {
		penaltyPaid = *req.PenaltyPaid
	}
	if req.AmountPaid+penaltyPaid > row.RemainingAmount+penalty {
		return nil, fmt.Errorf("%w: payment of %.2f exceeds remaining balance plus penalty (%.2f)",
			ErrBusinessRule, req.AmountPaid+penaltyPaid, row.RemainingAmount+penalty)
	}

	transaction := &models.PaymentTransaction{
		ScheduleID:      row.ID,
		ContractID:      row.ContractID,
		AmountPaid:      req.AmountPaid,
		PenaltyPaid:     penaltyPaid,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		ReceiptNumber:   uuid.NewString(),
		ProcessedBy:     req.ProcessedBy,
	}
	if err := s.store.RecordWalkInPayment(transaction); err != nil {
		return nil, err
	}

	updated, err := s.store.FindScheduleByID(row.ID)
	if err != nil {
		// The payment went through; return the stale row rather than fail.
		s.log.Warnf("Failed to reload schedule %d after payment: %v", row.ID, err)
		updated = row
	}

	contract, err := s.store.FindContractByID(row.ContractID)
	if err == nil {
		s.notifyUser(contract.UserID, "Payment received",
			fmt.Sprintf("Payment of %.2f received for installment %d of contract #%d. Receipt %s.",
				req.AmountPaid, row.InstallmentNumber, contract.ID, transaction.ReceiptNumber))
	}

	s.log.Infof("Walk-in payment %.2f recorded for schedule %d (receipt %s)", req.AmountPaid, row.ID, transaction.ReceiptNumber)
	return &models.WalkInPaymentResult{
		Transaction: transaction,
		Schedule:    updated,
		Penalty:     penalty,
	}, nil
}
