package service

import (
	"errors"
	"fmt"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/repository"
	"github.com/futurahomes/backoffice/internal/schedule"
)

// CreateReservation records a new property reservation.
func (s *Service) CreateReservation(req *models.CreateReservationRequest) (*models.Reservation, error) {
	res := &models.Reservation{
		PropertyID:        req.PropertyID,
		UserID:            req.UserID,
		ReservationStatus: models.ReservationPending,
		ReservationFee:    req.ReservationFee,
		TotalPrice:        req.TotalPrice,
		DownpaymentTotal:  req.DownpaymentTotal,
	}
	if err := s.store.CreateReservation(res); err != nil {
		return nil, err
	}
	s.notifyRole(models.RoleAdmin, "New reservation", fmt.Sprintf("Reservation #%d placed for property %d", res.ID, res.PropertyID))
	return res, nil
}

// ApproveReservation moves a reservation to approved.
func (s *Service) ApproveReservation(id int64) (*models.Reservation, error) {
	res, err := s.store.FindReservationByID(id)
	if err != nil {
		return nil, err
	}
	if res.ReservationStatus != models.ReservationPending {
		return nil, fmt.Errorf("%w: reservation is %s, only pending reservations can be approved", ErrBusinessRule, res.ReservationStatus)
	}
	if err := s.store.UpdateReservationStatus(id, models.ReservationApproved); err != nil {
		return nil, err
	}
	res.ReservationStatus = models.ReservationApproved
	s.notifyUser(res.UserID, "Reservation approved", fmt.Sprintf("Your reservation #%d has been approved. A contract can now be prepared.", res.ID))
	return res, nil
}

// CreateContract converts an approved reservation into a contract with
// an initial installment schedule amortizing the downpayment. If the
// schedule insert fails, the freshly created contract row is deleted
// again (creation rollback).
func (s *Service) CreateContract(req *models.CreateContractRequest) (*models.ContractDetails, error) {
	if req.PaymentPlanMonths < schedule.MinPlanMonths || req.PaymentPlanMonths > schedule.MaxPlanMonths {
		return nil, fmt.Errorf("%w: payment_plan_months must be between %d and %d", ErrBusinessRule, schedule.MinPlanMonths, schedule.MaxPlanMonths)
	}

	res, err := s.store.FindReservationByID(req.ReservationID)
	if err != nil {
		return nil, err
	}
	if res.ReservationStatus != models.ReservationApproved {
		return nil, fmt.Errorf("reservation %d is not approved: %w", res.ID, repository.ErrNotFound)
	}
	existing, err := s.store.FindContractByReservation(req.ReservationID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a contract already exists for reservation %d", ErrBusinessRule, req.ReservationID)
	}

	principal := res.DownpaymentTotal
	start := s.now().AddDate(0, 1, 0)
	contract := &models.Contract{
		ReservationID:        res.ID,
		PropertyID:           res.PropertyID,
		UserID:               res.UserID,
		TotalContractPrice:   res.TotalPrice,
		DownpaymentTotal:     res.DownpaymentTotal,
		PaymentPlanMonths:    req.PaymentPlanMonths,
		MonthlyInstallment:   principal / float64(req.PaymentPlanMonths),
		RemainingBalance:     principal,
		ContractStatus:       models.ContractStatusActive,
		DownpaymentStatus:    models.DownpaymentInProgress,
		FinalInstallmentDate: start.AddDate(0, req.PaymentPlanMonths-1, 0),
	}
	if err := s.store.CreateContract(contract); err != nil {
		return nil, err
	}

	rows := schedule.Generate(principal, req.PaymentPlanMonths, start, 1)
	if err := s.store.InsertSchedules(contract.ID, rows); err != nil {
		// Rows are inserted one by one, so a mid-insert failure leaves
		// earlier rows behind. Sweep them before deleting the contract.
		if rbErr := s.store.DeleteSchedulesByContract(contract.ID); rbErr != nil {
			s.log.Errorf("Failed to roll back schedules of contract %d after insert failure: %v", contract.ID, rbErr)
		}
		if rbErr := s.store.DeleteContract(contract.ID); rbErr != nil {
			s.log.Errorf("Failed to roll back contract %d after schedule insert failure: %v", contract.ID, rbErr)
		}
		return nil, fmt.Errorf("failed to create payment schedules: %w", err)
	}

	if err := s.store.UpdateReservationStatus(res.ID, models.ReservationConverted); err != nil {
		s.log.Warnf("Failed to mark reservation %d converted: %v", res.ID, err)
	}

	s.notifyUser(contract.UserID, "Contract created",
		fmt.Sprintf("Contract #%d created with a %d-month downpayment plan of %.2f per month.",
			contract.ID, contract.PaymentPlanMonths, contract.MonthlyInstallment))

	s.log.Infof("Contract %d created for reservation %d (%d months)", contract.ID, res.ID, req.PaymentPlanMonths)
	return &models.ContractDetails{
		Contract:  contract,
		Schedules: rows,
		Summary:   schedule.Summarize(rows),
	}, nil
}

// GetContract returns a contract with its schedules and summary.
func (s *Service) GetContract(id int64) (*models.ContractDetails, error) {
	contract, err := s.store.FindContractByID(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.FindSchedulesByContract(id)
	if err != nil {
		return nil, err
	}
	return &models.ContractDetails{
		Contract:  contract,
		Schedules: rows,
		Summary:   schedule.Summarize(rows),
	}, nil
}

// ListContracts lists a user's contracts.
func (s *Service) ListContracts(userID int64) ([]*models.Contract, error) {
	return s.store.ListContractsByUser(userID)
}

// ValidatePlanChange is the read-only plan-change preview.
func (s *Service) ValidatePlanChange(contractID int64, newMonths int) (*models.PlanChangePreview, error) {
	if newMonths < schedule.MinPlanMonths || newMonths > schedule.MaxPlanMonths {
		return nil, fmt.Errorf("%w: new_payment_plan_months must be between %d and %d", ErrBusinessRule, schedule.MinPlanMonths, schedule.MaxPlanMonths)
	}
	contract, err := s.store.FindContractByID(contractID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.FindSchedulesByContract(contractID)
	if err != nil {
		return nil, err
	}
	res := schedule.ValidatePlanChange(contract, rows, newMonths, s.now())
	return &models.PlanChangePreview{
		Allowed:          res.Allowed,
		ValidationErrors: res.Errors,
		Warnings:         res.Warnings,
		CurrentPlan:      res.Current,
		ProposedPlan:     res.Proposed,
		Impact:           res.Impact,
	}, nil
}

// ChangePlan replaces a contract's pending installments with a freshly
// generated schedule sized to the remaining balance and the new month
// count. Paid rows are kept untouched and the new series is numbered
// after them.
//
// The update/delete/insert sequence is not wrapped in a transaction.
// On failure, previously captured values are written back best-effort;
// a failure during that compensation leaves inconsistent state and is
// logged and surfaced, not retried.
func (s *Service) ChangePlan(contractID int64, req *models.ChangePlanRequest) (*models.PlanChangeResult, error) {
	newMonths := req.NewPaymentPlanMonths
	if newMonths < schedule.MinPlanMonths || newMonths > schedule.MaxPlanMonths {
		return nil, fmt.Errorf("%w: new_payment_plan_months must be between %d and %d", ErrBusinessRule, schedule.MinPlanMonths, schedule.MaxPlanMonths)
	}

	contract, err := s.store.FindContractByID(contractID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.FindSchedulesByContract(contractID)
	if err != nil {
		return nil, err
	}

	validation := schedule.ValidatePlanChange(contract, rows, newMonths, s.now())
	if !validation.Allowed {
		return nil, &PlanChangeError{Errors: validation.Errors}
	}

	paid, pending := schedule.Partition(rows)
	newMonthly := contract.RemainingBalance / float64(newMonths)
	start := schedule.SeriesStart(pending, s.now())
	finalDate := start.AddDate(0, newMonths-1, 0)

	// Captured for compensation.
	oldMonths := contract.PaymentPlanMonths
	oldMonthly := contract.MonthlyInstallment
	oldFinal := contract.FinalInstallmentDate

	if err := s.store.UpdateContractPlan(contract.ID, newMonths, newMonthly, finalDate); err != nil {
		return nil, err
	}

	pendingIDs := make([]int64, 0, len(pending))
	for _, row := range pending {
		pendingIDs = append(pendingIDs, row.ID)
	}
	if err := s.store.DeleteSchedulesByIDs(pendingIDs); err != nil {
		if rbErr := s.store.UpdateContractPlan(contract.ID, oldMonths, oldMonthly, oldFinal); rbErr != nil {
			s.log.Errorf("Compensation failed for contract %d: could not restore plan fields: %v", contract.ID, rbErr)
			return nil, fmt.Errorf("failed to delete pending schedules and compensation failed, contract state may be inconsistent: %w", err)
		}
		return nil, fmt.Errorf("failed to delete pending schedules: %w", err)
	}

	newRows := schedule.Generate(contract.RemainingBalance, newMonths, start, len(paid)+1)
	if err := s.store.InsertSchedules(contract.ID, newRows); err != nil {
		if rbErr := s.store.UpdateContractPlan(contract.ID, oldMonths, oldMonthly, oldFinal); rbErr != nil {
			s.log.Errorf("Compensation failed for contract %d: could not restore plan fields: %v", contract.ID, rbErr)
		}
		if rbErr := s.store.ReinsertSchedules(pending); rbErr != nil {
			s.log.Errorf("Compensation failed for contract %d: could not restore deleted schedules: %v", contract.ID, rbErr)
			return nil, fmt.Errorf("failed to insert new schedules and compensation failed, contract state may be inconsistent: %w", err)
		}
		return nil, fmt.Errorf("failed to insert new schedules: %w", err)
	}

	audit := &models.PlanChangeAudit{
		ContractID:    contract.ID,
		OldPlanMonths: oldMonths,
		NewPlanMonths: newMonths,
		OldMonthly:    oldMonthly,
		NewMonthly:    newMonthly,
		Reason:        req.Reason,
		ChangedBy:     req.ChangedBy,
	}
	if err := s.store.InsertPlanChangeAudit(audit); err != nil {
		s.log.Warnf("Failed to write plan change audit for contract %d: %v", contract.ID, err)
	}

	contract.PaymentPlanMonths = newMonths
	contract.MonthlyInstallment = newMonthly
	contract.FinalInstallmentDate = finalDate

	s.notifyUser(contract.UserID, "Payment plan changed",
		fmt.Sprintf("Contract #%d moved from %d to %d months; monthly installment is now %.2f.",
			contract.ID, oldMonths, newMonths, newMonthly))

	s.log.Infof("Contract %d plan changed %d -> %d months by %s", contract.ID, oldMonths, newMonths, req.ChangedBy)
	return &models.PlanChangeResult{
		Contract:     contract,
		KeptPaid:     paid,
		NewSchedules: newRows,
		Changes: &models.PlanChangeImpact{
			MonthDelta:       newMonths - oldMonths,
			MonthlyDelta:     newMonthly - oldMonthly,
			SchedulesKept:    len(paid),
			SchedulesDeleted: len(pending),
			SchedulesCreated: len(newRows),
		},
	}, nil
}
