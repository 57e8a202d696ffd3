package jobs

import (
	"time"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/schedule"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the sweeper needs.
type Store interface {
	FindOverdueCandidates() ([]*models.PaymentSchedule, error)
	UpdateSchedulePenalty(id int64, isOverdue bool, daysOverdue int, penalty float64) error
	FindContractByID(id int64) (*models.Contract, error)
	FindUserByID(id int64) (*models.User, error)
}

// Mailer sends the reminder emails.
type Mailer interface {
	SendPaymentReminder(to, username string, dueDate time.Time, amount, penalty float64, isOverdue bool) error
}

// RateSource supplies the monthly penalty rate for rows without one of
// their own.
type RateSource interface {
	EffectiveRate() float64
}

// Sweeper walks pending installments past their accrual grace window,
// persists the recomputed overdue state, and emails a reminder for each
// newly overdue installment. Reminder failures are logged only.
type Sweeper struct {
	store  Store
	mailer Mailer
	rates  RateSource
	log    *logrus.Logger
	now    func() time.Time
}

// NewSweeper initializes a new sweeper. rates may be nil, in which case
// the built-in default penalty rate applies.
func NewSweeper(store Store, mailer Mailer, rates RateSource, log *logrus.Logger) *Sweeper {
	return &Sweeper{store: store, mailer: mailer, rates: rates, log: log, now: time.Now}
}

// Start schedules the sweep on the given cron spec and returns the
// running cron instance.
func (s *Sweeper) Start(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.Sweep); err != nil {
		return nil, err
	}
	c.Start()
	s.log.Infof("Overdue sweeper scheduled: %q", spec)
	return c, nil
}

// Sweep runs one pass over all overdue candidates.
func (s *Sweeper) Sweep() {
	rows, err := s.store.FindOverdueCandidates()
	if err != nil {
		s.log.Errorf("Overdue sweep failed to list candidates: %v", err)
		return
	}

	asOf := s.now()
	// One feed lookup per pass, not per row.
	defaultRate := schedule.DefaultPenaltyRate
	if s.rates != nil {
		defaultRate = s.rates.EffectiveRate()
	}
	updated, notified := 0, 0
	for _, row := range rows {
		days, penalty := schedule.PenaltyWithDefault(row, asOf, defaultRate)
		if days == 0 {
			continue
		}
		newlyOverdue := !row.IsOverdue
		if penalty != row.PenaltyAmount || days != row.DaysOverdue || newlyOverdue {
			if err := s.store.UpdateSchedulePenalty(row.ID, true, days, penalty); err != nil {
				s.log.Errorf("Overdue sweep failed to update schedule %d: %v", row.ID, err)
				continue
			}
			updated++
		}
		if newlyOverdue && s.remind(row, penalty) {
			notified++
		}
	}
	s.log.Infof("Overdue sweep: %d candidates, %d updated, %d reminders sent", len(rows), updated, notified)
}

func (s *Sweeper) remind(row *models.PaymentSchedule, penalty float64) bool {
	contract, err := s.store.FindContractByID(row.ContractID)
	if err != nil {
		s.log.Warnf("Overdue sweep: contract %d lookup failed: %v", row.ContractID, err)
		return false
	}
	user, err := s.store.FindUserByID(contract.UserID)
	if err != nil {
		s.log.Warnf("Overdue sweep: user %d lookup failed: %v", contract.UserID, err)
		return false
	}
	if err := s.mailer.SendPaymentReminder(user.Email, user.Username, row.DueDate, row.ScheduledAmount, penalty, true); err != nil {
		s.log.Warnf("Overdue sweep: reminder to %s failed: %v", user.Email, err)
		return false
	}
	return true
}
