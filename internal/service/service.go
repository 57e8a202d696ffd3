package service

import (
	"errors"
	"time"

	"github.com/futurahomes/backoffice/internal/config"
	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/ratelimit"
	"github.com/futurahomes/backoffice/internal/schedule"
	"github.com/sirupsen/logrus"
)

// Business-rule sentinels. Handlers map these onto HTTP statuses.
var (
	ErrBusinessRule = errors.New("business rule violation")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// PlanChangeError carries the itemized gate failures of a rejected plan
// change.
type PlanChangeError struct {
	Errors []string
}

func (e *PlanChangeError) Error() string {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return "plan change not allowed"
}

// Store is the persistence surface the service layer depends on.
// *repository.Repository satisfies it.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	UpdateUserProfile(id int64, username, phone string) error
	FindEmailsByRole(role string) ([]string, error)

	CreateReservation(res *models.Reservation) error
	FindReservationByID(id int64) (*models.Reservation, error)
	UpdateReservationStatus(id int64, status string) error

	CreateContract(c *models.Contract) error
	FindContractByID(id int64) (*models.Contract, error)
	FindContractByReservation(reservationID int64) (*models.Contract, error)
	ListContractsByUser(userID int64) ([]*models.Contract, error)
	UpdateContractPlan(id int64, months int, monthly float64, finalDate time.Time) error
	DeleteContract(id int64) error

	InsertSchedules(contractID int64, schedules []*models.PaymentSchedule) error
	ReinsertSchedules(schedules []*models.PaymentSchedule) error
	FindSchedulesByContract(contractID int64) ([]*models.PaymentSchedule, error)
	FindScheduleByID(id int64) (*models.PaymentSchedule, error)
	DeleteSchedulesByIDs(ids []int64) error
	DeleteSchedulesByContract(contractID int64) error
	UpdateSchedulePenalty(id int64, isOverdue bool, daysOverdue int, penalty float64) error

	RecordWalkInPayment(t *models.PaymentTransaction) error
	FindTransactionsBySchedule(scheduleID int64) ([]*models.PaymentTransaction, error)
	InsertPlanChangeAudit(a *models.PlanChangeAudit) error

	InsertNotification(n *models.Notification) error
	ListNotifications(userID int64, role string) ([]*models.Notification, error)
	MarkNotificationRead(id int64) error

	InsertInquiry(q *models.Inquiry) error
	CountRecentInquiries(userID int64, subject string, since time.Time) (int, error)
	ListInquiries(userID int64) ([]*models.Inquiry, error)
	FindInquiryByID(id int64) (*models.Inquiry, error)
	UpdateInquiryStatus(id int64, status string) error
}

// Mailer sends operational emails. Failures are logged by callers and
// never fail the primary operation.
type Mailer interface {
	SendPaymentReminder(to, username string, dueDate time.Time, amount, penalty float64, isOverdue bool) error
	SendComplaintNotification(to, subject, message string) error
}

// RateSource supplies the current monthly penalty rate used for rows
// that carry no rate of their own. *ratefeed.Client satisfies it.
type RateSource interface {
	EffectiveRate() float64
}

// Service handles business logic
type Service struct {
	store   Store
	log     *logrus.Logger
	config  *config.Config
	mailer  Mailer
	limiter *ratelimit.Limiter
	rates   RateSource
	now     func() time.Time
}

// NewService initializes a new service. rates may be nil, in which case
// the built-in default penalty rate applies.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer Mailer, limiter *ratelimit.Limiter, rates RateSource) *Service {
	return &Service{
		store:   store,
		log:     log,
		config:  cfg,
		mailer:  mailer,
		limiter: limiter,
		rates:   rates,
		now:     time.Now,
	}
}

func (s *Service) defaultPenaltyRate() float64 {
	if s.rates == nil {
		return schedule.DefaultPenaltyRate
	}
	return s.rates.EffectiveRate()
}
