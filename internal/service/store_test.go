package service

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/futurahomes/backoffice/internal/config"
	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/ratelimit"
	"github.com/futurahomes/backoffice/internal/repository"
	"github.com/sirupsen/logrus"
)

// fakeStore is an in-memory Store for service tests. It returns copies
// so tests can compare stored state against what the service hands out.
type fakeStore struct {
	users         map[int64]*models.User
	reservations  map[int64]*models.Reservation
	contracts     map[int64]*models.Contract
	schedules     map[int64]*models.PaymentSchedule
	transactions  []*models.PaymentTransaction
	audits        []*models.PlanChangeAudit
	notifications []*models.Notification
	inquiries     []*models.Inquiry
	nextID        int64

	failInsertSchedules bool
	failDeleteSchedules bool
	// Insert this many rows, then fail. Zero disables.
	insertSchedulesFailAfter int
	failFindContractByRes    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[int64]*models.User),
		reservations: make(map[int64]*models.Reservation),
		contracts:    make(map[int64]*models.Contract),
		schedules:    make(map[int64]*models.PaymentSchedule),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(user *models.User) error {
	user.ID = f.id()
	u := *user
	f.users[user.ID] = &u
	return nil
}

func (f *fakeStore) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	user := *u
	return &user, nil
}

func (f *fakeStore) UpdateUserProfile(id int64, username, phone string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	if username != "" {
		u.Username = username
	}
	if phone != "" {
		u.Phone = phone
	}
	return nil
}

func (f *fakeStore) FindEmailsByRole(role string) ([]string, error) {
	var emails []string
	for _, u := range f.users {
		if u.Role == role {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

func (f *fakeStore) CreateReservation(res *models.Reservation) error {
	res.ID = f.id()
	r := *res
	f.reservations[res.ID] = &r
	return nil
}

func (f *fakeStore) FindReservationByID(id int64) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, fmt.Errorf("reservation %d: %w", id, repository.ErrNotFound)
	}
	res := *r
	return &res, nil
}

func (f *fakeStore) UpdateReservationStatus(id int64, status string) error {
	r, ok := f.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %d: %w", id, repository.ErrNotFound)
	}
	r.ReservationStatus = status
	return nil
}

func (f *fakeStore) CreateContract(c *models.Contract) error {
	c.ID = f.id()
	contract := *c
	f.contracts[c.ID] = &contract
	return nil
}

func (f *fakeStore) FindContractByID(id int64) (*models.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, fmt.Errorf("contract %d: %w", id, repository.ErrNotFound)
	}
	contract := *c
	return &contract, nil
}

func (f *fakeStore) FindContractByReservation(reservationID int64) (*models.Contract, error) {
	if f.failFindContractByRes {
		return nil, fmt.Errorf("connection reset")
	}
	for _, c := range f.contracts {
		if c.ReservationID == reservationID {
			contract := *c
			return &contract, nil
		}
	}
	return nil, fmt.Errorf("contract for reservation %d: %w", reservationID, repository.ErrNotFound)
}

func (f *fakeStore) ListContractsByUser(userID int64) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range f.contracts {
		if c.UserID == userID {
			contract := *c
			out = append(out, &contract)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateContractPlan(id int64, months int, monthly float64, finalDate time.Time) error {
	c, ok := f.contracts[id]
	if !ok {
		return fmt.Errorf("contract %d: %w", id, repository.ErrNotFound)
	}
	c.PaymentPlanMonths = months
	c.MonthlyInstallment = monthly
	c.FinalInstallmentDate = finalDate
	return nil
}

func (f *fakeStore) DeleteContract(id int64) error {
	delete(f.contracts, id)
	return nil
}

func (f *fakeStore) InsertSchedules(contractID int64, schedules []*models.PaymentSchedule) error {
	if f.failInsertSchedules {
		return fmt.Errorf("insert failed")
	}
	for i, s := range schedules {
		if f.insertSchedulesFailAfter > 0 && i >= f.insertSchedulesFailAfter {
			return fmt.Errorf("insert failed on row %d", i+1)
		}
		s.ID = f.id()
		s.ContractID = contractID
		row := *s
		f.schedules[s.ID] = &row
	}
	return nil
}

func (f *fakeStore) ReinsertSchedules(schedules []*models.PaymentSchedule) error {
	for _, s := range schedules {
		row := *s
		f.schedules[s.ID] = &row
	}
	return nil
}

func (f *fakeStore) FindSchedulesByContract(contractID int64) ([]*models.PaymentSchedule, error) {
	var out []*models.PaymentSchedule
	for _, s := range f.schedules {
		if s.ContractID == contractID {
			row := *s
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstallmentNumber < out[j].InstallmentNumber })
	return out, nil
}

func (f *fakeStore) FindScheduleByID(id int64) (*models.PaymentSchedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	row := *s
	return &row, nil
}

func (f *fakeStore) DeleteSchedulesByIDs(ids []int64) error {
	if f.failDeleteSchedules {
		return fmt.Errorf("delete failed")
	}
	for _, id := range ids {
		delete(f.schedules, id)
	}
	return nil
}

func (f *fakeStore) DeleteSchedulesByContract(contractID int64) error {
	for id, s := range f.schedules {
		if s.ContractID == contractID {
			delete(f.schedules, id)
		}
	}
	return nil
}

func (f *fakeStore) UpdateSchedulePenalty(id int64, isOverdue bool, daysOverdue int, penalty float64) error {
	s, ok := f.schedules[id]
	if !ok {
		return fmt.Errorf("schedule %d: %w", id, repository.ErrNotFound)
	}
	s.IsOverdue = isOverdue
	s.DaysOverdue = daysOverdue
	s.PenaltyAmount = penalty
	return nil
}

// RecordWalkInPayment mimics the stored procedure: apply the payment to
// the schedule row, update the contract aggregate, append the ledger row.
func (f *fakeStore) RecordWalkInPayment(t *models.PaymentTransaction) error {
	s, ok := f.schedules[t.ScheduleID]
	if !ok {
		return fmt.Errorf("schedule %d: %w", t.ScheduleID, repository.ErrNotFound)
	}
	s.PaidAmount += t.AmountPaid
	s.RemainingAmount -= t.AmountPaid
	if s.RemainingAmount <= 1e-9 {
		s.RemainingAmount = 0
		s.PaymentStatus = models.PaymentStatusPaid
	}
	if c, ok := f.contracts[s.ContractID]; ok {
		c.RemainingBalance -= t.AmountPaid
	}
	t.ID = f.id()
	t.CreatedAt = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	ledger := *t
	f.transactions = append(f.transactions, &ledger)
	return nil
}

func (f *fakeStore) FindTransactionsBySchedule(scheduleID int64) ([]*models.PaymentTransaction, error) {
	var out []*models.PaymentTransaction
	for _, t := range f.transactions {
		if t.ScheduleID == scheduleID {
			ledger := *t
			out = append(out, &ledger)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertPlanChangeAudit(a *models.PlanChangeAudit) error {
	a.ID = f.id()
	audit := *a
	f.audits = append(f.audits, &audit)
	return nil
}

func (f *fakeStore) InsertNotification(n *models.Notification) error {
	n.ID = f.id()
	note := *n
	f.notifications = append(f.notifications, &note)
	return nil
}

func (f *fakeStore) ListNotifications(userID int64, role string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID || (n.TargetRole != "" && n.TargetRole == role) {
			note := *n
			out = append(out, &note)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkNotificationRead(id int64) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %d: %w", id, repository.ErrNotFound)
}

func (f *fakeStore) InsertInquiry(q *models.Inquiry) error {
	q.ID = f.id()
	q.CreatedAt = testNow
	inquiry := *q
	f.inquiries = append(f.inquiries, &inquiry)
	return nil
}

func (f *fakeStore) CountRecentInquiries(userID int64, subject string, since time.Time) (int, error) {
	count := 0
	for _, q := range f.inquiries {
		if q.UserID == userID && q.Subject == subject && !q.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ListInquiries(userID int64) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, q := range f.inquiries {
		if userID == 0 || q.UserID == userID {
			inquiry := *q
			out = append(out, &inquiry)
		}
	}
	return out, nil
}

func (f *fakeStore) FindInquiryByID(id int64) (*models.Inquiry, error) {
	for _, q := range f.inquiries {
		if q.ID == id {
			inquiry := *q
			return &inquiry, nil
		}
	}
	return nil, fmt.Errorf("inquiry %d: %w", id, repository.ErrNotFound)
}

func (f *fakeStore) UpdateInquiryStatus(id int64, status string) error {
	for _, q := range f.inquiries {
		if q.ID == id {
			q.Status = status
			return nil
		}
	}
	return fmt.Errorf("inquiry %d: %w", id, repository.ErrNotFound)
}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	reminders  []sentMail
	complaints []sentMail
	fail       bool
}

func (m *fakeMailer) SendPaymentReminder(to, username string, dueDate time.Time, amount, penalty float64, isOverdue bool) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.reminders = append(m.reminders, sentMail{to: to, subject: "reminder"})
	return nil
}

func (m *fakeMailer) SendComplaintNotification(to, subject, message string) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.complaints = append(m.complaints, sentMail{to: to, subject: subject})
	return nil
}

// fakeRates is a RateSource pinned to a fixed monthly rate.
type fakeRates struct{ rate float64 }

func (r fakeRates) EffectiveRate() float64 { return r.rate }

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) (*Service, *fakeMailer) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	mailer := &fakeMailer{}
	svc := NewService(store, log, &config.Config{JWTSecret: "test-secret"}, mailer, ratelimit.NewLimiter(5, time.Hour), nil)
	svc.now = func() time.Time { return testNow }
	return svc, mailer
}
