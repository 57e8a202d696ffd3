package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/futurahomes/backoffice/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}

// SendPaymentReminder sends an installment reminder or overdue notice
func (s *Sender) SendPaymentReminder(to, username string, dueDate time.Time, amount, penalty float64, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Installment Notice"
	} else {
		e.Subject = "Upcoming Installment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", username)
	if isOverdue {
		body += fmt.Sprintf(
			"Your installment of PHP %.2f was due on %s and is now overdue.\n"+
				"A penalty of PHP %.2f has accrued.\n"+
				"Please settle at any Futura Homes office to avoid further penalties.\n",
			amount, dueDate.Format("2006-01-02"), penalty,
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your installment of PHP %.2f is due on %s.\n"+
				"Payments are accepted at any Futura Homes office.\n",
			amount, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nFutura Homes"
	e.Text = []byte(body)

	return s.send(e)
}

// SendComplaintNotification notifies an admin of a new complaint or
// service request
func (s *Sender) SendComplaintNotification(to, subject, message string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("New inquiry: %s", subject)
	e.Text = []byte(fmt.Sprintf(
		"A new inquiry was filed.\n\nSubject: %s\n\n%s\n\nPlease follow up in the back office.\n",
		subject, message,
	))
	return s.send(e)
}
