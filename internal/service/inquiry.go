package service

import (
	"fmt"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
)

// duplicateInquiryWindow is how long a repeated inquiry with the same
// subject from the same user is treated as a duplicate.
const duplicateInquiryWindow = 24 * time.Hour

// CreateInquiry files a complaint or service request. A per-process
// rate limit and a 24-hour duplicate gate apply. Admins are notified
// in-app and by email; both notifications are best-effort.
func (s *Service) CreateInquiry(req *models.CreateInquiryRequest) (*models.Inquiry, error) {
	key := fmt.Sprintf("inquiry:%d", req.UserID)
	if !s.limiter.Allow(key) {
		return nil, fmt.Errorf("%w: too many inquiries, try again later", ErrRateLimited)
	}

	count, err := s.store.CountRecentInquiries(req.UserID, req.Subject, s.now().Add(-duplicateInquiryWindow))
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: a similar inquiry was already filed within the last 24 hours", ErrConflict)
	}

	inquiry := &models.Inquiry{
		UserID:   req.UserID,
		Subject:  req.Subject,
		Message:  req.Message,
		Category: req.Category,
		Status:   models.InquiryStatusOpen,
	}
	if err := s.store.InsertInquiry(inquiry); err != nil {
		return nil, err
	}

	s.notifyRole(models.RoleAdmin, "New "+req.Category, req.Subject)
	if emails, err := s.store.FindEmailsByRole(models.RoleAdmin); err != nil {
		s.log.Warnf("Failed to list admin emails: %v", err)
	} else {
		for _, to := range emails {
			if err := s.mailer.SendComplaintNotification(to, req.Subject, req.Message); err != nil {
				s.log.Warnf("Failed to email admin %s about inquiry %d: %v", to, inquiry.ID, err)
			}
		}
	}

	s.log.Infof("Inquiry %d (%s) filed by user %d", inquiry.ID, inquiry.Category, inquiry.UserID)
	return inquiry, nil
}

// ListInquiries lists inquiries, all of them when userID is zero.
func (s *Service) ListInquiries(userID int64) ([]*models.Inquiry, error) {
	return s.store.ListInquiries(userID)
}

// UpdateInquiryStatus moves an inquiry through its workflow and
// notifies the filer. The notification is best-effort.
func (s *Service) UpdateInquiryStatus(id int64, status string) error {
	if err := s.store.UpdateInquiryStatus(id, status); err != nil {
		return err
	}
	if q, err := s.store.FindInquiryByID(id); err != nil {
		s.log.Warnf("Failed to load inquiry %d for status notification: %v", id, err)
	} else {
		s.notifyUser(q.UserID, "Inquiry updated", fmt.Sprintf("Your inquiry %q is now %s.", q.Subject, status))
	}
	s.log.Infof("Inquiry %d moved to %s", id, status)
	return nil
}
