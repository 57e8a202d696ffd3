package service

import (
	"testing"
	"time"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/futurahomes/backoffice/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complaint(subject string) *models.CreateInquiryRequest {
	return &models.CreateInquiryRequest{
		UserID:   42,
		Subject:  subject,
		Message:  "The unit's roof leaks whenever it rains.",
		Category: models.InquiryCategoryComplaint,
	}
}

func TestCreateInquiryNotifiesAdmins(t *testing.T) {
	store := newFakeStore()
	svc, mailer := newTestService(store)
	require.NoError(t, store.CreateUser(&models.User{Email: "admin@futurahomes.ph", Role: models.RoleAdmin}))

	inquiry, err := svc.CreateInquiry(complaint("Leaking roof"))
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusOpen, inquiry.Status)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, models.RoleAdmin, store.notifications[0].TargetRole)

	require.Len(t, mailer.complaints, 1)
	assert.Equal(t, "admin@futurahomes.ph", mailer.complaints[0].to)
}

// A failing admin email never fails the inquiry itself.
func TestCreateInquirySurvivesMailFailure(t *testing.T) {
	store := newFakeStore()
	svc, mailer := newTestService(store)
	require.NoError(t, store.CreateUser(&models.User{Email: "admin@futurahomes.ph", Role: models.RoleAdmin}))
	mailer.fail = true

	_, err := svc.CreateInquiry(complaint("Leaking roof"))
	assert.NoError(t, err)
	assert.Len(t, store.inquiries, 1)
}

func TestCreateInquiryDuplicateGate(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	_, err := svc.CreateInquiry(complaint("Leaking roof"))
	require.NoError(t, err)

	_, err = svc.CreateInquiry(complaint("Leaking roof"))
	assert.ErrorIs(t, err, ErrConflict)

	// A different subject is fine.
	_, err = svc.CreateInquiry(complaint("Broken gate"))
	assert.NoError(t, err)
}

func TestCreateInquiryRateLimit(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)
	svc.limiter = ratelimit.NewLimiter(2, time.Hour)

	_, err := svc.CreateInquiry(complaint("Subject one"))
	require.NoError(t, err)
	_, err = svc.CreateInquiry(complaint("Subject two"))
	require.NoError(t, err)

	_, err = svc.CreateInquiry(complaint("Subject three"))
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, store.inquiries, 2)
}

func TestUpdateInquiryStatus(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	inquiry, err := svc.CreateInquiry(complaint("Leaking roof"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateInquiryStatus(inquiry.ID, models.InquiryStatusResolved))
	stored, err := svc.ListInquiries(42)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.InquiryStatusResolved, stored[0].Status)
}

func TestUpdateInquiryStatusNotifiesFiler(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	inquiry, err := svc.CreateInquiry(complaint("Leaking roof"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateInquiryStatus(inquiry.ID, models.InquiryStatusResolved))

	var filerNotes []*models.Notification
	for _, n := range store.notifications {
		if n.UserID == inquiry.UserID {
			filerNotes = append(filerNotes, n)
		}
	}
	require.Len(t, filerNotes, 1)
	assert.Contains(t, filerNotes[0].Message, models.InquiryStatusResolved)
}
