package handler

import (
	"net/http"
	"strconv"

	"github.com/futurahomes/backoffice/internal/models"
)

// CreateInquiry handles POST /inquiries
func (h *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInquiryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	inquiry, err := h.svc.CreateInquiry(&req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.created(w, inquiry, "inquiry filed")
}

// ListInquiries handles GET /inquiries?user_id=
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.badRequest(w, "invalid user_id")
			return
		}
		userID = parsed
	}
	inquiries, err := h.svc.ListInquiries(userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, inquiries, "")
}

// UpdateInquiryStatus handles PUT /inquiries/{id}/status
func (h *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid inquiry id")
		return
	}
	var req models.UpdateInquiryStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.svc.UpdateInquiryStatus(id, req.Status); err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, nil, "inquiry updated")
}

// ListNotifications handles GET /notifications
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.svc.ListNotifications(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, notifications, "")
}

// MarkNotificationRead handles PUT /notifications/{id}/read
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid notification id")
		return
	}
	if err := h.svc.MarkNotificationRead(id); err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, nil, "notification read")
}
