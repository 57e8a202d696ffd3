package handler

import (
	"net/http"
	"strconv"

	"github.com/futurahomes/backoffice/internal/models"
)

// WalkInPayment handles POST /contracts/payment/walk-in
func (h *Handler) WalkInPayment(w http.ResponseWriter, r *http.Request) {
	var req models.WalkInPaymentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.svc.RecordWalkInPayment(&req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.created(w, result, "payment recorded")
}

// WalkInPaymentDetails handles GET /contracts/payment/walk-in?schedule_id=
func (h *Handler) WalkInPaymentDetails(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(r.URL.Query().Get("schedule_id"), 10, 64)
	if err != nil || scheduleID <= 0 {
		h.badRequest(w, "schedule_id is required")
		return
	}
	details, err := h.svc.GetScheduleDetails(scheduleID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, details, "")
}
