package handler

import (
	"net/http"
	"strconv"

	"github.com/futurahomes/backoffice/internal/models"
	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

// CreateContract handles POST /contracts/create
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContractRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	details, err := h.svc.CreateContract(&req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.created(w, details, "contract created")
}

// GetContract handles GET /contracts/{id}
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid contract id")
		return
	}
	details, err := h.svc.GetContract(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, details, "")
}

// ListContracts handles GET /contracts?user_id=
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		h.badRequest(w, "user_id is required")
		return
	}
	contracts, err := h.svc.ListContracts(userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, contracts, "")
}

// ValidatePlanChange handles POST /contracts/{id}/validate-plan-change
func (h *Handler) ValidatePlanChange(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid contract id")
		return
	}
	var req models.ValidatePlanChangeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	preview, err := h.svc.ValidatePlanChange(id, req.NewPaymentPlanMonths)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, preview, "")
}

// ChangePlan handles POST /contracts/{id}/change-plan
func (h *Handler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid contract id")
		return
	}
	var req models.ChangePlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.svc.ChangePlan(id, &req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, result, "payment plan changed")
}

// CreateReservation handles POST /reservations
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReservationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.svc.CreateReservation(&req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.created(w, res, "reservation created")
}

// ApproveReservation handles POST /reservations/{id}/approve
func (h *Handler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.badRequest(w, "invalid reservation id")
		return
	}
	res, err := h.svc.ApproveReservation(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, res, "reservation approved")
}
