package handler

import (
	"net/http"

	"github.com/futurahomes/backoffice/internal/models"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.svc.Register(&req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.created(w, user, "registered")
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Error: "invalid credentials"})
		return
	}
	h.ok(w, map[string]string{"token": token}, "")
}

// Profile handles GET /profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, user, "")
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := h.svc.UpdateProfile(r.Context(), &req)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.ok(w, user, "profile updated")
}
