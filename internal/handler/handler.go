package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futurahomes/backoffice/internal/repository"
	"github.com/futurahomes/backoffice/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc      *service.Service
	log      *logrus.Logger
	validate *validator.Validate
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		log:      log,
		validate: validator.New(),
	}
}

// Envelope is the uniform response body of every route.
type Envelope struct {
	Success          bool        `json:"success"`
	Data             interface{} `json:"data,omitempty"`
	Error            string      `json:"error,omitempty"`
	Message          string      `json:"message,omitempty"`
	ValidationErrors []string    `json:"validation_errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) ok(w http.ResponseWriter, data interface{}, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func (h *Handler) created(w http.ResponseWriter, data interface{}, message string) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Error: msg})
}

// fail maps a service error onto the response taxonomy: 404 for missing
// entities, 400 for business-rule violations, 409 for conflicts, 429
// for rate limits, 500 for everything else.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var planErr *service.PlanChangeError
	switch {
	case errors.As(err, &planErr):
		writeJSON(w, http.StatusBadRequest, Envelope{
			Success:          false,
			Error:            "plan change not allowed",
			ValidationErrors: planErr.Errors,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Envelope{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrBusinessRule):
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		writeJSON(w, http.StatusConflict, Envelope{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, Envelope{Success: false, Error: err.Error()})
	default:
		h.log.Errorf("Unhandled error: %v", err)
		writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Error: err.Error()})
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. It writes the 400 itself and reports whether to continue.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.badRequest(w, "invalid request body: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.badRequest(w, "validation failed: "+err.Error())
		return false
	}
	return true
}
