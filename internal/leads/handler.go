package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadgate/api/pkg/logging"
)

// Handler handles HTTP requests for lead submission
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type submitResponse struct {
	OK     bool   `json:"ok"`
	ID     string `json:"id,omitempty"`
	Mailed *bool  `json:"mailed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Client-safe error messages. Persistence detail is logged, never exposed.
const (
	msgMissingFields = "Missing required fields"
	msgInvalidEmail  = "Invalid email"
	msgServerError   = "Server error"
)

// CreateLead handles POST /api/lead requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Undecodable and oversized bodies are treated like absent fields.
		h.logger.Info("rejected undecodable lead body", "error", err)
		writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: msgMissingFields})
		return
	}

	result, err := h.service.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField):
			writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: msgMissingFields})
		case errors.Is(err, ErrInvalidEmail):
			writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: msgInvalidEmail})
		default:
			h.logger.Error("lead submission failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, submitResponse{OK: false, Error: msgServerError})
		}
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		OK:     true,
		ID:     result.Lead.ID,
		Mailed: result.Mailed,
	})
}

// Health handles GET /api/health requests
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
