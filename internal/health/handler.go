package health

import (
	"encoding/json"
	"net/http"
	"time"
)

// Handler reports process liveness and which optional integrations are
// configured. Pure read of startup state; always succeeds.
type Handler struct {
	services map[string]string
}

// NewHandler creates a health handler. services maps integration names to
// a short state label, e.g. {"sheets": "configured", "email": "smtp"}.
func NewHandler(services map[string]string) *Handler {
	return &Handler{services: services}
}

// Response is the body returned by GET /health.
type Response struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// Report handles GET /health requests
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	response := Response{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  h.services,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}
