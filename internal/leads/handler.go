package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/noamsh/lead-relay/internal/observability/metrics"
	"github.com/noamsh/lead-relay/pkg/logging"
)

// Sink appends one lead row to the external spreadsheet.
type Sink interface {
	Append(ctx context.Context, sub *Submission) error
}

// Notifier dispatches the operator notification for a lead. The bool
// reports whether a message was actually sent; an unconfigured notifier
// returns (false, nil).
type Notifier interface {
	Notify(ctx context.Context, sub *Submission) (bool, error)
}

// Handler orchestrates a form submission: validate, persist to the sheet,
// notify the operator, and reduce both outcomes to one response. It does
// no I/O of its own.
type Handler struct {
	sink     Sink
	notifier Notifier
	timeout  time.Duration
	logger   *logging.Logger
	metrics  *metrics.SubmissionMetrics
}

// NewHandler creates a submission handler. timeout bounds each
// integration call independently.
func NewHandler(sink Sink, notifier Notifier, timeout time.Duration, logger *logging.Logger, m *metrics.SubmissionMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		sink:     sink,
		notifier: notifier,
		timeout:  timeout,
		logger:   logger,
		metrics:  m,
	}
}

// SubmitDetails reports the outcome of each side effect to the caller.
type SubmitDetails struct {
	SheetSuccess bool `json:"sheetSuccess"`
	EmailSuccess bool `json:"emailSuccess"`
}

// SubmitResponse is the response body for POST /api/submit-form.
type SubmitResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details *SubmitDetails `json:"details,omitempty"`
}

// SubmitForm handles POST /api/submit-form requests
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Error("failed to decode submission", "error", err)
		h.metrics.ObserveSubmission("bad_body")
		writeJSON(w, http.StatusInternalServerError, SubmitResponse{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	if err := sub.Validate(); err != nil {
		h.logger.Info("submission rejected", "error", err)
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "Missing required fields: name, email, and phone are required",
		})
		return
	}

	sub.ApplyDefaults(time.Now())

	// The caller may disconnect, but admitted submissions run to
	// completion, so both calls get a context detached from the request.
	base := context.WithoutCancel(r.Context())
	details := SubmitDetails{
		SheetSuccess: h.appendToSheet(base, &sub),
		EmailSuccess: h.dispatchNotification(base, &sub),
	}

	h.metrics.ObserveLatency(time.Since(start).Seconds())

	if !details.SheetSuccess {
		h.metrics.ObserveSubmission("sheet_failed")
		writeJSON(w, http.StatusInternalServerError, SubmitResponse{
			Success: false,
			Message: "Failed to save submission",
			Details: &details,
		})
		return
	}

	h.logger.Info("lead submitted",
		"name", sub.Name,
		"source", sub.Source,
		"email_sent", details.EmailSuccess,
	)
	h.metrics.ObserveSubmission("accepted")
	writeJSON(w, http.StatusOK, SubmitResponse{
		Success: true,
		Message: "Form submitted successfully",
		Details: &details,
	})
}

// appendToSheet runs the sink call inside its own failure boundary: any
// error is logged and reduced to false, never propagated.
func (h *Handler) appendToSheet(ctx context.Context, sub *Submission) bool {
	if h.sink == nil {
		h.logger.Error("sheet append skipped: no sink configured")
		h.metrics.ObserveSheetAppend(false)
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.sink.Append(ctx, sub); err != nil {
		h.logger.Error("sheet append failed", "error", err, "email", sub.Email)
		h.metrics.ObserveSheetAppend(false)
		return false
	}
	h.metrics.ObserveSheetAppend(true)
	return true
}

// dispatchNotification runs the notifier inside its own failure boundary.
// Runs regardless of the sink outcome.
func (h *Handler) dispatchNotification(ctx context.Context, sub *Submission) bool {
	if h.notifier == nil {
		h.metrics.ObserveNotification("skipped")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	sent, err := h.notifier.Notify(ctx, sub)
	if err != nil {
		h.logger.Error("notification dispatch failed", "error", err, "email", sub.Email)
		h.metrics.ObserveNotification("failed")
		return false
	}
	if !sent {
		h.metrics.ObserveNotification("skipped")
		return false
	}
	h.metrics.ObserveNotification("sent")
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
