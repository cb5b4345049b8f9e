package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/noamsh/lead-relay/internal/health"
	"github.com/noamsh/lead-relay/internal/leads"
	"github.com/noamsh/lead-relay/pkg/logging"
)

type okSink struct{}

func (okSink) Append(context.Context, *leads.Submission) error { return nil }

type okNotifier struct{}

func (okNotifier) Notify(context.Context, *leads.Submission) (bool, error) { return true, nil }

func newTestRouter() http.Handler {
	logger := logging.Default()
	return New(&Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(okSink{}, okNotifier{}, time.Second, logger, nil),
		HealthHandler:      health.NewHandler(map[string]string{"sheets": "configured"}),
		CORSAllowedOrigins: []string{"https://example.com"},
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"UP"`) {
		t.Fatalf("expected UP status in body, got %s", w.Body.String())
	}
}

func TestSubmitFormRoute(t *testing.T) {
	r := newTestRouter()
	body := `{"name":"Dana","email":"dana@x.com","phone":"0501234567"}`
	req := httptest.NewRequest(http.MethodPost, "/api/submit-form", strings.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestSubmitFormRejectsGet(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/submit-form", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestSubmitFormPreflight(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodOptions, "/api/submit-form", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected preflight status %d, got %d", http.StatusNoContent, w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Fatalf("expected allow origin header, got %q", got)
	}
}
