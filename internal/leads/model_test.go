package leads

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Submission
		wantErr bool
	}{
		{"complete", Submission{Name: "Dana", Email: "dana@x.com", Phone: "0501234567"}, false},
		{"missing name", Submission{Email: "dana@x.com", Phone: "0501234567"}, true},
		{"missing email", Submission{Name: "Dana", Phone: "0501234567"}, true},
		{"missing phone", Submission{Name: "Dana", Email: "dana@x.com"}, true},
		{"whitespace phone", Submission{Name: "Dana", Email: "dana@x.com", Phone: " \t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.wantErr && err != ErrMissingFields {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	now := time.Date(2025, 5, 17, 8, 2, 33, 600_000_000, time.UTC)

	sub := Submission{Name: "Dana", Email: "dana@x.com", Phone: "0501234567"}
	sub.ApplyDefaults(now)

	if sub.Source != DefaultSource {
		t.Errorf("expected default source, got %q", sub.Source)
	}
	if sub.Timestamp != "2025-05-17T08:02:33.600Z" {
		t.Errorf("expected formatted receive time, got %q", sub.Timestamp)
	}
}

func TestApplyDefaultsKeepsSuppliedValues(t *testing.T) {
	sub := Submission{
		Name:      "Dana",
		Email:     "dana@x.com",
		Phone:     "0501234567",
		Source:    "Facebook Ad",
		Timestamp: "2025-05-17T08:02:33.600Z",
	}
	sub.ApplyDefaults(time.Now())

	if sub.Source != "Facebook Ad" {
		t.Errorf("supplied source must be kept, got %q", sub.Source)
	}
	if sub.Timestamp != "2025-05-17T08:02:33.600Z" {
		t.Errorf("supplied timestamp must be kept, got %q", sub.Timestamp)
	}
}

func TestConsentToken(t *testing.T) {
	yes := Submission{WhatsApp: true}
	no := Submission{WhatsApp: false}
	if yes.ConsentToken() != "Yes" {
		t.Errorf("expected Yes, got %q", yes.ConsentToken())
	}
	if no.ConsentToken() != "No" {
		t.Errorf("expected No, got %q", no.ConsentToken())
	}
}
