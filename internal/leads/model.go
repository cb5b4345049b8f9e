package leads

import (
	"strings"
	"time"
)

// DefaultSource labels submissions whose origin was not supplied by the form.
const DefaultSource = "Landing Page"

// Submission represents a lead-capture form submission from a landing page
type Submission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	WhatsApp  bool   `json:"whatsapp"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// Validate checks that the required fields are present and non-empty
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Phone) == "" {
		return ErrMissingFields
	}
	return nil
}

// ApplyDefaults fills Source and Timestamp when the caller omitted them.
// Callers are expected to supply the timestamp; the receive time is the
// fallback by convention.
func (s *Submission) ApplyDefaults(now time.Time) {
	if strings.TrimSpace(s.Source) == "" {
		s.Source = DefaultSource
	}
	if strings.TrimSpace(s.Timestamp) == "" {
		s.Timestamp = now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
}

// ConsentToken renders the WhatsApp consent flag as the yes/no token used
// in both the sheet row and the notification body.
func (s *Submission) ConsentToken() string {
	if s.WhatsApp {
		return "Yes"
	}
	return "No"
}
