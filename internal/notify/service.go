package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/noamsh/lead-relay/internal/leads"
	"github.com/noamsh/lead-relay/pkg/logging"
)

// Service dispatches lead notifications to a fixed operator address. The
// transport behind EmailSender (SMTP relay or SendGrid) is invisible to
// callers.
type Service struct {
	sender EmailSender
	to     string
	loc    *time.Location
	logger *logging.Logger
}

// NewService creates a notification service. A nil sender or empty
// recipient puts the service in its disabled state: Notify reports
// skipped instead of erroring.
func NewService(sender EmailSender, to string, timezone string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("invalid notify timezone, using UTC", "timezone", timezone)
		loc = time.UTC
	}
	return &Service{
		sender: sender,
		to:     to,
		loc:    loc,
		logger: logger,
	}
}

// Enabled reports whether a transport and recipient are configured.
func (s *Service) Enabled() bool {
	return s.sender != nil && s.to != ""
}

// Notify renders and dispatches the notification for a submission. The
// bool reports whether a message actually went out: (false, nil) means
// the service is disabled, which is not an error.
func (s *Service) Notify(ctx context.Context, sub *leads.Submission) (bool, error) {
	if !s.Enabled() {
		s.logger.Debug("notify: email transport not configured, skipping")
		return false, nil
	}

	html, err := renderHTML(sub, s.loc)
	if err != nil {
		return false, fmt.Errorf("notify: render message: %w", err)
	}

	msg := EmailMessage{
		To:          s.to,
		Subject:     renderSubject(sub),
		Body:        renderText(sub, s.loc),
		HTML:        html,
		ReplyTo:     sub.Email,
		ReplyToName: sub.Name,
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}
