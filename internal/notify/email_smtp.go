package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strconv"

	"github.com/noamsh/lead-relay/pkg/logging"
)

// SMTPSender sends emails through an authenticated SMTP relay.
type SMTPSender struct {
	addr      string
	auth      smtp.Auth
	fromEmail string
	fromName  string
	logger    *logging.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPConfig holds configuration for the SMTP relay.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// NewSMTPSender creates a new SMTP email sender. Returns nil when the
// relay credentials are incomplete, which callers treat as the disabled
// state.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.FromName == "" {
		cfg.FromName = "Lead Relay"
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}
	return &SMTPSender{
		addr:      cfg.Host + ":" + strconv.Itoa(cfg.Port),
		auth:      smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
		send:      smtp.SendMail,
	}
}

// Send sends an email through the relay. net/smtp predates context, so
// the blocking call runs in a goroutine and the context is honored around
// it; an abandoned dial is left to finish on its own.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	payload, err := buildMIME(s.fromName, s.fromEmail, msg)
	if err != nil {
		return fmt.Errorf("notify: build mime message: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.send(s.addr, s.auth, s.fromEmail, []string{msg.To}, payload)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error("smtp send failed", "error", err, "to", msg.To)
			return fmt.Errorf("notify: smtp send failed: %w", err)
		}
	case <-ctx.Done():
		return fmt.Errorf("notify: smtp send: %w", ctx.Err())
	}

	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject)
	return nil
}

// buildMIME assembles a multipart/alternative message with plain text and
// HTML parts, UTF-8 throughout so RTL content survives intact.
func buildMIME(fromName, fromEmail string, msg EmailMessage) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var headers bytes.Buffer
	fmt.Fprintf(&headers, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", fromName), fromEmail)
	fmt.Fprintf(&headers, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&headers, "Reply-To: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", msg.ReplyToName), msg.ReplyTo)
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	headers.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&headers, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	headers.WriteString("\r\n")

	text, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
	if err != nil {
		return nil, err
	}
	if _, err := text.Write([]byte(msg.Body)); err != nil {
		return nil, err
	}

	if msg.HTML != "" {
		html, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
		if err != nil {
			return nil, err
		}
		if _, err := html.Write([]byte(msg.HTML)); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return append(headers.Bytes(), buf.Bytes()...), nil
}

// Ensure interface compliance
var _ EmailSender = (*SMTPSender)(nil)
