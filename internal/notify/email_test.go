package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "relay@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "relay@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Lead Relay" {
		t.Errorf("expected default from name 'Lead Relay', got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{client: nil}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "ops@example.com",
		Subject: "Test",
		Body:    "Test body",
	})

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestNewSMTPSender_NilWithoutCredentials(t *testing.T) {
	if s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"}, nil); s != nil {
		t.Error("expected nil sender without username/password")
	}
	if s := NewSMTPSender(SMTPConfig{Username: "user", Password: "pass"}, nil); s != nil {
		t.Error("expected nil sender without host")
	}
}

func TestNewSMTPSender_Defaults(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Host:     "smtp.example.com",
		Username: "user@example.com",
		Password: "secret",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.addr != "smtp.example.com:587" {
		t.Errorf("expected default port 587 in addr, got %q", sender.addr)
	}
	if sender.fromEmail != "user@example.com" {
		t.Errorf("expected from to default to username, got %q", sender.fromEmail)
	}
}

func TestSMTPSender_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	sender := NewSMTPSender(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		Username:  "user@example.com",
		Password:  "secret",
		FromEmail: "relay@example.com",
	}, nil)
	sender.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := sender.Send(context.Background(), EmailMessage{
		To:          "ops@example.com",
		ReplyTo:     "dana@x.com",
		ReplyToName: "Dana",
		Subject:     "New lead",
		Body:        "Phone: 0501234567",
		HTML:        "<p>Phone: 0501234567</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("unexpected relay addr %q", gotAddr)
	}
	if gotFrom != "relay@example.com" {
		t.Errorf("unexpected envelope from %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "ops@example.com" {
		t.Errorf("unexpected recipients %v", gotTo)
	}

	payload := string(gotMsg)
	for _, want := range []string{
		"Reply-To:",
		"dana@x.com",
		"multipart/alternative",
		"text/plain; charset=UTF-8",
		"text/html; charset=UTF-8",
		"Phone: 0501234567",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("expected MIME payload to contain %q", want)
		}
	}
}

func TestSMTPSender_SendError(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Host:     "smtp.example.com",
		Username: "user",
		Password: "secret",
	}, nil)
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay refused")
	}

	err := sender.Send(context.Background(), EmailMessage{To: "ops@example.com"})
	if err == nil || !strings.Contains(err.Error(), "relay refused") {
		t.Fatalf("expected wrapped relay error, got %v", err)
	}
}

func TestSMTPSender_SendContextCanceled(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Host:     "smtp.example.com",
		Username: "user",
		Password: "secret",
	}, nil)
	block := make(chan struct{})
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	}
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, EmailMessage{To: "ops@example.com"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
