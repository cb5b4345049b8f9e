package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noamsh/lead-relay/internal/api/router"
	appconfig "github.com/noamsh/lead-relay/internal/config"
	"github.com/noamsh/lead-relay/internal/health"
	"github.com/noamsh/lead-relay/internal/leads"
	"github.com/noamsh/lead-relay/internal/notify"
	"github.com/noamsh/lead-relay/internal/observability/metrics"
	"github.com/noamsh/lead-relay/internal/sheets"
	"github.com/noamsh/lead-relay/pkg/logging"
)

func main() {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-relay API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	services := map[string]string{
		"sheets": "disabled",
		"email":  "disabled",
	}

	// Spreadsheet sink. Missing configuration is a first-class disabled
	// state; submissions still get a response, with sheetSuccess=false.
	var sink leads.Sink
	if cfg.SheetsConfigured() {
		s, err := sheets.New(context.Background(), sheets.Config{
			SpreadsheetID: cfg.SheetID,
			Range:         cfg.SheetRange,
			ClientEmail:   cfg.GoogleServiceAccountEmail,
			PrivateKey:    cfg.GooglePrivateKey,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize sheets sink", "error", err)
			os.Exit(1)
		}
		sink = s
		services["sheets"] = "configured"
	} else {
		logger.Warn("google sheets credentials not configured, submissions will not be persisted")
	}

	sender, transport := buildEmailSender(cfg, logger)
	if sender != nil && cfg.NotifyEmail != "" {
		services["email"] = transport
	}
	notifier := notify.NewService(sender, cfg.NotifyEmail, cfg.NotifyTimezone, logger)

	registry := prometheus.NewRegistry()
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	leadsHandler := leads.NewHandler(sink, notifier, cfg.IntegrationTimeout, logger, submissionMetrics)
	healthHandler := health.NewHandler(services)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		HealthHandler:      healthHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.AllowedOrigins(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender selects the notification transport from configuration.
// "auto" prefers the SMTP relay and falls back to SendGrid.
func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, string) {
	smtpSender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPass,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
	}, logger)
	sendGridSender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
	}, logger)

	switch cfg.EmailProvider {
	case "disabled":
		return nil, ""
	case "smtp":
		if smtpSender == nil {
			logger.Warn("smtp provider selected but relay credentials incomplete")
			return nil, ""
		}
		return smtpSender, "smtp"
	case "sendgrid":
		if sendGridSender == nil {
			logger.Warn("sendgrid provider selected but no API key configured")
			return nil, ""
		}
		return sendGridSender, "sendgrid"
	default: // auto
		if smtpSender != nil {
			return smtpSender, "smtp"
		}
		if sendGridSender != nil {
			return sendGridSender, "sendgrid"
		}
		logger.Warn("no email transport configured, notifications disabled")
		return nil, ""
	}
}
