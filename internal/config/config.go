package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// CORS
	FrontendURL         string
	ExtraAllowedOrigins string

	// Google Sheets Configuration
	SheetID                   string
	SheetRange                string
	GoogleServiceAccountEmail string
	GooglePrivateKey          string

	// Email Configuration
	EmailProvider  string // auto, smtp, sendgrid, disabled
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string
	NotifyEmail    string
	NotifyTimezone string

	IntegrationTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		FrontendURL:         getEnv("FRONTEND_URL", ""),
		ExtraAllowedOrigins: getEnv("EXTRA_ALLOWED_ORIGINS", ""),

		SheetID:                   getEnv("GOOGLE_SHEET_ID", ""),
		SheetRange:                getEnv("GOOGLE_SHEET_RANGE", "Leads!A:F"),
		GoogleServiceAccountEmail: getEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		GooglePrivateKey:          normalizePrivateKey(getEnv("GOOGLE_PRIVATE_KEY", "")),

		EmailProvider:  strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Lead Relay"),
		NotifyEmail:    getEnv("NOTIFY_EMAIL", ""),
		NotifyTimezone: getEnv("NOTIFY_TZ", "Asia/Jerusalem"),

		IntegrationTimeout: getEnvAsDuration("INTEGRATION_TIMEOUT", 10*time.Second),
	}
}

// AllowedOrigins assembles the CORS allowlist from the configured frontend
// origin plus any comma-separated extras.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if c.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(c.FrontendURL, "/"))
	}
	for _, origin := range strings.Split(c.ExtraAllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, strings.TrimRight(origin, "/"))
		}
	}
	return origins
}

// SheetsConfigured reports whether the spreadsheet integration has the
// credentials it needs.
func (c *Config) SheetsConfigured() bool {
	return c.SheetID != "" && c.GoogleServiceAccountEmail != "" && c.GooglePrivateKey != ""
}

// normalizePrivateKey converts escaped "\n" sequences, as they appear in
// single-line env values, back into real newlines so the PEM parses.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
