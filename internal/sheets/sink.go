package sheets

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/noamsh/lead-relay/internal/leads"
	"github.com/noamsh/lead-relay/pkg/logging"
)

var (
	// ErrInvalidCredentials is returned when the service account key is
	// not usable PEM material. This is a configuration error, not a
	// transient append failure.
	ErrInvalidCredentials = errors.New("sheets: service account private key is not valid PEM")

	// ErrSheetConfig is returned when the destination spreadsheet or
	// range is missing or malformed. The sink never creates the
	// destination.
	ErrSheetConfig = errors.New("sheets: destination spreadsheet or range unavailable")
)

// Config holds configuration for the spreadsheet sink.
type Config struct {
	SpreadsheetID string
	Range         string
	ClientEmail   string
	PrivateKey    string // PEM, with real newlines
}

// Sink appends lead rows to a fixed range of an existing Google Sheet.
type Sink struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
	logger        *logging.Logger
}

// New creates a sheet sink. The service-account token source is built
// once here and reused for every append; oauth2 refreshes it as needed.
// Extra options are applied after the credential client, so tests can
// override the endpoint and transport.
func New(ctx context.Context, cfg Config, logger *logging.Logger, opts ...option.ClientOption) (*Sink, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Range == "" {
		cfg.Range = "Leads!A:F"
	}

	if block, _ := pem.Decode([]byte(cfg.PrivateKey)); block == nil {
		return nil, ErrInvalidCredentials
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(conf.Client(ctx))}, opts...)
	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Sink{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.Range,
		logger:        logger,
	}, nil
}

// Append adds one row for the submission to the configured range. Each
// call appends a new row; retried calls produce duplicates.
func (s *Sink) Append(ctx context.Context, sub *leads.Submission) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{leadRow(sub)}}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.appendRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusBadRequest) {
			return fmt.Errorf("%w: %v", ErrSheetConfig, err)
		}
		return fmt.Errorf("sheets: append row: %w", err)
	}

	s.logger.Debug("lead row appended", "spreadsheet_id", s.spreadsheetID, "range", s.appendRange)
	return nil
}

// leadRow maps a submission to the fixed column order of the sheet.
func leadRow(sub *leads.Submission) []interface{} {
	return []interface{}{
		sub.Timestamp,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.ConsentToken(),
		sub.Source,
	}
}
