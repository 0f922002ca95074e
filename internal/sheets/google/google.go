package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/services"
	ports "finboard/internal/sheets"
)

// Exporter appends finance data to a Google spreadsheet.
type Exporter struct {
	svc               *gsheet.Service
	spreadsheetID     string
	transactionsSheet string
	dashboardSheet    string
	logger            *log.Logger
	now               func() time.Time
}

// Ensure interface conformance
var _ ports.Exporter = (*Exporter)(nil)

// Options configure an Exporter.
type Options struct {
	SpreadsheetID string
	// SheetName is the base name; exports go to "<base> Transactions" and
	// "<base> Dashboard".
	SheetName string
	// Service account credentials, inline JSON takes precedence over a file.
	CredentialsJSON string
	CredentialsFile string
	Logger          *log.Logger
}

// New creates an Exporter authenticated with service account credentials.
func New(ctx context.Context, opts Options) (*Exporter, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentSheets)

	svc, err := newSheetsService(ctx, logger, opts.CredentialsJSON, opts.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, opts.SpreadsheetID, opts.SheetName, logger), nil
}

// NewWithService wraps an existing Sheets service.
func NewWithService(svc *gsheet.Service, spreadsheetID, sheetName string, logger *log.Logger) *Exporter {
	base := strings.TrimSpace(sheetName)
	if base == "" {
		base = "Finboard"
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Exporter{
		svc:               svc,
		spreadsheetID:     spreadsheetID,
		transactionsSheet: base + " Transactions",
		dashboardSheet:    base + " Dashboard",
		logger:            logger,
		now:               time.Now,
	}
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, logger *log.Logger, credentialsJSON, credentialsFile string) (*gsheet.Service, error) {
	credentialsJSON = strings.TrimSpace(credentialsJSON)
	credentialsFile = strings.TrimSpace(credentialsFile)

	var creds []byte
	switch {
	case credentialsJSON != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		logger.DebugContext(ctx, "Reading credentials from file", "path", credentialsFile)
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ExportTransactions appends a header and one row per transaction.
func (e *Exporter) ExportTransactions(ctx context.Context, txs []core.Transaction) (string, error) {
	return e.append(ctx, e.transactionsSheet, ports.TransactionRows(txs))
}

// ExportDashboard appends a dated block of dashboard metrics.
func (e *Exporter) ExportDashboard(ctx context.Context, d services.Dashboard) (string, error) {
	rows := ports.DashboardRows(d)
	stamp := d.GeneratedAt
	if stamp.IsZero() {
		stamp = e.now()
	}
	rows = append([][]any{{"Exported", stamp.UTC().Format(time.RFC3339), ""}}, rows...)
	return e.append(ctx, e.dashboardSheet, rows)
}

func (e *Exporter) append(ctx context.Context, sheet string, rows [][]any) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if err := e.ensureSheet(ctx, sheet); err != nil {
		return "", err
	}

	rng := fmt.Sprintf("%s!A1", quoteSheet(sheet))
	resp, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		e.logger.ErrorContext(ctx, "Sheets append failed",
			log.NewFields().WithOperation(log.OpExport).WithError(err).WithErrorType(log.ErrorTypeNetwork).ToSlice()...)
		return "", fmt.Errorf("append to sheet %s: %w", sheet, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	e.logger.InfoContext(ctx, "Rows exported",
		log.FieldOperation, log.OpExport,
		log.FieldSheetsRef, ref,
		log.FieldRows, len(rows))
	return ref, nil
}

// ensureSheet adds the tab when the spreadsheet does not have it yet.
func (e *Exporter) ensureSheet(ctx context.Context, sheet string) error {
	ss, err := e.svc.Spreadsheets.Get(e.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet %s: %w", e.spreadsheetID, err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == sheet {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: sheet}},
		}},
	}
	if _, err := e.svc.Spreadsheets.BatchUpdate(e.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", sheet, err)
	}
	e.logger.InfoContext(ctx, "Sheet created", "sheet", sheet)
	return nil
}

// quoteSheet quotes a sheet title for A1 notation.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
