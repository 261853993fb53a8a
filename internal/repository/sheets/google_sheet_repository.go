package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/railtools/internal/config"
)

// Repository defines the export operations supported by the Google Sheets adapter.
type Repository interface {
	// EnsureHeader writes header on the first row of the sheet named by
	// sheetRange when that row is still empty.
	EnsureHeader(ctx context.Context, sheetRange string, header []interface{}) error
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// EnsureHeader seeds the header row of a freshly created export tab so the
// appended rows line up under named columns. Existing headers are left alone.
func (r *GoogleSheetRepository) EnsureHeader(ctx context.Context, sheetRange string, header []interface{}) error {
	sheet, err := sheetName(sheetRange)
	if err != nil {
		return err
	}
	if len(header) == 0 {
		return nil
	}

	firstRow := sheet + "!1:1"
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, firstRow).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", sheet, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{header}}
	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheet+"!A1", payload).
		ValueInputOption("RAW").
		Context(ctx)
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}

	r.logger.Info("header row created", zap.String("sheet", sheet), zap.Int("columns", len(header)))
	return nil
}

// WriteRows appends the provided rows to the supplied sheet range in a single
// call. An empty batch is a no-op.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// sheetName returns the tab part of an A1 range such as "Historico!A:F".
func sheetName(sheetRange string) (string, error) {
	name, _, _ := strings.Cut(sheetRange, "!")
	name = strings.Trim(strings.TrimSpace(name), "'")
	if name == "" {
		return "", fmt.Errorf("range %q does not name a sheet", sheetRange)
	}
	return name, nil
}
