package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"paystub/internal/core"
	ports "paystub/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client exports paycheck records to a Google spreadsheet, one row per
// record. Rows are keyed by statement date and kind so a re-export of the
// same record is visible but never silently merged.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.RecordWriter = (*Client)(nil)

// New creates a Sheets client from service-account credentials.
func New(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if credentialsFile == "" {
		return nil, errors.New("missing service account credentials file")
	}

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Append writes one record as a spreadsheet row and returns its range
// reference.
func (c *Client) Append(ctx context.Context, record core.PaycheckRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", c.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	dataRange := fmt.Sprintf("%s!A%d:F%d", c.sheetName, nextRow, nextRow)
	vr := &gsheet.ValueRange{Values: [][]any{recordRow(record)}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", dataRange, err)
	}

	return dataRange, nil
}

// recordRow lays out one spreadsheet row: date, kind, then dollar figures
// for gross, statutory, other deductions, and net.
func recordRow(record core.PaycheckRecord) []any {
	return []any{
		record.StatementDate.Format(time.DateOnly),
		string(record.Kind),
		record.GrossPay.Dollars(),
		record.StatutoryTotal.Dollars(),
		record.OtherDeductionTotal.Dollars(),
		record.NetPay.Dollars(),
	}
}
