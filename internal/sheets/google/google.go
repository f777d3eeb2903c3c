// Package google exports transaction change rows to a Google spreadsheet
// using a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/config"
	"tally/internal/core"
	applog "tally/internal/log"
	ports "tally/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *applog.Logger
}

var _ ports.RowWriter = (*Client)(nil)

// New builds a Sheets client from the worker configuration. Credentials come
// from GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE.
func New(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var credentialsJSON []byte
	switch {
	case cfg.GoogleCredentialsJSON != "":
		credentialsJSON = []byte(cfg.GoogleCredentialsJSON)
	case cfg.GoogleCredentialsFile != "":
		data, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
		logger:        logger.WithComponent(applog.ComponentSheets),
	}, nil
}

// AppendRow writes one audit row: when it happened, what happened, and the
// record's fields at that point.
func (c *Client) AppendRow(ctx context.Context, tx core.Transaction, action string) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	row := []any{
		time.Now().UTC().Format(time.RFC3339),
		action,
		strconv.FormatInt(tx.ID, 10),
		string(tx.Type),
		tx.Amount.Float64(),
		tx.Category,
		tx.Description,
		tx.Date.UTC().Format("2006-01-02"),
	}

	rng := fmt.Sprintf("%s!A:H", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rng, &gsheet.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append row to sheet %s: %w", c.sheetName, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}

	c.logger.InfoContext(ctx, "row appended",
		applog.FieldTransactionID, tx.ID,
		applog.FieldAction, action,
		"sheets_ref", ref)

	return ref, nil
}
