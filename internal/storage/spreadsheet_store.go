package storage

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cast"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"hourbot/internal/models"
	"hourbot/internal/structures"
	"strings"
	"time"
)

const (
	colIdentity = iota
	colHours
	colTimestamp
)

// SpreadsheetStore appends one row per entry to a Google Sheet:
// [identity, hours, timestamp]. A fourth column, if present, is ignored.
type SpreadsheetStore struct {
	service       *sheets.Service
	spreadsheetID string
	valueRange    string
	timeout       time.Duration
	loc           *time.Location
}

// NewSpreadsheetStore authenticates with the service-account key held in conf.CredentialsJSON.
func NewSpreadsheetStore(ctx context.Context, conf structures.SheetsConfig, loc *time.Location) (*SpreadsheetStore, error) {
	if conf.CredentialsJSON == "" || conf.SpreadsheetID == "" {
		return nil, unavailable("connect", errors.New("spreadsheet credentials or id not configured"))
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(conf.CredentialsJSON), sheets.SpreadsheetsScope, sheets.DriveScope)
	if err != nil {
		return nil, unavailable("connect", fmt.Errorf("parse credentials: %w", err))
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, unavailable("connect", err)
	}
	return NewSpreadsheetStoreWithService(service, conf, loc), nil
}

func NewSpreadsheetStoreWithService(service *sheets.Service, conf structures.SheetsConfig, loc *time.Location) *SpreadsheetStore {
	return &SpreadsheetStore{
		service:       service,
		spreadsheetID: conf.SpreadsheetID,
		valueRange:    conf.Range,
		timeout:       conf.Timeout,
		loc:           loc,
	}
}

func (s *SpreadsheetStore) Name() string {
	return "sheets"
}

func (s *SpreadsheetStore) Append(ctx context.Context, identity string, hours float64, at time.Time) error {
	if err := s.appendRow(ctx, []interface{}{identity, hours, models.FormatTimestamp(at)}); err != nil {
		return unavailable("append", err)
	}
	return nil
}

func (s *SpreadsheetStore) Reset(ctx context.Context, identity string, at time.Time) error {
	if err := s.appendRow(ctx, []interface{}{identity, 0, models.FormatResetStamp(at)}); err != nil {
		return unavailable("reset", err)
	}
	return nil
}

func (s *SpreadsheetStore) AllEntries(ctx context.Context, identity string) ([]models.Entry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// Unformatted numbers keep the hours cell independent of the sheet's locale and number format.
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.valueRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, unavailable("read entries", err)
	}

	entries := make([]models.Entry, 0)
	for _, row := range resp.Values {
		entry, ok := s.parseRow(row)
		if !ok || entry.Identity != identity {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SpreadsheetStore) Close() error {
	return nil
}

// parseRow converts a sheet row into an Entry. Rows without a numeric hours cell,
// the header row among them, are rejected.
func (s *SpreadsheetStore) parseRow(row []interface{}) (models.Entry, bool) {
	if len(row) <= colHours {
		return models.Entry{}, false
	}
	hours, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(row[colHours])))
	if err != nil {
		return models.Entry{}, false
	}

	entry := models.Entry{
		Identity: strings.TrimSpace(cast.ToString(row[colIdentity])),
		Hours:    hours,
	}
	if len(row) > colTimestamp {
		stamp := cast.ToString(row[colTimestamp])
		entry.Reset = models.IsResetStamp(stamp)
		entry.Timestamp, _ = models.ParseTimestamp(stamp, s.loc)
	}
	return entry, true
}

func (s *SpreadsheetStore) appendRow(ctx context.Context, row []interface{}) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.valueRange, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

func (s *SpreadsheetStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SheetURL is the browser link for a spreadsheet id.
func SheetURL(spreadsheetID string) string {
	if spreadsheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID
}
