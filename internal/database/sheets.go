package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsWorksheet is the first worksheet of a Google Sheets spreadsheet.
type SheetsWorksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetID       int64
	title         string
	log           *logrus.Logger
}

func OpenSheets(ctx context.Context, spreadsheetID, credentialsFile string, log *logrus.Logger) (*SheetsWorksheet, error) {
	if spreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	if credentialsFile == "" {
		return nil, errors.New("sheets: service account credentials file is required")
	}
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: read credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	ss, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("sheets: spreadsheet %s has no worksheets", spreadsheetID)
	}
	p := ss.Sheets[0].Properties
	log.Infof("using worksheet %q of spreadsheet %s", p.Title, spreadsheetID)
	return &SheetsWorksheet{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetID:       p.SheetId,
		title:         p.Title,
		log:           log,
	}, nil
}

func (s *SheetsWorksheet) sheetRange() string {
	return "'" + strings.ReplaceAll(s.title, "'", "''") + "'"
}

func (s *SheetsWorksheet) Values(ctx context.Context) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetRange()).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	res := make([][]any, 0, len(resp.Values))
	for _, r := range resp.Values {
		res = append(res, r)
	}
	return res, nil
}

func (s *SheetsWorksheet) AppendRow(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetRange(), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

func (s *SheetsWorksheet) Clear(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.sheetRange(), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	return err
}

func (s *SheetsWorksheet) Find(ctx context.Context, value string, column int) ([]Cell, error) {
	values, err := s.Values(ctx)
	if err != nil {
		return nil, err
	}
	return findIn(values, value, column), nil
}

func (s *SheetsWorksheet) DeleteRow(ctx context.Context, index int) error {
	values, err := s.Values(ctx)
	if err != nil {
		return err
	}
	if index < 1 || index > len(values) {
		return ErrRowOutOfRange
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         s.sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(index - 1),
					EndIndex:        int64(index),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (s *SheetsWorksheet) Close() error { return nil }
