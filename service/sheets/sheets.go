package sheets

import (
	"context"
	"fmt"

	googlesheets "google.golang.org/api/sheets/v4"

	"vedomist/models"
	"vedomist/report"
)

type sheets struct {
	sheetsSrv *googlesheets.Service
}

func NewClient(sheetsSrv *googlesheets.Service) *sheets {
	return &sheets{
		sheetsSrv: sheetsSrv,
	}
}

func (s *sheets) FetchRows(ctx context.Context, spreadsheetId string, sheetName string, cells string) (models.Rows, error) {
	sheetRange := fmt.Sprintf("%s!%s", sheetName, cells)
	response, err := s.sheetsSrv.Spreadsheets.Values.Get(spreadsheetId, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if response.HTTPStatusCode != 200 {
		return nil, fmt.Errorf("FetchRows: unexpected status %d", response.HTTPStatusCode)
	}

	return response.Values, nil
}

// PushReport mirrors the report rows into the shared office spreadsheet.
// Formula cells go up as USER_ENTERED expressions so the sheet recalculates
// on its own. A previous report with more rows is overwritten with blanks
// past the new extent, so no stale subtotal lingers below.
func (s *sheets) PushReport(ctx context.Context, spreadsheetId string, sheetName string, rep *report.Report) error {
	existing, err := s.FetchRows(ctx, spreadsheetId, sheetName, "A:I")
	if err != nil {
		return fmt.Errorf("PushReport: failed to fetch current extent: %w", err)
	}

	values := make(models.Rows, len(rep.Rows))
	for i, row := range rep.Rows {
		values[i] = append(models.Row{}, row...)
	}

	for _, entry := range rep.Formulas {
		values[entry.Row-1][7] = "=" + entry.Formula
	}

	blank := make(models.Row, len(report.Layout))
	for i := range blank {
		blank[i] = ""
	}
	for len(values) < len(existing) {
		values = append(values, blank)
	}

	sheetRange := fmt.Sprintf("%s!A1", sheetName)
	vr := &googlesheets.ValueRange{Values: values}

	response, err := s.sheetsSrv.Spreadsheets.Values.Update(spreadsheetId, sheetRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("PushReport: update failed: %w", err)
	}
	if response.HTTPStatusCode != 200 {
		return fmt.Errorf("PushReport: unexpected status %d", response.HTTPStatusCode)
	}

	return nil
}
