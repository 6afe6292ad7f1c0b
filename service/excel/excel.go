package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"vedomist/report"
)

const sheetName = "Відомість"

// WriteFile serializes the report dataset into an .xlsx workbook: cell
// values, merge regions, column widths, and the total-column formulas with
// their cached values so the file previews correctly before recalculation.
func WriteFile(rep *report.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for i, col := range report.Layout {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err = f.SetColWidth(sheetName, name, name, col.Width); err != nil {
			return err
		}
	}

	for rowIdx, row := range rep.Rows {
		for colIdx, val := range row {
			if val == nil || val == "" {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(sheetName, cell, val); err != nil {
				return err
			}
		}
	}

	for _, m := range rep.Merges {
		start, err := excelize.CoordinatesToCellName(m.StartCol, m.StartRow)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(m.EndCol, m.EndRow)
		if err != nil {
			return err
		}
		if err = f.MergeCell(sheetName, start, end); err != nil {
			return err
		}
	}

	for _, entry := range rep.Formulas {
		cell := fmt.Sprintf("H%d", entry.Row)
		if err := f.SetCellFormula(sheetName, cell, entry.Formula); err != nil {
			return err
		}
		// Cache the computed value alongside the formula so viewers that do
		// not recalculate still show the right number.
		value := entry.Value
		if err := f.SetCellDefault(sheetName, cell, fmt.Sprintf("%v", value)); err != nil {
			return err
		}
	}

	// Keep the title, date and header rows pinned while scrolling the roster.
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      3,
		TopLeftCell: "A4",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.SaveAs(path)
}
