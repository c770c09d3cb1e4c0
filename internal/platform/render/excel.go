package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

const sheetName = "Report"

// renderXLSX writes a report document into a single-sheet workbook: title,
// header row, line items, then the summary block separated by a blank row.
func renderXLSX(doc domain.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheetName, "A1", doc.Title)
	f.SetCellValue(sheetName, "B1", doc.GeneratedAt.Format("2006-01-02 15:04"))

	headerRow := 3
	for i, column := range doc.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, column)
	}

	for r, row := range doc.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, fmt.Errorf("failed to compute data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	summaryStart := headerRow + len(doc.Rows) + 2
	for i, line := range doc.Summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryStart+i), line.Label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryStart+i), line.Value)
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	if len(doc.Columns) > 1 {
		last, err := excelize.ColumnNumberToName(len(doc.Columns))
		if err != nil {
			return nil, fmt.Errorf("failed to compute last column: %w", err)
		}
		f.SetColWidth(sheetName, "B", last, 16)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
