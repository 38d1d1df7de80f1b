package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invext/internal/domain"
)

const sheetName = "Extractions"

// WriteXLSX renders the rows as a single-sheet workbook. Confidence is
// written as a number so spreadsheet filters and conditional formatting
// work on it; everything else is text.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for ri := range rows {
		r := &rows[ri]
		rowNum := ri + 2

		values := []any{
			r.Name,
			string(r.Result.Source),
			r.Result.Confidence,
			formatBool(r.Result.NeedsReview),
		}
		for _, field := range domain.Fields {
			v := r.Result.Fields[field]
			if v == "" {
				v = domain.Unresolved
			}
			values = append(values, v)
		}

		for ci, v := range values {
			cell, err := excelize.CoordinatesToCellName(ci+1, rowNum)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
