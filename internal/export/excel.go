package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Courses"

// Columns holding dd-MM-yyyy dates, 1-based.
var dateColumns = []int{4, 5}

// writeExcel builds a single-sheet workbook: a bold, colored header row
// followed by the data rows, date columns carrying a dedicated display
// format and every column sized to its longest value.
func writeExcel(table Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  13,
			Color: "0000FF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"FFFF00"},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	dateFormat := "dd-mm-yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return nil, err
	}

	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if len(table.Rows) > 0 {
		for _, col := range dateColumns {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(table.Rows)+1)
			if err := f.SetCellStyle(sheetName, top, bottom, dateStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := autoSizeColumns(f, table); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// autoSizeColumns widens each column to its longest value after population.
func autoSizeColumns(f *excelize.File, table Table) error {
	for col := range table.Headers {
		widest := len(table.Headers[col])
		for _, row := range table.Rows {
			if col < len(row) && len(row[col]) > widest {
				widest = len(row[col])
			}
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", col+1, err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(widest)+2); err != nil {
			return err
		}
	}
	return nil
}
