package audit

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelizeWriter implements ExcelWriter on an excelize workbook. Rows go
// top to bottom into whichever sheet was added last.
type ExcelizeWriter struct {
	file      *excelize.File
	sheet     string
	row       int
	boldStyle int
}

func NewExcelizeWriter() ExcelWriter {
	return &ExcelizeWriter{file: excelize.NewFile(), boldStyle: -1}
}

func (w *ExcelizeWriter) AddSheet(name string) error {
	// Excel rejects sheet names longer than 31 characters.
	if len(name) > 31 {
		name = name[:31]
	}

	if w.sheet == "" {
		// First sheet replaces the workbook's default one.
		w.file.SetSheetName("Sheet1", name)
	} else if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	w.sheet = name
	w.row = 1
	return nil
}

func (w *ExcelizeWriter) WriteHeader(columns []string) error {
	cells := make([]interface{}, len(columns))
	for i, col := range columns {
		cells[i] = col
	}
	if err := w.writeCells(cells); err != nil {
		return err
	}

	if w.boldStyle == -1 {
		style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		w.boldStyle = style
	}
	start, _ := excelize.CoordinatesToCellName(1, w.row-1)
	end, _ := excelize.CoordinatesToCellName(len(columns), w.row-1)
	return w.file.SetCellStyle(w.sheet, start, end, w.boldStyle)
}

func (w *ExcelizeWriter) WriteRow(row []interface{}) error {
	return w.writeCells(row)
}

// writeCells fills the next row of the current sheet in one call and
// advances the cursor.
func (w *ExcelizeWriter) writeCells(values []interface{}) error {
	if w.sheet == "" {
		return fmt.Errorf("no active sheet")
	}
	anchor, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, anchor, &values); err != nil {
		return err
	}
	w.row++
	return nil
}

func (w *ExcelizeWriter) SaveToFile(path string) error {
	return w.file.SaveAs(path)
}

func (w *ExcelizeWriter) Close() error {
	return w.file.Close()
}
