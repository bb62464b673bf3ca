// Package audit builds the xlsx report of branch reservation state and
// recent operator actions.
package audit

// ExcelWriter abstracts xlsx generation so report building stays testable
// without touching the filesystem.
type ExcelWriter interface {
	// AddSheet adds a sheet and makes it current.
	AddSheet(name string) error

	// WriteHeader writes a bold header row to the current sheet.
	WriteHeader(columns []string) error

	// WriteRow writes a data row to the current sheet.
	WriteRow(row []interface{}) error

	// SaveToFile writes the workbook to disk.
	SaveToFile(path string) error

	// Close releases resources.
	Close() error
}
