// Package models defines the data structures shared by extraction and output.
package models

// Workbook is an ordered set of sheets read from one source file.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds the sheets in workbook order.
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the sheet with the given name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}
