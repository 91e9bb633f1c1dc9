package models

// Sheet is an irregular grid of cells. Rows may have different lengths.
type Sheet struct {
	// Name is the sheet name as stored in the workbook.
	Name string `json:"name"`
	// Rows holds the cells row by row (0-based).
	Rows [][]Cell `json:"rows,omitempty"`
}

// NumRows returns the number of rows in the grid.
func (s *Sheet) NumRows() int {
	return len(s.Rows)
}

// NumCols returns the length of the widest row.
func (s *Sheet) NumCols() int {
	n := 0
	for _, row := range s.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return EmptyCell()
	}
	return s.Rows[row][col]
}

// IsEmpty reports whether the sheet has no non-empty cell.
func (s *Sheet) IsEmpty() bool {
	for _, row := range s.Rows {
		for _, c := range row {
			if !c.IsEmpty() {
				return false
			}
		}
	}
	return true
}
