package parser

import (
	"fmt"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/xuri/excelize/v2"
)

// Bounds is the 0-based, inclusive bounding box of a sheet's non-empty cells.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
	// NonEmpty is the number of non-empty cells inside the box.
	NonEmpty int
}

// DataBounds finds the bounding box of non-empty cells.
// The boolean is false for a sheet without data.
func DataBounds(s *models.Sheet) (Bounds, bool) {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range s.Rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			b.NonEmpty++
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b, b.NonEmpty > 0
}

// Density is the share of non-empty cells in the box.
func (b Bounds) Density() float64 {
	total := (b.MaxRow - b.MinRow + 1) * (b.MaxCol - b.MinCol + 1)
	if total <= 0 {
		return 0
	}
	return float64(b.NonEmpty) / float64(total)
}

// Range renders the box in Excel notation, e.g. "A1:D10".
func (b Bounds) Range() string {
	start, err := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", start, end)
}
