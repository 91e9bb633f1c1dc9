package parser

import (
	"fmt"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// grid builds a sheet from literal values: string, float64, int, time.Time or nil.
func grid(name string, rows ...[]interface{}) *models.Sheet {
	s := &models.Sheet{Name: name, Rows: make([][]models.Cell, len(rows))}
	for r, row := range rows {
		cells := make([]models.Cell, len(row))
		for c, v := range row {
			cells[c] = cellOf(v)
		}
		s.Rows[r] = cells
	}
	return s
}

func cellOf(v interface{}) models.Cell {
	switch x := v.(type) {
	case nil:
		return models.EmptyCell()
	case string:
		return models.TextCell(x)
	case float64:
		return models.NumberCell(x)
	case int:
		return models.NumberCell(float64(x))
	case time.Time:
		return models.DateCell(x)
	default:
		panic(fmt.Sprintf("unsupported cell literal %T", v))
	}
}

// quarterEnd returns the last day of the given quarter as DD/MM/YYYY text.
func quarterEnd(year, quarter int) string {
	ends := []string{"31/03", "30/06", "30/09", "31/12"}
	return fmt.Sprintf("%s/%d", ends[quarter-1], year)
}

// quarters returns consecutive quarter labels starting at year-Q1.
func quarters(year, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d-Q%d", year+i/4, i%4+1)
	}
	return out
}
