package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/xuri/excelize/v2"
)

// Serial date bounds. Numbers outside them are never treated as dates.
const (
	SerialMin = 1
	SerialMax = 80000
	// MinYear and MaxYear bound the years accepted from serial dates.
	MinYear = 1990
	MaxYear = 2030
)

// DateLayouts are tried in order on text cells; the first match wins.
// DD/MM/YYYY, MM/DD/YYYY, YYYY-MM-DD, DD-MM-YYYY, YYYY/MM/DD.
var DateLayouts = []string{
	"2/1/2006",
	"1/2/2006",
	"2006-1-2",
	"2-1-2006",
	"2006/1/2",
}

// QuarterLabel formats t as "YYYY-Qn".
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

// NormalizeDate returns the quarter label of a date-like cell.
// The boolean is false when the cell is not a recognizable date.
func NormalizeDate(c models.Cell) (string, bool) {
	switch c.Kind {
	case models.CellDate:
		return QuarterLabel(c.Time), true
	case models.CellText:
		t, ok := parseDateText(c.Text)
		if !ok {
			return "", false
		}
		return QuarterLabel(t), true
	case models.CellNumber:
		t, ok := serialToDate(c.Number)
		if !ok {
			return "", false
		}
		return QuarterLabel(t), true
	default:
		return "", false
	}
}

func parseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// serialToDate converts a spreadsheet serial (epoch 1899-12-30) to a date.
func serialToDate(n float64) (time.Time, bool) {
	if n < SerialMin || n > SerialMax {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(n, false)
	if err != nil {
		return time.Time{}, false
	}
	if t.Year() < MinYear || t.Year() > MaxYear {
		return time.Time{}, false
	}
	return t, true
}
