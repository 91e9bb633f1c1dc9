// Package parser reads workbooks and recovers quarterly series from their columns.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads every sheet of f into tagged cells.
// Sheets that cannot be read are left out of the workbook and reported in
// the returned map keyed by sheet name.
func ReadWorkbook(f *excelize.File, bookName string) (*models.Workbook, map[string]error) {
	wb := &models.Workbook{BookName: bookName}
	failed := make(map[string]error)
	styles := newDateStyleCache(f)

	for _, sheetName := range f.GetSheetList() {
		sheet, err := readSheet(f, sheetName, styles)
		if err != nil {
			failed[sheetName] = err
			continue
		}
		wb.Sheets = append(wb.Sheets, *sheet)
	}
	return wb, failed
}

// readSheet reads one sheet into tagged cells.
func readSheet(f *excelize.File, sheetName string, styles *dateStyleCache) (*models.Sheet, error) {
	if styles == nil {
		styles = newDateStyleCache(f)
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{Name: sheetName, Rows: make([][]models.Cell, len(rows))}
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				cells[colIdx] = ClassifyValue(raw, excelize.CellTypeSharedString, false)
				continue
			}
			cellType, err := f.GetCellType(sheetName, axis)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			dateFmt := false
			if isNumericType(cellType) {
				dateFmt = styles.isDate(sheetName, axis)
			}
			cells[colIdx] = ClassifyValue(raw, cellType, dateFmt)
		}
		sheet.Rows[rowIdx] = cells
	}
	return sheet, nil
}

// ClassifyValue turns a raw cell value into a tagged cell.
// Numeric cells become numbers, or dates when dateFmt is set; string-typed
// cells stay text even when they look numeric.
func ClassifyValue(raw string, cellType excelize.CellType, dateFmt bool) models.Cell {
	if raw == "" {
		return models.EmptyCell()
	}
	switch cellType {
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return models.DateCell(t)
		}
		return models.TextCell(raw)
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return models.TextCell(raw)
		}
		if dateFmt {
			if t, err := excelize.ExcelDateToTime(n, false); err == nil {
				return models.DateCell(t)
			}
		}
		return models.NumberCell(n)
	default:
		return models.TextCell(raw)
	}
}

func isNumericType(t excelize.CellType) bool {
	return t == excelize.CellTypeUnset || t == excelize.CellTypeNumber
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateStyleCache remembers whether a style index carries a date number format.
type dateStyleCache struct {
	f    *excelize.File
	byID map[int]bool
}

func newDateStyleCache(f *excelize.File) *dateStyleCache {
	return &dateStyleCache{f: f, byID: make(map[int]bool)}
}

func (c *dateStyleCache) isDate(sheetName, axis string) bool {
	id, err := c.f.GetCellStyle(sheetName, axis)
	if err != nil || id == 0 {
		return false
	}
	if v, ok := c.byID[id]; ok {
		return v
	}
	v := false
	if style, err := c.f.GetStyle(id); err == nil && style != nil {
		custom := ""
		if style.CustomNumFmt != nil {
			custom = *style.CustomNumFmt
		}
		v = IsDateNumFmt(style.NumFmt, custom)
	}
	c.byID[id] = v
	return v
}

// IsDateNumFmt reports whether a number format renders dates.
// Built-in ids follow the OOXML table; custom formats are scanned for date
// tokens outside quoted literals and bracketed sections.
func IsDateNumFmt(id int, custom string) bool {
	if custom == "" {
		switch {
		case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
			return true
		}
		return false
	}

	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(custom) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	return strings.ContainsAny(stripped, "yd") || strings.Contains(stripped, "mmm")
}
