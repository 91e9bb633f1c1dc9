// Package output assembles extraction results into tables and writes them
// as workbooks, archives, JSON and SQLite catalogs.
package output

import (
	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// PeriodColumn heads the period column of a data table.
const PeriodColumn = "PERIOD"

// Table is a header plus rows of cell values. Nil values are empty cells.
type Table struct {
	// Name is the worksheet name the table is written to.
	Name   string
	Header []string
	Rows   [][]interface{}
}

// AssembleData builds the period-aligned data table. The first row holds
// each series' description under a nil period; every following row is one
// timeline period.
func AssembleData(tl models.Timeline, series []models.Series) Table {
	header := make([]string, 0, len(series)+1)
	header = append(header, PeriodColumn)
	for _, s := range series {
		header = append(header, s.Code)
	}

	n := tl.Len()
	rows := make([][]interface{}, 0, n+1)

	desc := make([]interface{}, 0, len(series)+1)
	desc = append(desc, nil)
	for _, s := range series {
		desc = append(desc, s.Description)
	}
	rows = append(rows, desc)

	padded := make([][]*float64, len(series))
	for i, s := range series {
		padded[i] = s.Padded(n)
	}
	for p, period := range tl.Periods {
		row := make([]interface{}, 0, len(series)+1)
		row = append(row, period)
		for i := range series {
			if v := padded[i][p]; v != nil {
				row = append(row, *v)
			} else {
				row = append(row, nil)
			}
		}
		rows = append(rows, row)
	}

	return Table{Name: "Sheet1", Header: header, Rows: rows}
}

// AssembleMetadata builds the metadata table, one row per record.
func AssembleMetadata(records []models.MetadataRecord) Table {
	rows := make([][]interface{}, len(records))
	for i, m := range records {
		rows[i] = m.Row()
	}
	header := append([]string(nil), models.MetadataColumns...)
	return Table{Name: "Sheet1", Header: header, Rows: rows}
}

// AssembleQA builds one data table per source sheet that contributed
// series, in workbook order. Table names are valid, unique worksheet names.
func AssembleQA(res *models.Result) []Table {
	var tables []Table
	used := make(map[string]bool)
	for _, name := range res.SheetNames() {
		series, _ := res.SeriesForSheet(name)
		t := AssembleData(res.Timeline, series)
		t.Name = uniqueSheetName(SanitizeSheetName(name), used)
		tables = append(tables, t)
	}
	return tables
}
