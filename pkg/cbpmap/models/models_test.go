package models

import (
	"testing"
	"time"
)

func TestSheetAccessors(t *testing.T) {
	s := &Sheet{Name: "GDP", Rows: [][]Cell{
		{TextCell("a")},
		{EmptyCell(), NumberCell(1.5), EmptyCell()},
	}}

	if s.NumRows() != 2 || s.NumCols() != 3 {
		t.Errorf("size = %dx%d, expected 2x3", s.NumRows(), s.NumCols())
	}
	if c := s.Cell(1, 1); c.Kind != CellNumber || c.String() != "1.5" {
		t.Errorf("Cell(1,1) = %v (%s)", c, c.Kind)
	}
	for _, rc := range [][2]int{{-1, 0}, {0, 1}, {5, 5}} {
		if !s.Cell(rc[0], rc[1]).IsEmpty() {
			t.Errorf("Cell(%d,%d) should be empty", rc[0], rc[1])
		}
	}
	if s.IsEmpty() {
		t.Error("sheet with cells reported empty")
	}
}

func TestCellString(t *testing.T) {
	d := DateCell(time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC))
	if d.String() != "2020-03-31T00:00:00Z" {
		t.Errorf("date String() = %q", d.String())
	}
	if d.Kind.String() != "date" || CellEmpty.String() != "empty" {
		t.Errorf("unexpected kind names")
	}
}

func TestSeriesPadded(t *testing.T) {
	v := 2.0
	s := Series{Values: []*float64{&v, nil}}

	padded := s.Padded(4)
	if len(padded) != 4 || *padded[0] != 2 || padded[1] != nil || padded[3] != nil {
		t.Errorf("Padded(4) = %v", padded)
	}
}

func TestResultSeriesForSheet(t *testing.T) {
	r := &Result{
		Series:   []Series{{Code: "A", Sheet: "S1"}, {Code: "B", Sheet: "S2"}, {Code: "C", Sheet: "S1"}},
		Metadata: []MetadataRecord{{Code: "A"}, {Code: "B"}, {Code: "C"}},
		Sheets: []SheetOutcome{
			{Name: "S1", Columns: []ColumnOutcome{{Code: "A"}, {Reason: SkipInsufficientPoints}, {Code: "C"}}},
			{Name: "S2", Columns: []ColumnOutcome{{Code: "B"}}},
			{Name: "S3", Reason: SkipSheetEmpty},
		},
	}

	series, meta := r.SeriesForSheet("S1")
	if len(series) != 2 || series[1].Code != "C" || meta[1].Code != "C" {
		t.Errorf("SeriesForSheet(S1) = %v, %v", series, meta)
	}
	if names := r.SheetNames(); len(names) != 2 || names[0] != "S1" || names[1] != "S2" {
		t.Errorf("SheetNames() = %v", names)
	}
	if r.Sheets[0].Accepted() != 2 {
		t.Errorf("Accepted() = %d, expected 2", r.Sheets[0].Accepted())
	}
}

func TestMetadataRow(t *testing.T) {
	m := MetadataRecord{Code: "X", Multiplier: 3, Dataset: "CBP"}
	row := m.Row()
	if len(row) != len(MetadataColumns) {
		t.Fatalf("len(Row()) = %d, expected %d", len(row), len(MetadataColumns))
	}
	if row[0] != "X" || row[7] != 3 || row[17] != "CBP" {
		t.Errorf("Row() = %v", row)
	}
}
