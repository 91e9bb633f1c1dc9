package parser

import (
	"testing"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

func TestQuarterLabel(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2021-Q1"},
		{time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC), "2021-Q1"},
		{time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), "2021-Q2"},
		{time.Date(2021, 5, 15, 0, 0, 0, 0, time.UTC), "2021-Q2"},
		{time.Date(2021, 9, 30, 0, 0, 0, 0, time.UTC), "2021-Q3"},
		{time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), "2021-Q4"},
	}

	for _, tt := range tests {
		if got := QuarterLabel(tt.date); got != tt.expected {
			t.Errorf("QuarterLabel(%s) = %q, expected %q", tt.date.Format("2006-01-02"), got, tt.expected)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		cell     models.Cell
		expected string
		ok       bool
	}{
		{"native date", models.DateCell(time.Date(2021, 5, 15, 0, 0, 0, 0, time.UTC)), "2021-Q2", true},
		{"iso text", models.TextCell("2021-05-15"), "2021-Q2", true},
		{"iso text q1", models.TextCell("2021-01-01"), "2021-Q1", true},
		{"iso text q4", models.TextCell("2021-12-31"), "2021-Q4", true},
		{"day first", models.TextCell("31/03/2020"), "2020-Q1", true},
		{"day first wins when ambiguous", models.TextCell("05/04/2020"), "2020-Q2", true},
		{"month first", models.TextCell("03/31/2020"), "2020-Q1", true},
		{"day first dashes", models.TextCell("15-11-2019"), "2019-Q4", true},
		{"year first slashes", models.TextCell("2018/08/01"), "2018-Q3", true},
		{"padded text", models.TextCell("  2021-05-15 "), "2021-Q2", true},
		{"serial", models.NumberCell(43831), "2020-Q1", true},
		{"serial leap day", models.NumberCell(36585), "2000-Q1", true},
		{"serial fraction", models.NumberCell(43922.5), "2020-Q2", true},
		{"serial before 1990", models.NumberCell(100), "", false},
		{"serial after 2030", models.NumberCell(60000), "", false},
		{"serial above max", models.NumberCell(80001), "", false},
		{"zero", models.NumberCell(0), "", false},
		{"negative", models.NumberCell(-5), "", false},
		{"plain text", models.TextCell("GDP growth"), "", false},
		{"quarter text", models.TextCell("2020 Q1"), "", false},
		{"empty", models.EmptyCell(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.cell)
			if ok != tt.ok {
				t.Fatalf("NormalizeDate(%v) ok = %v, expected %v", tt.cell, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("NormalizeDate(%v) = %q, expected %q", tt.cell, got, tt.expected)
			}
		})
	}
}
