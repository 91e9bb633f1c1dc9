package models

import (
	"strconv"
	"time"
)

// CellKind identifies which payload of a Cell is meaningful.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellText is a string cell.
	CellText
	// CellNumber is a numeric cell without a date format.
	CellNumber
	// CellDate is a date or date-time cell.
	CellDate
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a tagged spreadsheet value.
type Cell struct {
	// Kind selects the payload field.
	Kind CellKind `json:"kind"`
	// Text holds the value of a CellText cell.
	Text string `json:"text,omitempty"`
	// Number holds the value of a CellNumber cell.
	Number float64 `json:"number,omitempty"`
	// Time holds the value of a CellDate cell.
	Time time.Time `json:"time,omitempty"`
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// DateCell returns a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String renders the cell payload for logs and debugging.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case CellDate:
		return c.Time.Format(time.RFC3339)
	default:
		return ""
	}
}
