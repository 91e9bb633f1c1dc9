package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// PartSeparator joins description parts.
const PartSeparator = ";"

// Description is the text recovered for a column and the strategy that produced it.
type Description struct {
	Text string
	// Strategy is 1-5 for a heuristic match, 0 for the fallback text.
	Strategy int
	// Parts is the number of separator-delimited parts in Text.
	Parts int
}

type strategy func(s *models.Sheet, col int) (string, bool)

// strategies run in this order; a later one wins only with strictly more parts.
var strategies = []strategy{
	columnStack,
	titleWithHeader,
	columnBWithHeader,
	keywordWaterfall,
	headersWithMeasure,
}

var waterfallKeywords = []string{"figure", "title", "source", "footnote"}

// ExtractDescription recovers a description for column col of sheet.
func ExtractDescription(s *models.Sheet, col int) Description {
	best := Description{}
	for i, fn := range strategies {
		text, ok := fn(s, col)
		if !ok || text == "" {
			continue
		}
		parts := CountParts(text)
		if parts > best.Parts {
			best = Description{Text: text, Strategy: i + 1, Parts: parts}
		}
	}
	if best.Text == "" {
		text := FallbackDescription(s.Name, col)
		return Description{Text: text, Parts: CountParts(text)}
	}
	return best
}

// FallbackDescription is used when no strategy finds a description.
func FallbackDescription(sheet string, col int) string {
	return fmt.Sprintf("Data from sheet '%s' column %d", sheet, col+1)
}

// CountParts returns the number of separator-delimited parts in text.
func CountParts(text string) int {
	return len(strings.Split(text, PartSeparator))
}

// textAt returns the trimmed text of (row, col) when it is a text cell longer
// than minLen characters.
func textAt(s *models.Sheet, row, col, minLen int) (string, bool) {
	c := s.Cell(row, col)
	if c.Kind != models.CellText {
		return "", false
	}
	t := strings.TrimSpace(c.Text)
	if utf8.RuneCountInString(t) <= minLen {
		return "", false
	}
	return t, true
}

// firstTextIn returns the first text longer than minLen in col over rows [from, to).
func firstTextIn(s *models.Sheet, col, from, to, minLen int) (string, bool) {
	to = min(to, s.NumRows())
	for r := from; r < to; r++ {
		if t, ok := textAt(s, r, col, minLen); ok {
			return t, true
		}
	}
	return "", false
}

// textsIn returns every text longer than minLen in col over rows [from, to).
func textsIn(s *models.Sheet, col, from, to, minLen int) []string {
	var out []string
	to = min(to, s.NumRows())
	for r := from; r < to; r++ {
		if t, ok := textAt(s, r, col, minLen); ok {
			out = append(out, t)
		}
	}
	return out
}

// columnStack joins the labels stacked above the data in the column itself,
// e.g. Series;Source;Seasonal adjustment;Units.
func columnStack(s *models.Sheet, col int) (string, bool) {
	parts := textsIn(s, col, 0, 6, 2)
	if len(parts) < 3 {
		return "", false
	}
	return strings.Join(parts, PartSeparator), true
}

// titleWithHeader joins the sheet title block in column A with the column's
// own header in rows 5-7.
func titleWithHeader(s *models.Sheet, col int) (string, bool) {
	if col == 0 {
		return "", false
	}
	title := textsIn(s, 0, 0, 3, 2)
	if len(title) == 0 {
		return "", false
	}
	header, ok := firstTextIn(s, col, 4, 7, 1)
	if !ok {
		return "", false
	}
	return strings.Join(append(title, header), PartSeparator), true
}

// columnBWithHeader joins the labels in column B with the column's header.
func columnBWithHeader(s *models.Sheet, col int) (string, bool) {
	if s.NumCols() < 2 {
		return "", false
	}
	labels := textsIn(s, 1, 0, 6, 2)
	if len(labels) == 0 {
		return "", false
	}
	header, ok := firstTextIn(s, col, 0, 6, 1)
	if !ok {
		return "", false
	}
	return strings.Join(append(labels, header), PartSeparator), true
}

// keywordWaterfall collects figure/title/source/footnote lines from every
// column up to the target.
func keywordWaterfall(s *models.Sheet, col int) (string, bool) {
	var parts []string
	last := min(col+1, s.NumCols())
	for c := 0; c < last; c++ {
		for _, t := range textsIn(s, c, 0, 8, 3) {
			lower := strings.ToLower(t)
			for _, kw := range waterfallKeywords {
				if strings.Contains(lower, kw) {
					parts = append(parts, t)
					break
				}
			}
		}
	}
	if len(parts) < 2 {
		return "", false
	}
	return strings.Join(parts, PartSeparator), true
}

// headersWithMeasure joins unit-style headers (containing # % ( or )) at or
// left of the column with the column's first plain label.
func headersWithMeasure(s *models.Sheet, col int) (string, bool) {
	var headers []string
	measure := ""
	lastRow := min(8, s.NumRows())
	lastCol := min(s.NumCols(), col+2)
	for r := 0; r < lastRow; r++ {
		for c := 0; c < lastCol; c++ {
			t, ok := textAt(s, r, c, 2)
			if !ok {
				continue
			}
			if strings.ContainsAny(t, "#%()") {
				if c <= col {
					headers = append(headers, t)
				}
			} else if c == col && measure == "" {
				measure = t
			}
		}
	}
	if len(headers) == 0 && measure == "" {
		return "", false
	}
	if measure != "" {
		headers = append(headers, measure)
	}
	return strings.Join(headers, PartSeparator), true
}
