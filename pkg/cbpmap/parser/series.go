package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// DefaultMinPoints is the minimum number of values a series must keep.
// It also gates the positional fallback.
const DefaultMinPoints = 8

// NeighborOffsets are the row offsets searched when a value's own row has no date.
var NeighborOffsets = []int{-1, 0, 1, 2}

// SeriesParams tunes series extraction.
type SeriesParams struct {
	// MinPoints is the minimum number of resolved values.
	MinPoints int
	// DateColumns is how many leading columns hold row dates.
	DateColumns int
}

// DefaultSeriesParams returns the standard extraction parameters.
func DefaultSeriesParams() SeriesParams {
	return SeriesParams{MinPoints: DefaultMinPoints, DateColumns: DefaultDateColumns}
}

func (p SeriesParams) normalized() SeriesParams {
	if p.MinPoints <= 0 {
		p.MinPoints = DefaultMinPoints
	}
	if p.DateColumns <= 0 {
		p.DateColumns = DefaultDateColumns
	}
	return p
}

// Candidate is a column's values aligned to the timeline.
type Candidate struct {
	Values    []*float64
	Points    int
	Alignment models.Alignment
}

type numericRow struct {
	row   int
	value float64
}

// ExtractSeries aligns the numeric cells of column col to timeline periods.
// It returns models.SkipNone with the candidate, or the reason the column
// was discarded.
func ExtractSeries(s *models.Sheet, col int, tl models.Timeline, params SeriesParams) (Candidate, models.SkipReason) {
	params = params.normalized()

	byPeriod := make(map[string]float64)
	var numeric []numericRow

	for r := 0; r < s.NumRows(); r++ {
		v, ok := CoerceNumber(s.Cell(r, col))
		if !ok {
			continue
		}
		numeric = append(numeric, numericRow{row: r, value: v})

		period, found := rowPeriod(s, r, col, params.DateColumns)
		if !found {
			for _, off := range NeighborOffsets {
				if period, found = rowPeriod(s, r+off, col, params.DateColumns); found {
					break
				}
			}
		}
		if found {
			byPeriod[period] = v
		}
	}

	alignment := models.AlignDirect
	if len(byPeriod) == 0 && len(numeric) >= params.MinPoints {
		alignment = models.AlignPositional
		// numeric is already in row order.
		for i, nr := range numeric {
			if i >= tl.Len() {
				break
			}
			byPeriod[tl.Periods[i]] = nr.value
		}
	}

	if len(byPeriod) < params.MinPoints {
		return Candidate{}, models.SkipInsufficientPoints
	}

	values := make([]*float64, tl.Len())
	for i, p := range tl.Periods {
		if v, ok := byPeriod[p]; ok {
			values[i] = &v
		}
	}
	for len(values) > params.MinPoints && values[len(values)-1] == nil {
		values = values[:len(values)-1]
	}

	points := 0
	for _, v := range values {
		if v != nil {
			points++
		}
	}
	if points < params.MinPoints {
		return Candidate{}, models.SkipSparseSeries
	}

	return Candidate{Values: values, Points: points, Alignment: alignment}, models.SkipNone
}

// rowPeriod looks for a date in the leading columns of row, skipping the data column.
func rowPeriod(s *models.Sheet, row, dataCol, dateColumns int) (string, bool) {
	if row < 0 || row >= s.NumRows() {
		return "", false
	}
	for c := 0; c < dateColumns; c++ {
		if c == dataCol {
			continue
		}
		if label, ok := NormalizeDate(s.Cell(row, c)); ok {
			return label, true
		}
	}
	return "", false
}

// CoerceNumber returns the numeric value of a cell. Numbers pass through;
// text is parsed after trimming. Dates, empty cells and non-finite values are
// not numeric.
func CoerceNumber(c models.Cell) (float64, bool) {
	var v float64
	switch c.Kind {
	case models.CellNumber:
		v = c.Number
	case models.CellText:
		n, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return 0, false
		}
		v = n
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
