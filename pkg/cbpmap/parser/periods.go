package parser

import (
	"sort"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// DefaultDateColumns is how many leading columns are searched for dates.
const DefaultDateColumns = 3

// Fallback bounds used when a workbook has no recognizable dates.
const (
	FallbackStart = "1990-Q1"
	FallbackEnd   = "2030-Q4"
)

// ScanPeriods collects every quarter found in the leading columns of every
// sheet into a sorted, de-duplicated timeline.
func ScanPeriods(wb *models.Workbook, dateColumns int) models.Timeline {
	if dateColumns <= 0 {
		dateColumns = DefaultDateColumns
	}

	seen := make(map[string]struct{})
	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		for r := 0; r < sheet.NumRows(); r++ {
			for c := 0; c < dateColumns; c++ {
				if label, ok := NormalizeDate(sheet.Cell(r, c)); ok {
					seen[label] = struct{}{}
				}
			}
		}
	}

	if len(seen) == 0 {
		return models.Timeline{Start: FallbackStart, End: FallbackEnd, Fallback: true}
	}

	periods := make([]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periodLess(periods[i], periods[j]) })

	return models.Timeline{
		Periods: periods,
		Start:   periods[0],
		End:     periods[len(periods)-1],
	}
}

// periodLess orders quarter labels chronologically.
func periodLess(a, b string) bool {
	ya, qa := splitPeriod(a)
	yb, qb := splitPeriod(b)
	if ya != yb {
		return ya < yb
	}
	return qa < qb
}

func splitPeriod(p string) (year, quarter int) {
	i := len(p) - 3
	if i <= 0 || p[i] != '-' || p[i+1] != 'Q' {
		return 0, 0
	}
	for _, r := range p[:i] {
		if r < '0' || r > '9' {
			return 0, 0
		}
		year = year*10 + int(r-'0')
	}
	return year, int(p[i+2] - '0')
}
