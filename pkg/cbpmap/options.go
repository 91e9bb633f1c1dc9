// Package cbpmap normalizes quarterly indicator workbooks into coded
// time-series data and metadata tables.
package cbpmap

import (
	"log/slog"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/cbpdata/cbpmap/pkg/cbpmap/parser"
)

// ReleaseDateLayout formats LAST_RELEASE_DATE.
const ReleaseDateLayout = "2006-01-02T15:04:05"

// Options configures a normalization run.
type Options struct {
	// MinPoints is the minimum number of values a series must keep.
	// Zero means parser.DefaultMinPoints.
	MinPoints int
	// DateColumns is how many leading columns are searched for dates.
	// Zero means parser.DefaultDateColumns.
	DateColumns int
	// Constants fills the fixed metadata fields.
	Constants models.DatasetConstants
	// RunID is attached to logs and the result. Empty means a new UUID.
	RunID string
	// Now stamps LAST_RELEASE_DATE. Nil means time.Now.
	Now func() time.Time
	// Logger receives progress and skip messages. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		MinPoints:   parser.DefaultMinPoints,
		DateColumns: parser.DefaultDateColumns,
		Constants:   models.DefaultDatasetConstants(),
	}
}

func (o Options) seriesParams() parser.SeriesParams {
	return parser.SeriesParams{MinPoints: o.MinPoints, DateColumns: o.DateColumns}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
