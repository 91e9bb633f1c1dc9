package models

// SkipReason explains why a column or sheet produced no series.
type SkipReason string

const (
	// SkipNone marks an accepted unit.
	SkipNone SkipReason = ""
	// SkipInsufficientPoints means fewer resolved (period, value) pairs than required.
	SkipInsufficientPoints SkipReason = "insufficient_points"
	// SkipSparseSeries means too few non-missing values after timeline alignment.
	SkipSparseSeries SkipReason = "sparse_series"
	// SkipExtractionFailed means column processing failed unexpectedly.
	SkipExtractionFailed SkipReason = "extraction_failed"
	// SkipSheetUnreadable means the sheet could not be read.
	SkipSheetUnreadable SkipReason = "unreadable"
	// SkipSheetEmpty means the sheet has no cells.
	SkipSheetEmpty SkipReason = "empty"
)

// ColumnOutcome is the result of processing one column.
type ColumnOutcome struct {
	Column int        `json:"column"`
	Code   string     `json:"code,omitempty"`
	Reason SkipReason `json:"reason,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Accepted reports whether the column produced a series.
func (o ColumnOutcome) Accepted() bool {
	return o.Reason == SkipNone
}

// SheetOutcome is the result of processing one sheet.
type SheetOutcome struct {
	Name    string          `json:"name"`
	Reason  SkipReason      `json:"reason,omitempty"`
	Error   string          `json:"error,omitempty"`
	Columns []ColumnOutcome `json:"columns,omitempty"`
}

// Accepted returns the number of series the sheet contributed.
func (o SheetOutcome) Accepted() int {
	n := 0
	for _, c := range o.Columns {
		if c.Accepted() {
			n++
		}
	}
	return n
}

// Result is the outcome of one normalization run.
type Result struct {
	// RunID identifies the run in logs and catalogs.
	RunID string `json:"run_id"`
	// BookName is the source workbook file name.
	BookName string `json:"book_name"`
	// Timeline is the master period timeline.
	Timeline Timeline `json:"timeline"`
	// Series holds accepted series in extraction order.
	Series []Series `json:"series"`
	// Metadata holds one record per series, in the same order.
	Metadata []MetadataRecord `json:"metadata"`
	// Sheets holds per-sheet outcomes in workbook order.
	Sheets []SheetOutcome `json:"sheets"`
}

// SheetNames returns the names of sheets that contributed at least one series,
// in workbook order.
func (r *Result) SheetNames() []string {
	var names []string
	for _, s := range r.Sheets {
		if s.Accepted() > 0 {
			names = append(names, s.Name)
		}
	}
	return names
}

// SeriesForSheet returns the series and metadata records originating from sheet.
func (r *Result) SeriesForSheet(sheet string) ([]Series, []MetadataRecord) {
	var series []Series
	var meta []MetadataRecord
	for i, s := range r.Series {
		if s.Sheet == sheet {
			series = append(series, s)
			meta = append(meta, r.Metadata[i])
		}
	}
	return series, meta
}
