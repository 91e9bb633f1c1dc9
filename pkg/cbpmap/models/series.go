package models

// Alignment records how a series' values were matched to periods.
type Alignment string

const (
	// AlignDirect means periods came from date cells on or near the value's row.
	AlignDirect Alignment = "direct"
	// AlignPositional means values were assigned to timeline periods in row order.
	AlignPositional Alignment = "positional"
)

// Series is one accepted quarterly sequence extracted from a sheet column.
type Series struct {
	// Code is the unique generated identifier.
	Code string `json:"code"`
	// Description is the recovered column description.
	Description string `json:"description"`
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// Column is the 0-based source column index.
	Column int `json:"column"`
	// Strategy is the description strategy that won (0 for the fallback text).
	Strategy int `json:"strategy"`
	// Alignment is how values were matched to periods.
	Alignment Alignment `json:"alignment"`
	// Values is aligned to the timeline from its first period; nil is missing.
	// Trailing missing entries are trimmed.
	Values []*float64 `json:"values"`
	// Points is the number of non-nil values.
	Points int `json:"points"`
}

// Padded returns the values extended with nils to n entries.
func (s Series) Padded(n int) []*float64 {
	out := make([]*float64, n)
	copy(out, s.Values)
	return out
}
