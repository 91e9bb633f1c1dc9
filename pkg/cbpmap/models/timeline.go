package models

// Timeline is the master list of quarters found in a workbook.
type Timeline struct {
	// Periods holds unique quarter labels in ascending order.
	Periods []string `json:"periods"`
	// Start is the first period, or the fallback start when no dates were found.
	Start string `json:"start"`
	// End is the last period, or the fallback end when no dates were found.
	End string `json:"end"`
	// Fallback is set when no dates were found and Periods is empty.
	Fallback bool `json:"fallback,omitempty"`
}

// Len returns the number of explicit periods.
func (t Timeline) Len() int {
	return len(t.Periods)
}

