// Package report writes the plain-text pipeline summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary describes one completed pipeline run.
type Summary struct {
	RunID       string
	Started     time.Time
	Finished    time.Time
	Status      string
	SourceFile  string
	Series      int
	Periods     string
	OutputFiles []string
	SourceFiles []string
}

// Write renders s to w.
func Write(w io.Writer, s Summary) error {
	var b strings.Builder
	b.WriteString("RBNZ CBP Data Pipeline Execution Summary\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Run ID: %s\n", s.RunID)
	fmt.Fprintf(&b, "Execution Time: %s\n", s.Started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %s\n", s.Finished.Sub(s.Started).Round(time.Millisecond))
	fmt.Fprintf(&b, "Pipeline Status: %s\n", s.Status)
	if s.SourceFile != "" {
		fmt.Fprintf(&b, "Processed File: %s\n", filepath.Base(s.SourceFile))
	}
	fmt.Fprintf(&b, "Series Extracted: %s\n", humanize.Comma(int64(s.Series)))
	if s.Periods != "" {
		fmt.Fprintf(&b, "Period Range: %s\n", s.Periods)
	}

	b.WriteString("\nOutput Files Created:\n")
	b.WriteString(strings.Repeat("-", 25) + "\n")
	writeFiles(&b, s.OutputFiles)

	if len(s.SourceFiles) > 0 {
		b.WriteString("\nSource Files:\n")
		b.WriteString(strings.Repeat("-", 15) + "\n")
		writeFiles(&b, s.SourceFiles)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFiles(b *strings.Builder, files []string) {
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			fmt.Fprintf(b, "  %s (missing)\n", filepath.Base(f))
			continue
		}
		size := info.Size()
		fmt.Fprintf(b, "  %s (%s bytes, %s)\n", filepath.Base(f), humanize.Comma(size), humanize.Bytes(uint64(size)))
	}
}

// WriteFile renders s to path.
func WriteFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
