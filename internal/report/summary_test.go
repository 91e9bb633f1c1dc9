package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "CBP_DATA_20240522_093015.xlsx")
	require.NoError(t, os.WriteFile(data, []byte(strings.Repeat("x", 2048)), 0644))

	started := time.Date(2024, 5, 22, 9, 30, 15, 0, time.UTC)
	s := Summary{
		RunID:       "run-1",
		Started:     started,
		Finished:    started.Add(1500 * time.Millisecond),
		Status:      "SUCCESS",
		SourceFile:  filepath.Join("downloads", "mps.xlsx"),
		Series:      1234,
		Periods:     "2020-Q1 to 2021-Q4",
		OutputFiles: []string{data, filepath.Join(dir, "gone.zip")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "RBNZ CBP Data Pipeline Execution Summary\n"))
	assert.Contains(t, out, "Run ID: run-1\n")
	assert.Contains(t, out, "Execution Time: 2024-05-22 09:30:15\n")
	assert.Contains(t, out, "Duration: 1.5s\n")
	assert.Contains(t, out, "Processed File: mps.xlsx\n")
	assert.Contains(t, out, "Series Extracted: 1,234\n")
	assert.Contains(t, out, "Period Range: 2020-Q1 to 2021-Q4\n")
	assert.Contains(t, out, "  CBP_DATA_20240522_093015.xlsx (2,048 bytes, 2.0 kB)\n")
	assert.Contains(t, out, "  gone.zip (missing)\n")
	assert.NotContains(t, out, "Source Files:")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_summary.txt")
	require.NoError(t, WriteFile(path, Summary{RunID: "run-2", Status: "SUCCESS", SourceFiles: []string{"a.xlsx"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run ID: run-2")
	assert.Contains(t, string(data), "Source Files:")
}
