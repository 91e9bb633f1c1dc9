package output

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr(v float64) *float64 { return &v }

func sampleResult() *models.Result {
	periods := []string{"2020-Q1", "2020-Q2", "2020-Q3", "2020-Q4"}
	meta := func(code, desc string) models.MetadataRecord {
		c := models.DefaultDatasetConstants()
		return models.MetadataRecord{
			Code:               code,
			CodeMnemonic:       strings.TrimSuffix(code, ".Q"),
			Description:        desc,
			UnitType:           "FLOW",
			DataType:           "CURRENCY",
			DataUnit:           "NZD",
			SeasonallyAdjusted: "NSA",
			Multiplier:         9,
			LastReleaseDate:    "2024-05-22T09:30:00",
			Frequency:          "Q",
			AggregationType:    c.AggregationType,
			Annualized:         c.Annualized,
			State:              c.State,
			Provider:           c.Provider,
			Source:             c.Source,
			SourceDescription:  c.SourceDescription,
			Country:            c.Country,
			Dataset:            c.Dataset,
		}
	}
	return &models.Result{
		RunID:    "run-1",
		BookName: "mps.xlsx",
		Timeline: models.Timeline{Periods: periods, Start: periods[0], End: periods[3]},
		Series: []models.Series{
			{Code: "CBP.NZL.GDP.Q", Description: "GDP", Sheet: "Output/Growth", Column: 2,
				Alignment: models.AlignDirect, Values: []*float64{ptr(1), ptr(2), nil, ptr(4)}, Points: 3},
			{Code: "CBP.NZL.CPI.Q", Description: "CPI", Sheet: "Prices", Column: 1,
				Alignment: models.AlignPositional, Values: []*float64{ptr(10), ptr(11)}, Points: 2},
		},
		Metadata: []models.MetadataRecord{
			meta("CBP.NZL.GDP.Q", "GDP"),
			meta("CBP.NZL.CPI.Q", "CPI"),
		},
		Sheets: []models.SheetOutcome{
			{Name: "Output/Growth", Columns: []models.ColumnOutcome{{Column: 2, Code: "CBP.NZL.GDP.Q"}}},
			{Name: "Empty", Reason: models.SkipSheetEmpty},
			{Name: "Prices", Columns: []models.ColumnOutcome{
				{Column: 0, Reason: models.SkipInsufficientPoints},
				{Column: 1, Code: "CBP.NZL.CPI.Q"},
			}},
		},
	}
}

func TestAssembleData(t *testing.T) {
	res := sampleResult()
	table := AssembleData(res.Timeline, res.Series)

	assert.Equal(t, []string{"PERIOD", "CBP.NZL.GDP.Q", "CBP.NZL.CPI.Q"}, table.Header)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, []interface{}{nil, "GDP", "CPI"}, table.Rows[0])
	assert.Equal(t, []interface{}{"2020-Q1", 1.0, 10.0}, table.Rows[1])
	assert.Equal(t, []interface{}{"2020-Q3", nil, nil}, table.Rows[3])
	assert.Equal(t, []interface{}{"2020-Q4", 4.0, nil}, table.Rows[4])
}

func TestAssembleMetadata(t *testing.T) {
	res := sampleResult()
	table := AssembleMetadata(res.Metadata)

	assert.Equal(t, models.MetadataColumns, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], len(models.MetadataColumns))
	assert.Equal(t, "CBP.NZL.GDP.Q", table.Rows[0][0])
	assert.Equal(t, 9, table.Rows[0][7])
	assert.Equal(t, "CBP", table.Rows[1][17])
}

func TestAssembleQA(t *testing.T) {
	tables := AssembleQA(sampleResult())

	require.Len(t, tables, 2)
	assert.Equal(t, "Output_Growth", tables[0].Name)
	assert.Equal(t, []string{"PERIOD", "CBP.NZL.GDP.Q"}, tables[0].Header)
	assert.Equal(t, "Prices", tables[1].Name)
	assert.Equal(t, []string{"PERIOD", "CBP.NZL.CPI.Q"}, tables[1].Header)
	assert.Len(t, tables[1].Rows, 5)
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"Prices", "Prices"},
		{"Output/Growth", "Output_Growth"},
		{"a[1]:b?*", "a_1_b_"},
		{"", "Sheet"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeSheetName(tt.in), "input %q", tt.in)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}
	long := strings.Repeat("y", 31)

	assert.Equal(t, "A_B", uniqueSheetName("A_B", used))
	assert.Equal(t, "A_B~2", uniqueSheetName("A_B", used))
	assert.Equal(t, "A_B~3", uniqueSheetName("A_B", used))
	assert.Equal(t, long, uniqueSheetName(long, used))
	assert.Equal(t, strings.Repeat("y", 29)+"~2", uniqueSheetName(long, used))
	assert.Equal(t, "a_b~4", uniqueSheetName("a_b", used))
}

func TestAssembleQACaseOnlyNames(t *testing.T) {
	res := sampleResult()
	res.Series[0].Sheet = "a/b"
	res.Series[1].Sheet = "A:b"
	res.Sheets[0].Name = "a/b"
	res.Sheets[2].Name = "A:b"

	tables := AssembleQA(res)
	require.Len(t, tables, 2)
	assert.Equal(t, "a_b", tables[0].Name)
	assert.Equal(t, "A_b~2", tables[1].Name)

	path := filepath.Join(t.TempDir(), "qa.xlsx")
	require.NoError(t, WriteWorkbook(path, tables...))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"a_b", "A_b~2"}, f.GetSheetList())

	first, err := f.GetRows("a_b")
	require.NoError(t, err)
	assert.Equal(t, []string{"PERIOD", "CBP.NZL.GDP.Q"}, first[0])
	second, err := f.GetRows("A_b~2")
	require.NoError(t, err)
	assert.Equal(t, []string{"PERIOD", "CBP.NZL.CPI.Q"}, second[0])
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mapped_output")
	now := func() time.Time { return time.Date(2024, 5, 22, 9, 30, 15, 0, time.UTC) }

	a, err := WriteArtifacts(dir, sampleResult(), WriteOptions{Now: now})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "CBP_DATA_20240522_093015.xlsx"), a.DataPath)
	assert.Equal(t, filepath.Join(dir, "CBP_META_20240522_093015.xlsx"), a.MetadataPath)
	assert.Equal(t, filepath.Join(dir, "CBP_20240522_093015.zip"), a.ArchivePath)
	assert.Equal(t, filepath.Join(dir, "CBP_QA_OUTPUT_20240522_093015.xlsx"), a.QAPath)
	for _, p := range a.Files() {
		assert.FileExists(t, p)
	}

	f, err := excelize.OpenFile(a.DataPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"PERIOD", "CBP.NZL.GDP.Q", "CBP.NZL.CPI.Q"}, rows[0])
	assert.Equal(t, []string{"", "GDP", "CPI"}, rows[1])
	assert.Equal(t, "2020-Q1", rows[2][0])
	assert.Equal(t, "1", rows[2][1])

	qa, err := excelize.OpenFile(a.QAPath)
	require.NoError(t, err)
	defer qa.Close()
	assert.Equal(t, []string{"Output_Growth", "Prices"}, qa.GetSheetList())

	zr, err := zip.OpenReader(a.ArchivePath)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, zf := range zr.File {
		names = append(names, zf.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"CBP_DATA_20240522_093015.xlsx", "CBP_META_20240522_093015.xlsx"}, names)
}

func TestWriteArtifactsSkipQA(t *testing.T) {
	dir := t.TempDir()
	a, err := WriteArtifacts(dir, sampleResult(), WriteOptions{SkipQA: true})
	require.NoError(t, err)

	assert.Empty(t, a.QAPath)
	assert.Len(t, a.Files(), 3)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestWriteArtifactsNoSeries(t *testing.T) {
	_, err := WriteArtifacts(t.TempDir(), &models.Result{}, WriteOptions{})
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), false)
	require.NoError(t, err)

	type series struct {
		Code   string     `json:"code"`
		Values []*float64 `json:"values"`
	}
	var decoded struct {
		RunID    string                   `json:"run_id"`
		Series   []series                 `json:"series"`
		Metadata []map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Series, 2)
	assert.Nil(t, decoded.Series[0].Values[2])
	assert.Equal(t, "NZD", decoded.Metadata[0]["DATA_UNIT"])

	pretty, err := TimelineToJSON(sampleResult().Timeline, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"periods\": [")
}
