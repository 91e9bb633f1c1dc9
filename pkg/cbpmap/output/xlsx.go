package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLen is Excel's worksheet name limit.
const MaxSheetNameLen = 31

var invalidSheetChars = regexp.MustCompile(`[\\/*?\[\]:]+`)

// SanitizeSheetName replaces characters Excel rejects and truncates to 31 characters.
func SanitizeSheetName(name string) string {
	name = invalidSheetChars.ReplaceAllString(name, "_")
	if utf8.RuneCountInString(name) > MaxSheetNameLen {
		name = string([]rune(name)[:MaxSheetNameLen])
	}
	if name == "" {
		name = "Sheet"
	}
	return name
}

// uniqueSheetName suffixes name with ~2, ~3, ... until it is not in used.
// Excel compares sheet names case-insensitively, so used is keyed on the
// lower-cased name.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := "~" + strconv.Itoa(n)
		base := []rune(name)
		if len(base)+len(suffix) > MaxSheetNameLen {
			base = base[:MaxSheetNameLen-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// WriteWorkbook writes tables as worksheets of a new workbook at path.
func WriteWorkbook(path string, tables ...Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("write %s: no tables", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", t.Name, err)
		}
		if err := writeTable(f, t); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeTable(f *excelize.File, t Table) error {
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return fmt.Errorf("stream sheet %q: %w", t.Name, err)
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header of %q: %w", t.Name, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+2, t.Name, err)
		}
	}
	return sw.Flush()
}
