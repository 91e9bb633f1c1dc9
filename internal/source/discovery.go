// Package source locates downloaded workbooks and prunes old files.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoWorkbooks indicates the downloads directory holds no workbook.
var ErrNoWorkbooks = errors.New("no Excel files found")

// PriorityPatterns are matched against lower-cased file names, in order.
var PriorityPatterns = []string{"mps", "monetary", "policy", "rbnz", "data"}

var workbookExts = []string{".xlsx", ".xlsm"}

// WorkbookFile is a candidate input file.
type WorkbookFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Name returns the file's base name.
func (w WorkbookFile) Name() string {
	return filepath.Base(w.Path)
}

// FindWorkbooks lists workbook files in dir, skipping Office lock files
// (names starting with "~"). Results are sorted by name.
func FindWorkbooks(dir string) ([]WorkbookFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read downloads directory: %w", err)
	}

	var files []WorkbookFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~") || !hasWorkbookExt(name) {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, WorkbookFile{
			Path:    filepath.Join(dir, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	return files, nil
}

func hasWorkbookExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range workbookExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Select picks the workbook to process: the only file, else the first file
// matching the earliest priority pattern, else the most recently modified.
func Select(files []WorkbookFile) (WorkbookFile, string, error) {
	switch len(files) {
	case 0:
		return WorkbookFile{}, "", ErrNoWorkbooks
	case 1:
		return files[0], "only candidate", nil
	}

	for _, pattern := range PriorityPatterns {
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.Name()), pattern) {
				return f, fmt.Sprintf("matched pattern %q", pattern), nil
			}
		}
	}

	latest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, "most recent", nil
}
