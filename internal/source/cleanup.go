package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Cleanup removes regular files older than maxAge from each directory
// (not recursive) and returns the removed paths. Missing directories are
// ignored; removal errors are joined and returned after all directories
// are visited.
func Cleanup(dirs []string, maxAge time.Duration, now time.Time) ([]string, error) {
	cutoff := now.Add(-maxAge)
	var (
		removed []string
		errs    []error
	)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			if !info.ModTime().Before(cutoff) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				errs = append(errs, err)
				continue
			}
			removed = append(removed, path)
		}
	}
	return removed, errors.Join(errs...)
}
