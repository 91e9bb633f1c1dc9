package output

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
)

// StampLayout formats the timestamp embedded in artifact names.
const StampLayout = "20060102_150405"

// Artifacts lists the files written for one run.
type Artifacts struct {
	DataPath     string `json:"data_path"`
	MetadataPath string `json:"metadata_path"`
	ArchivePath  string `json:"archive_path"`
	QAPath       string `json:"qa_path,omitempty"`
}

// Files returns the paths of every artifact that was written.
func (a Artifacts) Files() []string {
	var out []string
	for _, p := range []string{a.QAPath, a.DataPath, a.MetadataPath, a.ArchivePath} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WriteOptions controls which artifacts are produced.
type WriteOptions struct {
	// SkipQA disables the per-sheet QA workbook.
	SkipQA bool
	// Now stamps file names. Nil means time.Now.
	Now func() time.Time
}

// WriteArtifacts writes the DATA and META workbooks, archives them together,
// and writes the QA workbook, all into dir. Files already written are
// removed when a later step fails.
func WriteArtifacts(dir string, res *models.Result, opts WriteOptions) (Artifacts, error) {
	if res == nil || len(res.Series) == 0 {
		return Artifacts{}, fmt.Errorf("write artifacts: no series")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Artifacts{}, fmt.Errorf("create output directory: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	stamp := now().Format(StampLayout)

	var (
		a       Artifacts
		written []string
	)
	fail := func(err error) (Artifacts, error) {
		for _, p := range written {
			_ = os.Remove(p)
		}
		return Artifacts{}, err
	}

	if !opts.SkipQA {
		a.QAPath = filepath.Join(dir, fmt.Sprintf("CBP_QA_OUTPUT_%s.xlsx", stamp))
		if err := WriteWorkbook(a.QAPath, AssembleQA(res)...); err != nil {
			return fail(fmt.Errorf("write QA workbook: %w", err))
		}
		written = append(written, a.QAPath)
	}

	a.DataPath = filepath.Join(dir, fmt.Sprintf("CBP_DATA_%s.xlsx", stamp))
	if err := WriteWorkbook(a.DataPath, AssembleData(res.Timeline, res.Series)); err != nil {
		return fail(fmt.Errorf("write data workbook: %w", err))
	}
	written = append(written, a.DataPath)

	a.MetadataPath = filepath.Join(dir, fmt.Sprintf("CBP_META_%s.xlsx", stamp))
	if err := WriteWorkbook(a.MetadataPath, AssembleMetadata(res.Metadata)); err != nil {
		return fail(fmt.Errorf("write metadata workbook: %w", err))
	}
	written = append(written, a.MetadataPath)

	a.ArchivePath = filepath.Join(dir, fmt.Sprintf("CBP_%s.zip", stamp))
	if err := Archive(a.ArchivePath, a.DataPath, a.MetadataPath); err != nil {
		written = append(written, a.ArchivePath)
		return fail(fmt.Errorf("archive outputs: %w", err))
	}
	return a, nil
}

// Archive writes files into a deflate-compressed zip at path, flat by base name.
func Archive(path string, files ...string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	for _, name := range files {
		if err := addToZip(zw, name); err != nil {
			_ = zw.Close()
			return fmt.Errorf("add %s: %w", filepath.Base(name), err)
		}
	}
	return zw.Close()
}

func addToZip(zw *zip.Writer, name string) error {
	in, err := os.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(name)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
