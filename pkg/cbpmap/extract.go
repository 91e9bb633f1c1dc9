package cbpmap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cbpdata/cbpmap/pkg/cbpmap/models"
	"github.com/cbpdata/cbpmap/pkg/cbpmap/parser"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Extract opens the workbook at path and normalizes it.
func Extract(ctx context.Context, path string, opts Options) (*models.Result, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	defer f.Close()

	wb, failed := parser.ReadWorkbook(f, filepath.Base(path))
	return process(ctx, wb, failed, f.GetSheetList(), opts)
}

// Process normalizes an already loaded workbook.
func Process(ctx context.Context, wb *models.Workbook, opts Options) (*models.Result, error) {
	names := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		names[i] = s.Name
	}
	return process(ctx, wb, nil, names, opts)
}

// process runs the pipeline. sheetOrder lists every sheet of the source,
// including those in failed that could not be read.
func process(ctx context.Context, wb *models.Workbook, failed map[string]error, sheetOrder []string, opts Options) (*models.Result, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Constants == (models.DatasetConstants{}) {
		opts.Constants = models.DefaultDatasetConstants()
	}
	log := opts.logger().With(slog.String("run_id", opts.RunID), slog.String("book", wb.BookName))

	timeline := parser.ScanPeriods(wb, opts.DateColumns)
	if timeline.Fallback {
		log.Warn("No dates found in source data, using default range",
			slog.String("start", timeline.Start),
			slog.String("end", timeline.End))
	} else {
		log.Info("Found date range",
			slog.String("start", timeline.Start),
			slog.String("end", timeline.End),
			slog.Int("periods", timeline.Len()))
	}

	run := &runner{
		opts:     opts,
		log:      log,
		timeline: timeline,
		registry: parser.NewCodeRegistry(),
		released: opts.now().Format(ReleaseDateLayout),
		result: &models.Result{
			RunID:    opts.RunID,
			BookName: wb.BookName,
			Timeline: timeline,
		},
	}

	for _, name := range sheetOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err, ok := failed[name]; ok {
			extErr := NewExtractionError(name, "sheet", err)
			log.Warn("Could not read sheet", slog.String("sheet", name), slog.String("error", extErr.Error()))
			run.result.Sheets = append(run.result.Sheets, models.SheetOutcome{
				Name:   name,
				Reason: models.SkipSheetUnreadable,
				Error:  extErr.Error(),
			})
			continue
		}
		sheet, ok := wb.Sheet(name)
		if !ok {
			continue
		}
		run.result.Sheets = append(run.result.Sheets, run.processSheet(sheet))
	}

	log.Info("Extraction finished",
		slog.Int("series", len(run.result.Series)),
		slog.Int("sheets", len(sheetOrder)))

	if len(run.result.Series) == 0 {
		return nil, ErrNoSeries
	}
	return run.result, nil
}

type runner struct {
	opts     Options
	log      *slog.Logger
	timeline models.Timeline
	registry *parser.CodeRegistry
	released string
	result   *models.Result
}

func (r *runner) processSheet(sheet *models.Sheet) models.SheetOutcome {
	log := r.log.With(slog.String("sheet", sheet.Name))
	out := models.SheetOutcome{Name: sheet.Name}

	bounds, ok := parser.DataBounds(sheet)
	if !ok {
		log.Info("Skipping empty sheet")
		out.Reason = models.SkipSheetEmpty
		return out
	}
	log.Info("Processing sheet",
		slog.String("range", bounds.Range()),
		slog.Int("cells", bounds.NonEmpty),
		slog.Float64("density", bounds.Density()))

	for col := 0; col <= bounds.MaxCol; col++ {
		outcome := r.processColumn(sheet, col)
		out.Columns = append(out.Columns, outcome)
		if !outcome.Accepted() {
			log.Debug("Column skipped",
				slog.Int("column", col),
				slog.String("reason", string(outcome.Reason)),
				slog.String("error", outcome.Error))
		}
	}

	log.Info("Sheet processed", slog.Int("series", out.Accepted()))
	return out
}

// processColumn turns one column into a series. A panic while reading the
// column is reported as an extraction failure.
func (r *runner) processColumn(sheet *models.Sheet, col int) (out models.ColumnOutcome) {
	out.Column = col
	defer func() {
		if p := recover(); p != nil {
			err := NewExtractionError(sheet.Name, fmt.Sprintf("column %d", col), fmt.Errorf("%v", p))
			out = models.ColumnOutcome{Column: col, Reason: models.SkipExtractionFailed, Error: err.Error()}
		}
	}()

	cand, reason := parser.ExtractSeries(sheet, col, r.timeline, r.opts.seriesParams())
	if reason != models.SkipNone {
		out.Reason = reason
		return out
	}

	desc := parser.ExtractDescription(sheet, col)
	code := r.registry.Issue(desc.Text)
	units := parser.ClassifyUnits(desc.Text)
	c := r.opts.Constants

	series := models.Series{
		Code:        code,
		Description: desc.Text,
		Sheet:       sheet.Name,
		Column:      col,
		Strategy:    desc.Strategy,
		Alignment:   cand.Alignment,
		Values:      cand.Values,
		Points:      cand.Points,
	}
	meta := models.MetadataRecord{
		Code:               code,
		CodeMnemonic:       parser.Mnemonic(code),
		Description:        desc.Text,
		UnitType:           units.UnitType,
		DataType:           units.DataType,
		DataUnit:           units.DataUnit,
		SeasonallyAdjusted: parser.SeasonalAdjustment(desc.Text),
		Multiplier:         parser.Multiplier(desc.Text),
		LastReleaseDate:    r.released,
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
	r.result.Series = append(r.result.Series, series)
	r.result.Metadata = append(r.result.Metadata, meta)

	r.log.Debug("Series extracted",
		slog.String("sheet", sheet.Name),
		slog.Int("column", col),
		slog.String("code", code),
		slog.Int("strategy", desc.Strategy),
		slog.String("alignment", string(cand.Alignment)),
		slog.Int("points", cand.Points))

	out.Code = code
	return out
}
