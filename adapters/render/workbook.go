package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"venturelens/domain/evaluation"
	"venturelens/domain/score"
	"venturelens/internal/errors"
)

// WorkbookWriter exports evaluation numbers to an Excel workbook so the
// benchmark table and score breakdown can be reworked offline.
type WorkbookWriter struct{}

func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write saves the workbook for one completed evaluation to path.
func (w *WorkbookWriter) Write(path string, result *evaluation.Result) error {
	if result == nil || result.Startup == nil {
		return errors.InvalidInput("evaluation result is incomplete")
	}

	f := excelize.NewFile()
	defer f.Close()

	const scoresSheet = "Scores"
	if err := f.SetSheetName("Sheet1", scoresSheet); err != nil {
		return errors.Wrap(err, "failed to rename sheet")
	}

	if err := w.writeScores(f, scoresSheet, result); err != nil {
		return err
	}
	if err := w.writeBenchmarks(f, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "failed to save workbook")
	}
	return nil
}

func (w *WorkbookWriter) writeScores(f *excelize.File, sheet string, result *evaluation.Result) error {
	headers := []any{"Dimension", "Score (0-20)", "Score (0-10)", "Weight", "Reasoning"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.Wrap(err, "failed to write score headers")
	}

	row := 2
	if result.Score != nil {
		for _, dim := range score.Dimensions {
			ds, ok := result.Score.Breakdown[dim]
			if !ok {
				continue
			}
			values := []any{string(dim), ds.Score, ds.Score / 2, result.Score.Weights[dim], ds.Reasoning}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return errors.Wrap(err, "failed to write score row")
			}
			row++
		}
		overall := []any{"Overall", "", result.Score.Overall, "", ""}
		cell := fmt.Sprintf("A%d", row+1)
		if err := f.SetSheetRow(sheet, cell, &overall); err != nil {
			return errors.Wrap(err, "failed to write overall row")
		}
	}
	return nil
}

func (w *WorkbookWriter) writeBenchmarks(f *excelize.File, result *evaluation.Result) error {
	if result.Benchmark == nil {
		return nil
	}

	const sheet = "Benchmarks"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrap(err, "failed to add benchmark sheet")
	}

	headers := []any{"Metric", "Startup Value", "Sector Average", "Startup (numeric)", "Sector (numeric)", "Percentile", "Insight"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.Wrap(err, "failed to write benchmark headers")
	}

	for i, cmp := range result.Benchmark.Comparisons {
		values := []any{cmp.Metric, cmp.StartupValue, cmp.SectorAvg, nilableFloat(cmp.StartupValueNum), nilableFloat(cmp.SectorAvgNum), cmp.Percentile, cmp.Insight}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrap(err, "failed to write benchmark row")
		}
	}
	return nil
}

func nilableFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
