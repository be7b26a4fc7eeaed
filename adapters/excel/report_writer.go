// Package excel exports pair runs as xlsx workbooks for spreadsheet
// consumers.
package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"promcorr/domain/series"
	"promcorr/models"
	"promcorr/ports"
)

// ReportWriterImpl writes one workbook per run with Summary, Lags and
// Rolling sheets.
type ReportWriterImpl struct{}

// NewReportWriter creates an xlsx report writer.
func NewReportWriter() ports.ReportWriter {
	return &ReportWriterImpl{}
}

// WritePairRun writes <dir>/pair_analysis.xlsx for the run.
func (w *ReportWriterImpl) WritePairRun(run *models.PairRun, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, run); err != nil {
		return err
	}
	if run.Lag != nil {
		if err := writeLagSheet(f, run.Lag); err != nil {
			return err
		}
	}
	if run.Rolling.Len() > 0 {
		if err := writeRollingSheet(f, run.Rolling); err != nil {
			return err
		}
	}

	return f.SaveAs(filepath.Join(dir, "pair_analysis.xlsx"))
}

func writeSummarySheet(f *excelize.File, run *models.PairRun) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Run ID", run.ID.String()},
		{"Created", run.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Metric 1", run.Metric1},
		{"Metric 2", run.Metric2},
		{"Status", run.Status},
		{"Cadence", run.Cadence.String()},
		{"Tolerance", run.Tolerance.String()},
		{"Aligned rows", run.AlignedRows},
		{"Metric 1 rate-converted", run.Rate1},
		{"Metric 2 rate-converted", run.Rate2},
	}
	if c := run.Correlation; c != nil {
		rows = append(rows,
			[]any{"Pearson r", c.PearsonR},
			[]any{"Pearson p", c.PearsonP},
			[]any{"Spearman rho", c.SpearmanR},
			[]any{"Spearman p", c.SpearmanP},
		)
	}
	if c := run.NormalizedCorrelation; c != nil {
		rows = append(rows,
			[]any{"Normalized Pearson r", c.PearsonR},
			[]any{"Normalized Spearman rho", c.SpearmanR},
		)
	}
	if l := run.Lag; l != nil {
		rows = append(rows,
			[]any{"Best lag", l.BestLag},
			[]any{"Best lag r", l.BestR},
			[]any{"Best lag p", l.BestP},
		)
	}
	if r := run.RateOfChange; r != nil {
		rows = append(rows,
			[]any{"Rate-of-change r", r.PearsonR},
			[]any{"Rate-of-change p", r.PearsonP},
		)
	}
	if rs := run.RollingSummary; rs != nil {
		rows = append(rows,
			[]any{"Rolling window", rs.Window},
			[]any{"Rolling mean", rs.Mean},
			[]any{"Rolling std", rs.Std},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeLagSheet(f *excelize.File, lag *series.LagResult) error {
	const sheet = "Lags"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []any{"lag", "r", "p", "n"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, point := range lag.Table {
		row := []any{point.Lag, point.R, point.P, point.SampleCount}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeRollingSheet(f *excelize.File, rolling series.RollingSeries) error {
	const sheet = "Rolling"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []any{"datetime", "v1", "v2", "v1_rolling_avg", "v2_rolling_avg", "rolling_corr"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range rolling.Points {
		row := []any{
			p.Time.UTC().Format(time.RFC3339),
			cellValue(p.V1),
			cellValue(p.V2),
			cellValue(p.V1Avg),
			cellValue(p.V2Avg),
			cellValue(p.Corr),
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps undefined values to empty cells; excelize rejects NaN.
func cellValue(v float64) any {
	if !series.Defined(v) {
		return nil
	}
	return v
}
