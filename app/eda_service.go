package app

import (
	"math"
	"slices"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"promcorr/adapters/stats/temporal"
	"promcorr/domain/series"
	"promcorr/internal"
	"promcorr/models"
)

// matrixCadence is the fixed grid used for the cross-metric correlation
// matrix.
const matrixCadence = time.Minute

// EDAService builds exploratory summaries over a set of metrics.
type EDAService struct {
	log *internal.Logger
}

// NewEDAService creates an EDA service.
func NewEDAService(log *internal.Logger) *EDAService {
	return &EDAService{log: log}
}

// Report summarizes every metric and, when at least 10 jointly-defined
// one-minute rows exist, adds the pairwise correlation matrix.
func (s *EDAService) Report(metrics []series.Series) *models.EDAReport {
	report := &models.EDAReport{}
	for _, m := range metrics {
		report.Metrics = append(report.Metrics, summarizeMetric(m))
	}
	report.Matrix = s.correlationMatrix(metrics)
	return report
}

// summarizeMetric computes the per-metric EDA block: descriptive stats,
// 3x-IQR and z-score anomaly counts, coefficient of variation, skewness.
func summarizeMetric(m series.Series) models.MetricSummary {
	values := m.Values()
	summary := models.MetricSummary{Name: m.Name, Stats: summarize(values)}
	if len(values) == 0 {
		return summary
	}

	iqr := summary.Stats.Q75 - summary.Stats.Q25
	summary.IQRLowerBound = summary.Stats.Q25 - 3*iqr
	summary.IQRUpperBound = summary.Stats.Q75 + 3*iqr
	for _, v := range values {
		if v < summary.IQRLowerBound || v > summary.IQRUpperBound {
			summary.IQRAnomalies++
		}
	}
	summary.IQRAnomalyPct = 100 * float64(summary.IQRAnomalies) / float64(len(values))

	popStd, _ := stats.StandardDeviationPopulation(values)
	if popStd > 0 {
		for _, v := range values {
			if math.Abs(v-summary.Stats.Mean)/popStd > 3 {
				summary.ZScoreAnomalies++
			}
		}
	}
	summary.ZScoreAnomalyPct = 100 * float64(summary.ZScoreAnomalies) / float64(len(values))

	if summary.Stats.Mean != 0 {
		summary.CoefficientOfVariation = summary.Stats.Std / summary.Stats.Mean
	}
	summary.Skewness = stat.Skew(values, nil)
	return summary
}

// correlationMatrix inner-joins all metrics on a shared one-minute grid
// and computes pairwise Pearson coefficients. Returns nil below 10 joint
// rows.
func (s *EDAService) correlationMatrix(metrics []series.Series) *models.CorrelationMatrix {
	if len(metrics) < 2 {
		return nil
	}

	grids := make([]map[int64]float64, len(metrics))
	for i, m := range metrics {
		resampled := temporal.Resample(m, matrixCadence)
		grid := make(map[int64]float64, resampled.Len())
		for _, smp := range resampled.Samples {
			grid[smp.Time.UnixNano()] = smp.Value
		}
		grids[i] = grid
	}

	// Intersect instants across all metrics, in time order.
	var joint []int64
	for nano := range grids[0] {
		present := true
		for _, grid := range grids[1:] {
			if _, ok := grid[nano]; !ok {
				present = false
				break
			}
		}
		if present {
			joint = append(joint, nano)
		}
	}
	slices.Sort(joint)
	if len(joint) < MinAlignedRows {
		s.log.Warn("insufficient overlapping data for correlation matrix (%d rows)", len(joint))
		return nil
	}

	columns := make([][]float64, len(metrics))
	for i, grid := range grids {
		col := make([]float64, len(joint))
		for j, nano := range joint {
			col[j] = grid[nano]
		}
		columns[i] = col
	}

	matrix := &models.CorrelationMatrix{N: len(joint), R: make([][]float64, len(metrics))}
	for i, m := range metrics {
		matrix.Names = append(matrix.Names, m.Name)
		matrix.R[i] = make([]float64, len(metrics))
		for j := range metrics {
			if i == j {
				matrix.R[i][j] = 1
				continue
			}
			matrix.R[i][j] = stat.Correlation(columns[i], columns[j], nil)
		}
	}
	return matrix
}
