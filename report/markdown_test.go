package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promcorr/domain/series"
	"promcorr/models"
)

func sampleRun() *models.PairRun {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rolling := series.RollingSeries{Window: 30, MinPeriods: 10}
	for i := 0; i < 5; i++ {
		corr := 0.5
		if i < 2 {
			corr = math.NaN()
		}
		rolling.Points = append(rolling.Points, series.RollingPoint{
			Time: start.Add(time.Duration(i) * time.Minute),
			V1:   float64(i), V2: float64(2 * i),
			V1Avg: math.NaN(), V2Avg: math.NaN(),
			Corr: corr,
		})
	}
	return &models.PairRun{
		ID:          uuid.New(),
		CreatedAt:   start,
		Metric1:     "node_load1",
		Metric2:     "power_watts",
		Status:      models.StatusOK,
		Cadence:     time.Minute,
		Tolerance:   2 * time.Minute,
		AlignedRows: 120,
		Rate1:       true,
		Correlation: &series.CorrelationResult{
			PearsonR: 0.85, PearsonP: 1e-30, SpearmanR: 0.82, SpearmanP: 1e-28, SampleCount: 120,
		},
		Lag: &series.LagResult{
			BestLag: 2, BestR: 0.91, BestP: 1e-32, SampleCount: 118,
			Table: []series.LagPoint{{Lag: 2, R: 0.91, P: 1e-32, SampleCount: 118}},
		},
		RollingSummary: &models.RollingSummary{Window: 30, MinPeriods: 10, Defined: 3, Mean: 0.81},
		Rolling:        rolling,
	}
}

func TestPairMarkdown(t *testing.T) {
	md := PairMarkdown(sampleRun())
	assert.Contains(t, md, "# Correlation Analysis Report")
	assert.Contains(t, md, "node_load1 (rate-converted)")
	assert.Contains(t, md, "Pearson correlation: r = 0.8500")
	assert.Contains(t, md, "Strong positive correlation")
	assert.Contains(t, md, "power_watts lags node_load1 by 2 grid steps")
	assert.Contains(t, md, "Rolling Correlation (window = 30)")
}

func TestPairMarkdownInsufficientData(t *testing.T) {
	run := sampleRun()
	run.Status = models.StatusInsufficientData
	md := PairMarkdown(run)
	assert.Contains(t, md, "Insufficient overlapping data")
	assert.NotContains(t, md, "Pearson")
}

func TestStrengthBands(t *testing.T) {
	assert.Equal(t, "Strong", Strength(0.9))
	assert.Equal(t, "Strong", Strength(-0.75))
	assert.Equal(t, "Moderate", Strength(0.5))
	assert.Equal(t, "Weak", Strength(-0.3))
	assert.Equal(t, "Very weak or no", Strength(0.05))
}

func TestWritePairRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "node_load1_vs_power_watts")
	require.NoError(t, WritePairRun(sampleRun(), dir))

	md, err := os.ReadFile(filepath.Join(dir, "correlation_report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "node_load1")

	csvData, err := os.ReadFile(filepath.Join(dir, "rolling_corr.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "datetime,v1,v2,v1_rolling_avg,v2_rolling_avg,rolling_corr", lines[0])
	// Undefined rolling values serialize as empty fields.
	assert.True(t, strings.HasSuffix(lines[1], ",,,"))
	assert.True(t, strings.HasSuffix(lines[5], "0.5"))
}
