// Package report renders finished analyses to Markdown and CSV. Chart
// rendering is deliberately absent; consumers that want HTML run the
// Markdown through the ui layer.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"promcorr/models"
)

// PairMarkdown renders the correlation report for one pair run.
func PairMarkdown(run *models.PairRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Correlation Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Metric 1: %s%s\n", run.Metric1, rateNote(run.Rate1))
	fmt.Fprintf(&b, "- Metric 2: %s%s\n", run.Metric2, rateNote(run.Rate2))
	fmt.Fprintf(&b, "- Cadence: %s, tolerance: %s\n", run.Cadence, run.Tolerance)
	fmt.Fprintf(&b, "- Samples analyzed: %d\n\n", run.AlignedRows)

	if run.Status == models.StatusInsufficientData {
		fmt.Fprintf(&b, "Insufficient overlapping data for correlation analysis.\n")
		return b.String()
	}

	if c := run.Correlation; c != nil {
		fmt.Fprintf(&b, "## Correlation Coefficients\n\n")
		fmt.Fprintf(&b, "- Pearson correlation: r = %.4f (p = %.2e)\n", c.PearsonR, c.PearsonP)
		fmt.Fprintf(&b, "- Spearman correlation: rho = %.4f (p = %.2e)\n\n", c.SpearmanR, c.SpearmanP)
		fmt.Fprintf(&b, "**Interpretation**: %s %s correlation\n\n", Strength(c.PearsonR), Direction(c.PearsonR))
	}
	if c := run.NormalizedCorrelation; c != nil {
		fmt.Fprintf(&b, "Normalized (z-scored): Pearson r = %.4f, Spearman rho = %.4f\n\n",
			c.PearsonR, c.SpearmanR)
	}
	if l := run.Lag; l != nil {
		fmt.Fprintf(&b, "## Lag Analysis\n\n")
		fmt.Fprintf(&b, "Best lag: %d steps (r = %.4f, p = %.4f, n = %d). ", l.BestLag, l.BestR, l.BestP, l.SampleCount)
		switch {
		case l.BestLag > 0:
			fmt.Fprintf(&b, "%s lags %s by %d grid steps.\n\n", run.Metric2, run.Metric1, l.BestLag)
		case l.BestLag < 0:
			fmt.Fprintf(&b, "%s leads %s by %d grid steps.\n\n", run.Metric2, run.Metric1, -l.BestLag)
		default:
			fmt.Fprintf(&b, "The relationship is contemporaneous.\n\n")
		}
	}
	if r := run.RateOfChange; r != nil {
		fmt.Fprintf(&b, "Rate-of-change correlation: r = %.4f (p = %.4f, n = %d)\n\n",
			r.PearsonR, r.PearsonP, r.SampleCount)
	}
	if rs := run.RollingSummary; rs != nil {
		fmt.Fprintf(&b, "## Rolling Correlation (window = %d)\n\n", rs.Window)
		fmt.Fprintf(&b, "- Defined points: %d\n", rs.Defined)
		fmt.Fprintf(&b, "- Mean: %.4f, Std: %.4f\n", rs.Mean, rs.Std)
		fmt.Fprintf(&b, "- Min: %.4f, Max: %.4f\n", rs.Min, rs.Max)
		fmt.Fprintf(&b, "- Q25: %.4f, Q75: %.4f\n", rs.Q25, rs.Q75)
	}
	return b.String()
}

// EfficiencyMarkdown renders the energy-efficiency report.
func EfficiencyMarkdown(rep *models.EfficiencyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Energy Efficiency Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Load metric: %s\n", rep.LoadMetric)
	fmt.Fprintf(&b, "- Power metric: %s\n", rep.PowerMetric)
	fmt.Fprintf(&b, "- Total data points: %d\n\n", rep.N)
	fmt.Fprintf(&b, "Efficiency = %s / %s. Higher efficiency indicates more computational load per unit of power.\n\n",
		rep.LoadMetric, rep.PowerMetric)

	fmt.Fprintf(&b, "## Load State Thresholds\n\n")
	fmt.Fprintf(&b, "- Low Load: load <= %.2f\n", rep.P33)
	fmt.Fprintf(&b, "- Medium Load: %.2f < load <= %.2f\n", rep.P33, rep.P67)
	fmt.Fprintf(&b, "- High Load: load > %.2f\n\n", rep.P67)

	fmt.Fprintf(&b, "## Overall Efficiency Statistics\n\n")
	writeSummary(&b, rep.Overall)

	fmt.Fprintf(&b, "## Efficiency by Load State\n\n")
	fmt.Fprintf(&b, "| State | Count | Mean Eff | Median Eff | Std Eff | Mean Load | Mean Power |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|\n")
	for _, state := range models.LoadStateOrder {
		st, ok := rep.ByState[state]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			state, st.Count, st.Efficiency.Mean, st.Efficiency.Median, st.Efficiency.Std, st.LoadMean, st.PowerMean)
	}

	fmt.Fprintf(&b, "\n## Key Insights\n\n")
	fmt.Fprintf(&b, "- Correlation (load vs power): %.4f\n", rep.LoadPowerR)
	fmt.Fprintf(&b, "- Correlation (load vs efficiency): %.4f\n", rep.LoadEfficiencyR)
	fmt.Fprintf(&b, "- Correlation (power vs efficiency): %.4f\n\n", rep.PowerEfficiencyR)
	fmt.Fprintf(&b, "Optimal operating range (top efficiency quartile, threshold %.4f):\n", rep.TopQuartileThreshold)
	fmt.Fprintf(&b, "- Load range: [%.2f, %.2f]\n", rep.OptimalLoadMin, rep.OptimalLoadMax)
	fmt.Fprintf(&b, "- Power range: [%.2f, %.2f]\n", rep.OptimalPowerMin, rep.OptimalPowerMax)
	return b.String()
}

// EDAMarkdown renders the exploratory data analysis report.
func EDAMarkdown(rep *models.EDAReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Exploratory Data Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Number of metrics: %d\n\n", len(rep.Metrics))

	fmt.Fprintf(&b, "## Summary Statistics\n\n")
	fmt.Fprintf(&b, "| Metric | N | Mean | Median | Std | Min | Max | Q1 | Q3 |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|---|\n")
	for _, m := range rep.Metrics {
		s := m.Stats
		fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			m.Name, s.N, s.Mean, s.Median, s.Std, s.Min, s.Max, s.Q25, s.Q75)
	}

	fmt.Fprintf(&b, "\n## Anomaly Detection\n\n")
	for _, m := range rep.Metrics {
		fmt.Fprintf(&b, "**%s**\n\n", m.Name)
		fmt.Fprintf(&b, "- 3x IQR: %d anomalies (%.2f%%), bounds [%.2f, %.2f]\n",
			m.IQRAnomalies, m.IQRAnomalyPct, m.IQRLowerBound, m.IQRUpperBound)
		fmt.Fprintf(&b, "- Z-score: %d anomalies (%.2f%%)\n", m.ZScoreAnomalies, m.ZScoreAnomalyPct)
		fmt.Fprintf(&b, "- Coefficient of variation: %.3f (%s)\n", m.CoefficientOfVariation, variability(m.CoefficientOfVariation))
		fmt.Fprintf(&b, "- Skewness: %.3f (%s)\n\n", m.Skewness, skewLabel(m.Skewness))
	}

	if rep.Matrix != nil {
		fmt.Fprintf(&b, "## Correlation Matrix (n = %d)\n\n", rep.Matrix.N)
		fmt.Fprintf(&b, "| |")
		for _, name := range rep.Matrix.Names {
			fmt.Fprintf(&b, " %s |", name)
		}
		fmt.Fprintf(&b, "\n|---|")
		for range rep.Matrix.Names {
			fmt.Fprintf(&b, "---|")
		}
		fmt.Fprintf(&b, "\n")
		for i, name := range rep.Matrix.Names {
			fmt.Fprintf(&b, "| %s |", name)
			for j := range rep.Matrix.Names {
				fmt.Fprintf(&b, " %.3f |", rep.Matrix.R[i][j])
			}
			fmt.Fprintf(&b, "\n")
		}
	}
	return b.String()
}

// Strength classifies |r| into the report's verbal bands.
func Strength(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return "Strong"
	case abs >= 0.4:
		return "Moderate"
	case abs >= 0.2:
		return "Weak"
	default:
		return "Very weak or no"
	}
}

// Direction names the sign of a correlation.
func Direction(r float64) string {
	if r > 0 {
		return "positive"
	}
	return "negative"
}

// WritePairRun writes the Markdown report and the rolling CSV for one run
// under dir.
func WritePairRun(run *models.PairRun, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	mdPath := filepath.Join(dir, "correlation_report.md")
	if err := os.WriteFile(mdPath, []byte(PairMarkdown(run)), 0o644); err != nil {
		return err
	}
	if run.Rolling.Len() > 0 {
		if err := WriteRollingCSV(filepath.Join(dir, "rolling_corr.csv"), run.Rolling); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(b *strings.Builder, s models.SummaryStats) {
	fmt.Fprintf(b, "- Mean: %.4f\n", s.Mean)
	fmt.Fprintf(b, "- Median: %.4f\n", s.Median)
	fmt.Fprintf(b, "- Std dev: %.4f\n", s.Std)
	fmt.Fprintf(b, "- Min: %.4f, Max: %.4f\n", s.Min, s.Max)
	fmt.Fprintf(b, "- 25th percentile: %.4f, 75th percentile: %.4f\n\n", s.Q25, s.Q75)
}

func variability(cv float64) string {
	if cv > 0.5 {
		return "high variability"
	}
	return "moderate variability"
}

func skewLabel(skew float64) string {
	switch {
	case math.Abs(skew) < 0.5:
		return "approximately symmetric"
	case skew > 0:
		return "right-skewed, occasional high values"
	default:
		return "left-skewed, occasional low values"
	}
}

func rateNote(converted bool) string {
	if converted {
		return " (rate-converted)"
	}
	return ""
}
