// Package engine computes correlation statistics over aligned series:
// Pearson/Spearman with two-sided p-values, lag-correlation sweeps,
// rate-of-change correlation, and causally-bounded rolling correlation.
// All operations are pure; undefined outcomes are nil results, not errors.
package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"promcorr/domain/series"
)

// Correlate computes Pearson and Spearman correlation with two-sided
// p-values over the paired rows of an aligned series. Rows with either
// value undefined are dropped first. When normalize is set, each column is
// z-scored independently before correlating; a zero-variance column is
// left unchanged rather than divided by zero. Returns nil when fewer than
// 2 paired rows remain.
func Correlate(aligned series.AlignedSeries, normalize bool) *series.CorrelationResult {
	x, y := pairedValues(aligned.Columns())
	if len(x) < 2 {
		return nil
	}

	if normalize {
		x = Normalize(x)
		y = Normalize(y)
	}

	pr, pp := pearson(x, y)
	sr, sp := spearman(x, y)

	return &series.CorrelationResult{
		PearsonR:    pr,
		PearsonP:    pp,
		SpearmanR:   sr,
		SpearmanP:   sp,
		SampleCount: len(x),
	}
}

// Normalize z-scores a column: subtract the mean, divide by the standard
// deviation. A column with exactly zero standard deviation is returned
// unchanged.
func Normalize(values []float64) []float64 {
	mean, std := stat.MeanStdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - mean) / std
	}
	return out
}

// pairedValues drops any row where either side is undefined, keeping the
// columns paired.
func pairedValues(v1, v2 []float64) ([]float64, []float64) {
	n := len(v1)
	if len(v2) < n {
		n = len(v2)
	}
	x := make([]float64, 0, n)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !series.Defined(v1[i]) || !series.Defined(v2[i]) {
			continue
		}
		x = append(x, v1[i])
		y = append(y, v2[i])
	}
	return x, y
}

// pearson returns the Pearson correlation coefficient and its two-sided
// p-value from the t-distribution with n-2 degrees of freedom.
func pearson(x, y []float64) (float64, float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 1
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		// Zero variance in a column; the coefficient is undefined.
		return math.NaN(), math.NaN()
	}
	return r, correlationPValue(r, len(x))
}

// spearman computes the rank correlation by Pearson-correlating the
// tie-averaged ranks, with the same t-distribution p-value.
func spearman(x, y []float64) (float64, float64) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 1
	}
	rho := stat.Correlation(ranks(x), ranks(y), nil)
	if math.IsNaN(rho) {
		return math.NaN(), math.NaN()
	}
	return rho, correlationPValue(rho, len(x))
}

// correlationPValue is the two-sided p-value for a correlation coefficient
// r over n pairs, via t = r*sqrt((n-2)/(1-r^2)) against Student's t with
// n-2 degrees of freedom.
func correlationPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}
	df := float64(n - 2)
	if r >= 1 || r <= -1 {
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}

// ranks converts values to 1-based ranks, averaging over ties.
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && values[idx[j]] == values[idx[i]] {
			j++
		}
		avg := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}
