package engine

import (
	"math"

	"promcorr/domain/series"
)

const (
	// DefaultMaxLag is the default sweep range in grid steps.
	DefaultMaxLag = 20

	// MinLagOverlap is the minimum number of paired samples a lag must
	// retain to be evaluated; below this the coefficient is noise.
	MinLagOverlap = 100
)

// LagCorrelate sweeps integer lags from -maxLag to +maxLag in grid steps,
// shifting series 2 against series 1 and computing Pearson correlation
// over the positions where both are defined. Positive lag means series 2
// lags series 1. Lags with fewer than MinLagOverlap paired samples are
// skipped. Returns nil when the aligned series holds fewer than 2*maxLag
// rows or no lag meets the minimum overlap. The best lag is the one with
// the largest absolute coefficient; ties go to the smaller absolute lag.
func LagCorrelate(aligned series.AlignedSeries, maxLag int) *series.LagResult {
	if maxLag <= 0 {
		maxLag = DefaultMaxLag
	}
	v1, v2 := aligned.Columns()
	n := len(v1)
	if n < 2*maxLag {
		return nil
	}

	var result *series.LagResult
	for lag := -maxLag; lag <= maxLag; lag++ {
		x, y := shiftedPairs(v1, v2, lag)
		if len(x) < MinLagOverlap {
			continue
		}
		r, p := pearson(x, y)
		if math.IsNaN(r) {
			continue
		}
		point := series.LagPoint{Lag: lag, R: r, P: p, SampleCount: len(x)}
		if result == nil {
			result = &series.LagResult{BestLag: lag, BestR: r, BestP: p, SampleCount: len(x)}
		}
		result.Table = append(result.Table, point)

		better := math.Abs(r) > math.Abs(result.BestR) ||
			(math.Abs(r) == math.Abs(result.BestR) && abs(lag) < abs(result.BestLag))
		if better {
			result.BestLag = lag
			result.BestR = r
			result.BestP = p
			result.SampleCount = len(x)
		}
	}
	return result
}

// shiftedPairs returns the overlapping paired values of v1 and v2 with v2
// shifted by lag steps. A positive lag moves series 2 into the future
// relative to series 1: row i pairs v1[i] with v2[i-lag]. Rows where
// either side is undefined are dropped.
func shiftedPairs(v1, v2 []float64, lag int) ([]float64, []float64) {
	n := len(v1)
	if len(v2) < n {
		n = len(v2)
	}
	switch {
	case lag >= n || -lag >= n:
		return nil, nil
	case lag >= 0:
		return pairedValues(v1[lag:n], v2[:n-lag])
	default:
		return pairedValues(v1[:n+lag], v2[-lag:n])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
