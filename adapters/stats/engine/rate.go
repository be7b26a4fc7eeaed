package engine

import (
	"math"

	"promcorr/domain/series"
)

// MinRatePairs is the minimum number of valid paired differences required
// for a rate-of-change correlation.
const MinRatePairs = 10

// RateCorrelate correlates the raw first differences of the two value
// columns. The diff sequences are truncated to the shorter of the two by
// position (they are equal-length for any aligned series, since both
// columns share one time axis); rows where either difference is undefined
// are dropped. Returns nil with fewer than MinRatePairs valid pairs. Only
// the Pearson fields of the result are populated.
func RateCorrelate(aligned series.AlignedSeries) *series.CorrelationResult {
	v1, v2 := aligned.Columns()
	d1 := diff(v1)
	d2 := diff(v2)

	x, y := pairedValues(d1, d2)
	if len(x) < MinRatePairs {
		return nil
	}
	r, p := pearson(x, y)
	if math.IsNaN(r) {
		return nil
	}
	return &series.CorrelationResult{
		PearsonR:    r,
		PearsonP:    p,
		SpearmanR:   math.NaN(),
		SpearmanP:   math.NaN(),
		SampleCount: len(x),
	}
}

// diff returns successive differences: out[i] = v[i+1] - v[i]. A
// difference touching an undefined value is undefined.
func diff(v []float64) []float64 {
	if len(v) < 2 {
		return nil
	}
	out := make([]float64, len(v)-1)
	for i := 1; i < len(v); i++ {
		if !series.Defined(v[i]) || !series.Defined(v[i-1]) {
			out[i-1] = math.NaN()
			continue
		}
		out[i-1] = v[i] - v[i-1]
	}
	return out
}
