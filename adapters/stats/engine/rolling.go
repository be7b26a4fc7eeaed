package engine

import (
	"math"

	"promcorr/domain/series"
)

// DefaultRollingWindow is the default trailing window in rows.
const DefaultRollingWindow = 30

// DefaultMinPeriods returns the default minimum number of paired samples a
// trailing window must hold before its correlation is defined.
func DefaultMinPeriods(window int) int {
	min := window / 3
	if min < 3 {
		min = 3
	}
	return min
}

// RollingCorrelate computes a trailing-window correlation trajectory over
// the aligned series, plus trailing simple moving averages of each column
// at the same window. The window for row i is rows [i-window+1, i]: every
// point depends only on itself and prior points, so there is no lookahead.
// Rows whose window holds fewer than minPeriods paired samples get NaN.
// minPeriods <= 0 selects the default max(3, window/3).
func RollingCorrelate(aligned series.AlignedSeries, window, minPeriods int) series.RollingSeries {
	if window <= 0 {
		window = DefaultRollingWindow
	}
	if minPeriods <= 0 {
		minPeriods = DefaultMinPeriods(window)
	}
	out := series.RollingSeries{Window: window, MinPeriods: minPeriods}
	if aligned.Empty() {
		return out
	}

	out.Points = make([]series.RollingPoint, aligned.Len())
	for i, p := range aligned.Points {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		x := make([]float64, 0, window)
		y := make([]float64, 0, window)
		for j := start; j <= i; j++ {
			row := aligned.Points[j]
			if !series.Defined(row.V1) || !series.Defined(row.V2) {
				continue
			}
			x = append(x, row.V1)
			y = append(y, row.V2)
		}

		corr := math.NaN()
		if len(x) >= minPeriods {
			r, _ := pearson(x, y)
			corr = r
		}

		out.Points[i] = series.RollingPoint{
			Time:  p.Time,
			V1:    p.V1,
			V2:    p.V2,
			V1Avg: trailingMean(x, minPeriods),
			V2Avg: trailingMean(y, minPeriods),
			Corr:  corr,
		}
	}
	return out
}

// trailingMean is the mean of the defined window values, or NaN below
// minPeriods.
func trailingMean(window []float64, minPeriods int) float64 {
	if len(window) < minPeriods {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}
