package temporal

import (
	"time"

	"github.com/montanaflynn/stats"

	"promcorr/domain/series"
)

// DefaultCadence is used when neither series carries enough samples to
// measure a native sampling interval.
const DefaultCadence = time.Second

// InferCadence estimates a common resampling cadence for two series from
// their native sampling intervals: the smaller of the two median
// successive-sample gaps, quantized to a canonical bucket. The coarsest
// bucket ever selected is one minute, even for very sparse input.
func InferCadence(s1, s2 series.Series) time.Duration {
	if s1.Empty() || s2.Empty() {
		return DefaultCadence
	}

	native := 0.0
	found := false
	for _, s := range []series.Series{s1, s2} {
		gap, ok := medianGapSeconds(s)
		if !ok {
			continue
		}
		if !found || gap < native {
			native = gap
			found = true
		}
	}
	if !found {
		return DefaultCadence
	}

	switch {
	case native < 5:
		return 5 * time.Second
	case native < 30:
		return 30 * time.Second
	default:
		return time.Minute
	}
}

// medianGapSeconds returns the median gap between successive samples of
// the time-sorted series, in seconds.
func medianGapSeconds(s series.Series) (float64, bool) {
	if s.Len() < 2 {
		return 0, false
	}
	sorted := s.Sorted()
	gaps := make([]float64, 0, sorted.Len()-1)
	for i := 1; i < sorted.Len(); i++ {
		gaps = append(gaps, sorted.Samples[i].Time.Sub(sorted.Samples[i-1].Time).Seconds())
	}
	median, err := stats.Median(gaps)
	if err != nil {
		return 0, false
	}
	return median, true
}
