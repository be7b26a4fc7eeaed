package temporal

import (
	"strings"

	"promcorr/domain/series"
)

// Fraction of successive differences that must be non-negative for the
// behavioral fallback to classify a series as cumulative.
const cumulativeDiffThreshold = 0.95

// Name markers that classify a metric as a cumulative counter regardless
// of its values. Prometheus convention names counters with a _total
// suffix; "cumulative" shows up in SNMP-derived exports.
var cumulativeNameMarkers = []string{"cumulative"}

// IsCumulative decides whether a series is a monotonic counter rather than
// a gauge. The decision is two-stage: a name-pattern check first, then a
// behavioral fallback on the sorted successive differences. A series with
// fewer than 2 samples is never cumulative.
func IsCumulative(s series.Series) bool {
	if s.Len() < 2 {
		return false
	}

	name := strings.ToLower(s.Name)
	if strings.HasSuffix(name, "_total") {
		return true
	}
	for _, marker := range cumulativeNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	sorted := s.Sorted()
	nonNegative := 0
	total := 0
	for i := 1; i < sorted.Len(); i++ {
		prev := sorted.Samples[i-1].Value
		cur := sorted.Samples[i].Value
		if !series.Defined(prev) || !series.Defined(cur) {
			continue
		}
		total++
		if cur >= prev {
			nonNegative++
		}
	}
	if total == 0 {
		return false
	}
	return float64(nonNegative) > cumulativeDiffThreshold*float64(total)
}

// ToRate converts a cumulative series into a per-second rate series. Each
// value except the first becomes (v[i]-v[i-1]) / (t[i]-t[i-1]); negative
// rates indicate counter resets and are clamped to zero. The first row has
// no prior point and is dropped, as is any row whose rate is undefined
// (zero or negative elapsed time, non-finite inputs).
func ToRate(s series.Series) series.Series {
	if s.Len() < 2 {
		return s
	}

	sorted := s.Sorted()
	out := series.Series{Name: s.Name, Samples: make([]series.Sample, 0, sorted.Len()-1)}
	for i := 1; i < sorted.Len(); i++ {
		prev := sorted.Samples[i-1]
		cur := sorted.Samples[i]
		if !series.Defined(prev.Value) || !series.Defined(cur.Value) {
			continue
		}
		elapsed := cur.Time.Sub(prev.Time).Seconds()
		if elapsed <= 0 {
			continue
		}
		rate := (cur.Value - prev.Value) / elapsed
		if !series.Defined(rate) {
			continue
		}
		if rate < 0 {
			rate = 0
		}
		out.Samples = append(out.Samples, series.Sample{Time: cur.Time, Value: rate})
	}
	return out
}

// ClassifyAndConvert applies rate normalization when the series is a
// cumulative counter and passes gauges through unchanged. Degenerate input
// (fewer than 2 samples) is returned as-is.
func ClassifyAndConvert(s series.Series) series.Series {
	if s.Len() < 2 {
		return s
	}
	if !IsCumulative(s) {
		return s
	}
	return ToRate(s)
}
