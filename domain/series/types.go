package series

import (
	"math"
	"sort"
	"time"
)

// Sample is a single (instant, value) observation.
type Sample struct {
	Time  time.Time
	Value float64
}

// Series is an ordered-by-time sequence of samples for one metric. Name is
// used only for cumulative-counter inference and labeling.
type Series struct {
	Name    string
	Samples []Sample
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Samples) }

// Empty reports whether the series has no samples.
func (s Series) Empty() bool { return len(s.Samples) == 0 }

// Sorted returns a copy of the series ordered by ascending time. The
// receiver is left untouched.
func (s Series) Sorted() Series {
	out := Series{Name: s.Name, Samples: make([]Sample, len(s.Samples))}
	copy(out.Samples, s.Samples)
	sort.SliceStable(out.Samples, func(i, j int) bool {
		return out.Samples[i].Time.Before(out.Samples[j].Time)
	})
	return out
}

// Values returns the value column.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		vals[i] = smp.Value
	}
	return vals
}

// Span returns the first and last instant of the sorted series, or zero
// times when empty.
func (s Series) Span() (time.Time, time.Time) {
	if s.Empty() {
		return time.Time{}, time.Time{}
	}
	sorted := s.Sorted()
	return sorted.Samples[0].Time, sorted.Samples[len(sorted.Samples)-1].Time
}

// AlignedPoint is one row of an aligned pair: a shared instant with the
// value of each input series at that instant.
type AlignedPoint struct {
	Time time.Time
	V1   float64
	V2   float64
}

// AlignedSeries is the join of two resampled series onto a shared instant
// grid. Invariant: rows are ascending in time, instants are unique, and
// both values are present (finite) on every row.
type AlignedSeries struct {
	Name1  string
	Name2  string
	Points []AlignedPoint
}

// Len returns the number of aligned rows.
func (a AlignedSeries) Len() int { return len(a.Points) }

// Empty reports whether the aligned series has no rows.
func (a AlignedSeries) Empty() bool { return len(a.Points) == 0 }

// Columns returns the two value columns as parallel slices.
func (a AlignedSeries) Columns() ([]float64, []float64) {
	v1 := make([]float64, len(a.Points))
	v2 := make([]float64, len(a.Points))
	for i, p := range a.Points {
		v1[i] = p.V1
		v2[i] = p.V2
	}
	return v1, v2
}

// Times returns the shared instant grid.
func (a AlignedSeries) Times() []time.Time {
	ts := make([]time.Time, len(a.Points))
	for i, p := range a.Points {
		ts[i] = p.Time
	}
	return ts
}

// CorrelationResult holds both correlation coefficients with their
// two-sided p-values over the same paired rows. A nil *CorrelationResult
// is the explicit "undefined" marker for empty or degenerate input.
type CorrelationResult struct {
	PearsonR    float64
	PearsonP    float64
	SpearmanR   float64
	SpearmanP   float64
	SampleCount int
}

// LagPoint is one evaluated entry of a lag sweep.
type LagPoint struct {
	Lag         int
	R           float64
	P           float64
	SampleCount int
}

// LagResult is the outcome of a lag-correlation sweep. BestLag is in grid
// steps; positive means series 2 lags series 1. Table holds every lag that
// met the minimum overlap, in scan order.
type LagResult struct {
	BestLag     int
	BestR       float64
	BestP       float64
	SampleCount int
	Table       []LagPoint
}

// RollingPoint carries the aligned values at one instant together with
// their trailing moving averages and the trailing-window correlation.
// NaN marks positions where the trailing window held fewer than the
// configured minimum of paired samples.
type RollingPoint struct {
	Time  time.Time
	V1    float64
	V2    float64
	V1Avg float64
	V2Avg float64
	Corr  float64
}

// RollingSeries is the rolling-correlation trajectory over an aligned
// series. It shares the aligned series' time axis row for row.
type RollingSeries struct {
	Window     int
	MinPeriods int
	Points     []RollingPoint
}

// Len returns the number of rows.
func (r RollingSeries) Len() int { return len(r.Points) }

// DefinedCorrelations returns the rolling correlation values that are
// defined, in time order.
func (r RollingSeries) DefinedCorrelations() []float64 {
	out := make([]float64, 0, len(r.Points))
	for _, p := range r.Points {
		if !math.IsNaN(p.Corr) {
			out = append(out, p.Corr)
		}
	}
	return out
}

// Defined reports whether v is a present (finite) observation.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
