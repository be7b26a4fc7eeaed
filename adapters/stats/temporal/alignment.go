package temporal

import (
	"sort"
	"time"

	"promcorr/domain/series"
)

// gridPoint is one observed bucket of a resampled series. Buckets that
// received no raw samples are not materialized.
type gridPoint struct {
	time  time.Time
	value float64
}

// Align resamples both series onto a fixed-cadence grid using mean
// aggregation and joins them by matching each left-grid instant to the
// nearest right-grid instant within the tolerance window. Unmatched left
// rows are dropped. A zero cadence means "infer from the inputs"; a zero
// tolerance defaults to twice the cadence. The result is ascending in time
// with no duplicate instants, and every row carries both values.
func Align(s1, s2 series.Series, cadence, tolerance time.Duration) series.AlignedSeries {
	out := series.AlignedSeries{Name1: s1.Name, Name2: s2.Name}
	if s1.Empty() || s2.Empty() {
		return out
	}
	if cadence <= 0 {
		cadence = InferCadence(s1, s2)
	}
	if tolerance <= 0 {
		tolerance = 2 * cadence
	}

	left := resample(s1, cadence)
	right := resample(s2, cadence)
	if len(left) == 0 || len(right) == 0 {
		return out
	}

	out.Points = make([]series.AlignedPoint, 0, len(left))
	j := 0
	for _, l := range left {
		// Both grids are ascending, so the nearest right index never moves
		// backwards as the left cursor advances.
		for j+1 < len(right) && absDuration(right[j+1].time.Sub(l.time)) <= absDuration(right[j].time.Sub(l.time)) {
			j++
		}
		r := right[j]
		if absDuration(r.time.Sub(l.time)) > tolerance {
			continue
		}
		if !series.Defined(l.value) || !series.Defined(r.value) {
			continue
		}
		out.Points = append(out.Points, series.AlignedPoint{Time: l.time, V1: l.value, V2: r.value})
	}
	return out
}

// resample aggregates raw samples into fixed-cadence buckets in a single
// pass: bucket by truncated timestamp, accumulate sum and count, finalize
// to the mean. Non-finite raw values are treated as absent.
func resample(s series.Series, cadence time.Duration) []gridPoint {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)
	for _, smp := range s.Samples {
		if !series.Defined(smp.Value) {
			continue
		}
		key := smp.Time.Truncate(cadence)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += smp.Value
		b.count++
	}

	grid := make([]gridPoint, 0, len(buckets))
	for key, b := range buckets {
		grid = append(grid, gridPoint{time: key, value: b.sum / float64(b.count)})
	}
	sort.Slice(grid, func(i, j int) bool { return grid[i].time.Before(grid[j].time) })
	return grid
}

// Resample exposes the mean-aggregated fixed-cadence grid of a single
// series. Only observed buckets appear; gaps produce no samples.
func Resample(s series.Series, cadence time.Duration) series.Series {
	grid := resample(s, cadence)
	out := series.Series{Name: s.Name, Samples: make([]series.Sample, len(grid))}
	for i, g := range grid {
		out.Samples[i] = series.Sample{Time: g.time, Value: g.value}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
