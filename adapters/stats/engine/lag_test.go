package engine

import (
	"math"
	"testing"
)

func TestLagCorrelateIdenticalSeries(t *testing.T) {
	values := make([]float64, 240)
	for i := range values {
		values[i] = math.Sin(float64(i)/7) + float64(i%13)
	}
	aligned := alignedFrom(values, values)

	result := LagCorrelate(aligned, 5)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if result.BestLag != 0 {
		t.Errorf("best lag = %d, want 0 for identical series", result.BestLag)
	}
	if math.Abs(result.BestR-1) > 1e-9 {
		t.Errorf("best r = %v, want 1", result.BestR)
	}
	if len(result.Table) != 11 {
		t.Errorf("lag table holds %d entries, want 11 for max lag 5", len(result.Table))
	}
}

func TestLagCorrelateDetectsShift(t *testing.T) {
	base := make([]float64, 303)
	for i := range base {
		base[i] = math.Sin(float64(i) / 5)
	}
	// v2 carries v1's future: v2[i] = v1[i+3].
	v1 := base[:300]
	v2 := base[3:303]

	result := LagCorrelate(alignedFrom(v1, v2), 10)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if result.BestLag != 3 {
		t.Errorf("best lag = %d, want 3", result.BestLag)
	}
	if math.Abs(result.BestR-1) > 1e-6 {
		t.Errorf("best r = %v, want 1 at the true shift", result.BestR)
	}
}

func TestLagCorrelateUndefinedOnShortInput(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i)
	}
	// 30 rows is under 2 * maxLag for the default sweep of 20.
	if got := LagCorrelate(alignedFrom(values, values), 0); got != nil {
		t.Error("short input should be undefined")
	}
}

func TestLagCorrelateMinimumOverlap(t *testing.T) {
	// 120 rows: lags beyond +-20 would drop under the 100-sample overlap
	// floor, but every swept lag within +-10 keeps at least 110 pairs.
	values := make([]float64, 120)
	for i := range values {
		values[i] = math.Cos(float64(i) / 3)
	}
	result := LagCorrelate(alignedFrom(values, values), 10)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	for _, point := range result.Table {
		if point.SampleCount < MinLagOverlap {
			t.Errorf("lag %d evaluated with %d pairs, under the floor of %d",
				point.Lag, point.SampleCount, MinLagOverlap)
		}
	}
}

func TestShiftedPairsConvention(t *testing.T) {
	v1 := []float64{0, 1, 2, 3, 4}
	v2 := []float64{10, 11, 12, 13, 14}

	x, y := shiftedPairs(v1, v2, 2)
	if len(x) != 3 {
		t.Fatalf("overlap = %d, want 3", len(x))
	}
	// Positive lag pairs v1[i] with v2[i-lag].
	if x[0] != 2 || y[0] != 10 {
		t.Errorf("first pair = (%v, %v), want (2, 10)", x[0], y[0])
	}

	x, y = shiftedPairs(v1, v2, -2)
	if len(x) != 3 {
		t.Fatalf("overlap = %d, want 3", len(x))
	}
	if x[0] != 0 || y[0] != 12 {
		t.Errorf("first pair = (%v, %v), want (0, 12)", x[0], y[0])
	}
}
