package engine

import (
	"math"
	"testing"
	"time"

	"promcorr/domain/series"
)

func alignedFrom(v1, v2 []float64) series.AlignedSeries {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := series.AlignedSeries{Name1: "m1", Name2: "m2"}
	for i := range v1 {
		out.Points = append(out.Points, series.AlignedPoint{
			Time: start.Add(time.Duration(i) * time.Minute),
			V1:   v1[i],
			V2:   v2[i],
		})
	}
	return out
}

func TestCorrelatePerfectLinear(t *testing.T) {
	aligned := alignedFrom([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 6, 8, 10})

	result := Correlate(aligned, false)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if math.Abs(result.PearsonR-1) > 1e-9 {
		t.Errorf("Pearson r = %v, want 1", result.PearsonR)
	}
	if math.Abs(result.SpearmanR-1) > 1e-9 {
		t.Errorf("Spearman rho = %v, want 1", result.SpearmanR)
	}
	if result.SampleCount != 5 {
		t.Errorf("sample count = %d, want 5", result.SampleCount)
	}
	if result.PearsonP > 1e-6 {
		t.Errorf("Pearson p = %v, want near 0 for a perfect fit", result.PearsonP)
	}
}

func TestCorrelateNegative(t *testing.T) {
	aligned := alignedFrom([]float64{1, 2, 3, 4, 5, 6}, []float64{12, 10, 8, 6, 4, 2})

	result := Correlate(aligned, false)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if math.Abs(result.PearsonR+1) > 1e-9 {
		t.Errorf("Pearson r = %v, want -1", result.PearsonR)
	}
}

func TestCorrelateNormalizationInvariance(t *testing.T) {
	v1 := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	v2 := []float64{2, 7, 1, 8, 2, 8, 1, 8, 2, 8}

	raw := Correlate(alignedFrom(v1, v2), false)
	normalized := Correlate(alignedFrom(v1, v2), true)
	if raw == nil || normalized == nil {
		t.Fatal("expected defined results")
	}
	// Pearson is invariant under the affine transform z-scoring applies.
	if math.Abs(raw.PearsonR-normalized.PearsonR) > 1e-9 {
		t.Errorf("normalization changed Pearson r: %v vs %v", raw.PearsonR, normalized.PearsonR)
	}
	if math.Abs(raw.SpearmanR-normalized.SpearmanR) > 1e-9 {
		t.Errorf("normalization changed Spearman rho: %v vs %v", raw.SpearmanR, normalized.SpearmanR)
	}
}

func TestCorrelateDropsUndefinedRows(t *testing.T) {
	v1 := []float64{1, math.NaN(), 3, 4, 5}
	v2 := []float64{2, 4, math.NaN(), 8, 10}

	result := Correlate(alignedFrom(v1, v2), false)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if result.SampleCount != 3 {
		t.Errorf("sample count = %d, want 3 after dropping NaN rows", result.SampleCount)
	}
}

func TestCorrelateUndefined(t *testing.T) {
	if got := Correlate(series.AlignedSeries{}, false); got != nil {
		t.Error("empty input should be undefined")
	}
	if got := Correlate(alignedFrom([]float64{1}, []float64{2}), false); got != nil {
		t.Error("a single pair should be undefined")
	}
}

func TestNormalizeZeroVariance(t *testing.T) {
	in := []float64{5, 5, 5, 5, 5}
	out := Normalize(in)
	for i, v := range out {
		if v != 5 {
			t.Fatalf("index %d: zero-variance column changed to %v", i, v)
		}
	}

	scored := Normalize([]float64{1, 2, 3, 4, 5})
	sum := 0.0
	for _, v := range scored {
		sum += v
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("z-scored column sums to %v, want 0", sum)
	}
}

func TestSpearmanMonotonicNonlinear(t *testing.T) {
	v1 := []float64{1, 2, 3, 4, 5, 6}
	v2 := []float64{1, 8, 27, 64, 125, 216}

	result := Correlate(alignedFrom(v1, v2), false)
	if result == nil {
		t.Fatal("expected a defined result")
	}
	if math.Abs(result.SpearmanR-1) > 1e-9 {
		t.Errorf("Spearman rho = %v, want 1 for a monotonic relationship", result.SpearmanR)
	}
	if result.PearsonR >= 1-1e-9 {
		t.Errorf("Pearson r = %v, expected below 1 for a nonlinear relationship", result.PearsonR)
	}
}

func TestRanksAverageTies(t *testing.T) {
	got := ranks([]float64{10, 20, 20, 30})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", got, want)
		}
	}
}
