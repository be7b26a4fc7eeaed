package app

import (
	"math"
	"testing"
	"time"

	"promcorr/domain/series"
)

func minuteSeries(name string, n int, value func(i int) float64) series.Series {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := series.Series{Name: name}
	for i := 0; i < n; i++ {
		s.Samples = append(s.Samples, series.Sample{
			Time:  start.Add(time.Duration(i) * time.Minute),
			Value: value(i),
		})
	}
	return s
}

func TestEDAReport(t *testing.T) {
	a := minuteSeries("a", 60, func(i int) float64 { return float64(i) })
	b := minuteSeries("b", 60, func(i int) float64 { return float64(2 * i) })
	c := minuteSeries("c", 60, func(i int) float64 { return float64(60 - i) })

	rep := NewEDAService(quietLogger()).Report([]series.Series{a, b, c})
	if len(rep.Metrics) != 3 {
		t.Fatalf("metric summaries = %d, want 3", len(rep.Metrics))
	}
	if rep.Metrics[0].Stats.N != 60 {
		t.Errorf("N = %d, want 60", rep.Metrics[0].Stats.N)
	}

	if rep.Matrix == nil {
		t.Fatal("expected a correlation matrix")
	}
	if rep.Matrix.N != 60 {
		t.Errorf("joint rows = %d, want 60", rep.Matrix.N)
	}
	if rep.Matrix.R[0][0] != 1 {
		t.Errorf("diagonal = %v, want 1", rep.Matrix.R[0][0])
	}
	if math.Abs(rep.Matrix.R[0][1]-1) > 1e-9 {
		t.Errorf("a/b correlation = %v, want 1", rep.Matrix.R[0][1])
	}
	if math.Abs(rep.Matrix.R[0][2]+1) > 1e-9 {
		t.Errorf("a/c correlation = %v, want -1", rep.Matrix.R[0][2])
	}
	if rep.Matrix.R[0][1] != rep.Matrix.R[1][0] {
		t.Error("matrix should be symmetric")
	}
}

func TestEDAAnomalyCounts(t *testing.T) {
	s := minuteSeries("spiky", 100, func(i int) float64 {
		if i == 50 {
			return 1e6
		}
		return 10 + float64(i%5)
	})

	rep := NewEDAService(quietLogger()).Report([]series.Series{s})
	m := rep.Metrics[0]
	if m.IQRAnomalies != 1 {
		t.Errorf("IQR anomalies = %d, want 1", m.IQRAnomalies)
	}
	if m.ZScoreAnomalies != 1 {
		t.Errorf("z-score anomalies = %d, want 1", m.ZScoreAnomalies)
	}
	if m.IQRAnomalyPct != 1 {
		t.Errorf("IQR anomaly percent = %v, want 1", m.IQRAnomalyPct)
	}
}

func TestEDAMatrixDeterministic(t *testing.T) {
	metrics := []series.Series{
		minuteSeries("a", 40, func(i int) float64 { return math.Sin(float64(i) / 3) }),
		minuteSeries("b", 40, func(i int) float64 { return math.Cos(float64(i) / 7) }),
		minuteSeries("c", 40, func(i int) float64 { return math.Sqrt(float64(i + 1)) }),
	}
	svc := NewEDAService(quietLogger())

	first := svc.Report(metrics).Matrix
	if first == nil {
		t.Fatal("expected a correlation matrix")
	}
	// The joint instants come out of a map intersection; the matrix must
	// still be bit-identical across runs.
	for run := 0; run < 10; run++ {
		again := svc.Report(metrics).Matrix
		if again == nil {
			t.Fatal("expected a correlation matrix")
		}
		for i := range first.R {
			for j := range first.R[i] {
				if first.R[i][j] != again.R[i][j] {
					t.Fatalf("matrix entry [%d][%d] differs between runs: %v vs %v",
						i, j, first.R[i][j], again.R[i][j])
				}
			}
		}
	}
}

func TestEDAMatrixNeedsOverlap(t *testing.T) {
	a := minuteSeries("a", 5, func(i int) float64 { return float64(i) })
	b := minuteSeries("b", 5, func(i int) float64 { return float64(i * i) })

	rep := NewEDAService(quietLogger()).Report([]series.Series{a, b})
	if rep.Matrix != nil {
		t.Error("5 joint rows are under the 10-row floor, matrix should be nil")
	}
}
