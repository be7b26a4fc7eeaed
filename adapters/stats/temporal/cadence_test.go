package temporal

import (
	"testing"
	"time"

	"promcorr/domain/series"
)

func TestInferCadenceEmptyInput(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := secondsSeries("a", start, time.Second, []float64{1, 2, 3})

	if got := InferCadence(series.Series{}, s); got != DefaultCadence {
		t.Errorf("empty input: got %v, want %v", got, DefaultCadence)
	}
	if got := InferCadence(s, series.Series{}); got != DefaultCadence {
		t.Errorf("empty input: got %v, want %v", got, DefaultCadence)
	}
}

func TestInferCadenceQuantization(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		step time.Duration
		want time.Duration
	}{
		{time.Second, 5 * time.Second},
		{4 * time.Second, 5 * time.Second},
		{10 * time.Second, 30 * time.Second},
		{29 * time.Second, 30 * time.Second},
		{45 * time.Second, time.Minute},
		{time.Minute, time.Minute},
		// The cadence ceiling: even hourly data quantizes to one minute.
		{time.Hour, time.Minute},
	}
	for _, tc := range cases {
		s1 := secondsSeries("a", start, tc.step, []float64{1, 2, 3, 4})
		s2 := secondsSeries("b", start, tc.step, []float64{4, 3, 2, 1})
		if got := InferCadence(s1, s2); got != tc.want {
			t.Errorf("native step %v: got %v, want %v", tc.step, got, tc.want)
		}
	}
}

func TestInferCadenceTakesSmallerMedian(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fast := secondsSeries("fast", start, 2*time.Second, []float64{1, 2, 3, 4, 5})
	slow := secondsSeries("slow", start, time.Minute, []float64{1, 2, 3, 4, 5})

	if got := InferCadence(fast, slow); got != 5*time.Second {
		t.Errorf("got %v, want 5s from the faster series", got)
	}
}
