package temporal

import (
	"math"
	"reflect"
	"testing"
	"time"

	"promcorr/domain/series"
)

func TestAlignJitterWithinTolerance(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s1 := series.Series{Name: "a", Samples: []series.Sample{
		{Time: start, Value: 1},
		{Time: start.Add(time.Second), Value: 2},
		{Time: start.Add(2 * time.Second), Value: 3},
	}}
	s2 := series.Series{Name: "b", Samples: []series.Sample{
		{Time: start.Add(500 * time.Millisecond), Value: 10},
		{Time: start.Add(1500 * time.Millisecond), Value: 20},
		{Time: start.Add(2500 * time.Millisecond), Value: 30},
	}}

	aligned := Align(s1, s2, time.Second, time.Second)
	if aligned.Len() != 3 {
		t.Fatalf("expected 3 aligned rows, got %d", aligned.Len())
	}
	for i, p := range aligned.Points {
		if p.V1 != float64(i+1) || p.V2 != float64((i+1)*10) {
			t.Errorf("row %d: got (%v, %v)", i, p.V1, p.V2)
		}
	}
}

func TestAlignDropsBeyondTolerance(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s1 := series.Series{Name: "a", Samples: []series.Sample{
		{Time: start, Value: 1},
		{Time: start.Add(time.Minute), Value: 2},
	}}
	s2 := series.Series{Name: "b", Samples: []series.Sample{
		{Time: start.Add(10 * time.Minute), Value: 10},
	}}

	aligned := Align(s1, s2, time.Second, 2*time.Second)
	if aligned.Len() != 0 {
		t.Errorf("expected no rows beyond tolerance, got %d", aligned.Len())
	}
}

func TestAlignEmptyInput(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := secondsSeries("a", start, time.Second, []float64{1, 2, 3})

	if got := Align(series.Series{}, s, time.Second, time.Second); got.Len() != 0 {
		t.Errorf("empty left input: got %d rows", got.Len())
	}
	if got := Align(s, series.Series{}, time.Second, time.Second); got.Len() != 0 {
		t.Errorf("empty right input: got %d rows", got.Len())
	}
}

func TestAlignMeanAggregation(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Two raw samples land in the same one-minute bucket.
	s1 := series.Series{Name: "a", Samples: []series.Sample{
		{Time: start.Add(10 * time.Second), Value: 10},
		{Time: start.Add(40 * time.Second), Value: 20},
	}}
	s2 := series.Series{Name: "b", Samples: []series.Sample{
		{Time: start.Add(30 * time.Second), Value: 7},
	}}

	aligned := Align(s1, s2, time.Minute, time.Minute)
	if aligned.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", aligned.Len())
	}
	if aligned.Points[0].V1 != 15 {
		t.Errorf("bucket mean: got %v, want 15", aligned.Points[0].V1)
	}
}

func TestAlignSkipsUndefinedValues(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s1 := series.Series{Name: "a", Samples: []series.Sample{
		{Time: start, Value: math.NaN()},
		{Time: start.Add(time.Minute), Value: 2},
	}}
	s2 := series.Series{Name: "b", Samples: []series.Sample{
		{Time: start, Value: 1},
		{Time: start.Add(time.Minute), Value: 3},
	}}

	aligned := Align(s1, s2, time.Minute, time.Minute)
	if aligned.Len() != 1 {
		t.Fatalf("expected the NaN row to drop, got %d rows", aligned.Len())
	}
	if aligned.Points[0].V1 != 2 || aligned.Points[0].V2 != 3 {
		t.Errorf("got (%v, %v), want (2, 3)", aligned.Points[0].V1, aligned.Points[0].V2)
	}
}

func TestAlignDeterministic(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s1 := secondsSeries("a", start, 7*time.Second, []float64{1, 4, 2, 8, 5, 7, 1, 3})
	s2 := secondsSeries("b", start.Add(3*time.Second), 11*time.Second, []float64{2, 6, 4, 9, 1, 5})

	first := Align(s1, s2, 0, 0)
	second := Align(s1, s2, 0, 0)
	if !reflect.DeepEqual(first, second) {
		t.Error("alignment of identical inputs differs between runs")
	}
	for i := 1; i < first.Len(); i++ {
		if !first.Points[i].Time.After(first.Points[i-1].Time) {
			t.Errorf("row %d not strictly after row %d", i, i-1)
		}
	}
}
