package analysis

import (
	"math"
	"testing"
)

func TestSweepUniformSpacing(t *testing.T) {
	var seen []float64
	points := Sweep(0, 1, 5, func(v float64) float64 {
		seen = append(seen, v)
		return v * 2
	})

	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i, w := range want {
		if math.Abs(points[i].Value-w) > 1e-9 {
			t.Errorf("expected value %f at %d, got %f", w, i, points[i].Value)
		}
		if math.Abs(points[i].Metric-2*w) > 1e-9 {
			t.Errorf("expected metric %f at %d, got %f", 2*w, i, points[i].Metric)
		}
	}
	if len(seen) != 5 || seen[0] != 0 || seen[4] != 1 {
		t.Errorf("expected eval at endpoints in order, got %v", seen)
	}
}

func TestSweepSinglePoint(t *testing.T) {
	points := Sweep(0.5, 0.9, 1, func(v float64) float64 { return v })
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Value != 0.5 {
		t.Errorf("expected single point at lo, got %f", points[0].Value)
	}
}

func TestSweepNonPositiveCount(t *testing.T) {
	if got := Sweep(0, 1, 0, func(v float64) float64 { return v }); got != nil {
		t.Errorf("expected nil for zero count, got %v", got)
	}
	if got := Sweep(0, 1, -3, func(v float64) float64 { return v }); got != nil {
		t.Errorf("expected nil for negative count, got %v", got)
	}
}

func TestSweepDescendingRange(t *testing.T) {
	points := Sweep(1, 0, 3, func(v float64) float64 { return v })
	want := []float64{1, 0.5, 0}
	for i, w := range want {
		if math.Abs(points[i].Value-w) > 1e-9 {
			t.Errorf("expected value %f at %d, got %f", w, i, points[i].Value)
		}
	}
}
