package viz

import (
	"math"
	"strings"
	"testing"
)

func TestPlotRendersSeries(t *testing.T) {
	series := make([]float64, 120)
	for i := range series {
		series[i] = math.Sin(float64(i) / 10)
	}

	out := Plot(series, 60, 8, "energy over time")
	if !strings.Contains(out, "energy over time") {
		t.Errorf("expected caption in output")
	}
	if lines := strings.Count(out, "\n"); lines < 8 {
		t.Errorf("expected at least 8 lines, got %d", lines)
	}
}

func TestPlotShortSeries(t *testing.T) {
	for _, series := range [][]float64{nil, {1}} {
		out := Plot(series, 60, 8, "x")
		if !strings.Contains(out, "not enough data") {
			t.Errorf("expected placeholder for %d points, got %q", len(series), out)
		}
	}
}
