package analysis

// SweepPoint pairs one swept parameter value with the metric it produced.
type SweepPoint struct {
	Value  float64
	Metric float64
}

// Sweep evaluates a metric at n uniformly spaced parameter values from lo
// to hi inclusive.
func Sweep(lo, hi float64, n int, eval func(v float64) float64) []SweepPoint {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []SweepPoint{{Value: lo, Metric: eval(lo)}}
	}

	points := make([]SweepPoint, 0, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		v := lo + float64(i)*step
		points = append(points, SweepPoint{Value: v, Metric: eval(v)})
	}
	return points
}
