package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Plot renders a time series as an ASCII line chart. Series shorter than
// two points cannot be plotted and produce a placeholder instead.
func Plot(series []float64, width, height int, caption string) string {
	if len(series) < 2 {
		return LabelStyle.Render("not enough data to plot")
	}
	return GraphStyle.Render(asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	))
}
