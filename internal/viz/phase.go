package viz

import (
	"fmt"
	"strings"
)

// PhasePortrait renders a scatter plot of one quantity against another on a
// rune canvas. Point characters encode trajectory time: '.' for the first
// third of samples, 'o' for the middle, '●' for the last, so orbits and
// attractors read off the terminal.
func PhasePortrait(x, y []float64, width, height int) string {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n == 0 || width <= 0 || height <= 0 {
		return LabelStyle.Render("not enough data to plot")
	}

	xMin, xMax := x[0], x[0]
	yMin, yMax := y[0], y[0]
	for i := 0; i < n; i++ {
		if x[i] < xMin {
			xMin = x[i]
		}
		if x[i] > xMax {
			xMax = x[i]
		}
		if y[i] < yMin {
			yMin = y[i]
		}
		if y[i] > yMax {
			yMax = y[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := 0; i < n; i++ {
		px := int(float64(width-1) * (x[i] - xMin) / xRange)
		py := int(float64(height-1) * (y[i] - yMin) / yRange)
		py = height - 1 - py // flip so larger y draws higher
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < n/3 {
				canvas[py][px] = '.'
			} else if i < 2*n/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "  %.2f ┌", yMax)
	b.WriteString(strings.Repeat("─", width))
	b.WriteString("┐\n")

	for i := range canvas {
		if i == height/2 {
			fmt.Fprintf(&b, "  %.2f │", (yMax+yMin)/2)
		} else {
			b.WriteString("       │")
		}
		b.WriteString(string(canvas[i]))
		b.WriteString("│\n")
	}

	fmt.Fprintf(&b, "  %.2f └", yMin)
	b.WriteString(strings.Repeat("─", width))
	b.WriteString("┘\n")

	fmt.Fprintf(&b, "       %.2f", xMin)
	padding := width - 20
	if padding > 0 {
		b.WriteString(strings.Repeat(" ", padding))
	}
	fmt.Fprintf(&b, "%.2f\n", xMax)

	b.WriteString("\nlegend: . = early, o = middle, ● = late\n")

	return b.String()
}
