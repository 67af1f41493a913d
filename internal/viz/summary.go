package viz

import (
	"fmt"
	"sort"
	"strings"
)

// Stat formats a single labelled value as one aligned line.
func Stat(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// Summary renders a titled block of metric averages, one per line in
// alphabetical order.
func Summary(title string, metrics map[string]float64) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(strings.ToUpper(title)))
	b.WriteString("\n")

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString(Stat(name, fmt.Sprintf("%.4f", metrics[name])))
		b.WriteString("\n")
	}
	return b.String()
}
