// Package viz renders simulation output for the terminal: lipgloss
// styles shared by the CLI and the watch dashboard, metric summaries,
// asciigraph series plots, sparklines, and a rune-canvas phase portrait.
package viz
