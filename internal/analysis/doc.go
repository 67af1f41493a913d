// Package analysis provides frequency and parameter analysis of recorded
// simulation series.
//
//   - [PowerSpectrum]: power spectrum of a recorded series via real FFT
//   - [DominantFrequency]: strongest non-DC spectral component in Hz
//   - [Sweep]: uniform parameter sweep collecting a scalar metric
//
// # Bounce Frequency
//
// The dominant frequency of a dropped particle's height series is its
// bounce rate:
//
//	spectrum := analysis.PowerSpectrum(sess.YSeries())
//	hz := analysis.DominantFrequency(spectrum, 1/dt)
package analysis
