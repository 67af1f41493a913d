package analysis

import (
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum computes the power spectrum of a series: zero-padded to
// the next power of two, transformed with a real FFT, and reduced to the
// squared magnitudes of the first half of the coefficients.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	padded := make([]float64, dsputils.NextPowerOf2(len(series)))
	copy(padded, series)

	coeffs := fft.FFTReal(padded)
	spectrum := make([]float64, len(coeffs)/2)
	for i := range spectrum {
		re := real(coeffs[i])
		im := imag(coeffs[i])
		spectrum[i] = re*re + im*im
	}
	return spectrum
}

// DominantFrequency returns the frequency in Hz of the strongest spectral
// component above DC. The spectrum is the first half of a transform of
// 2*len(spectrum) samples, so bin i maps to i*sampleRate/(2*len).
func DominantFrequency(spectrum []float64, sampleRate float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}

	peak := 1
	for i := 2; i < len(spectrum); i++ {
		if spectrum[i] > spectrum[peak] {
			peak = i
		}
	}
	return float64(peak) * sampleRate / (2 * float64(len(spectrum)))
}
