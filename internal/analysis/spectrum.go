// Package analysis provides frequency analysis of recorded probe
// series.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of a real-valued series
// (positive frequencies only). The input is zero-padded to the next
// power of two before transforming.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	n := 1
	for n < len(series) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, series)

	spectrum := fft.FFTReal(padded)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in Hz) of the strongest
// non-DC bin, given the sampling interval of the original series.
func DominantFrequency(ps []float64, sampleDt float64) float64 {
	if len(ps) < 2 || sampleDt <= 0 {
		return 0
	}

	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	// ps covers [0, Nyquist) in len(ps) bins over a record of
	// 2*len(ps) samples.
	totalSamples := float64(2 * len(ps))
	return float64(maxIdx) / (totalSamples * sampleDt)
}
