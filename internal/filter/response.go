package filter

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// minResponsePoints keeps the FFT large enough to resolve narrow
	// transition bands even for short filters.
	minResponsePoints = 512

	// minMagnitude floors the magnitude before the log so that exact nulls
	// map to a finite dB value instead of -Inf.
	minMagnitude = 1e-12

	dbPerDecade = 20.0
)

// Response holds the sampled magnitude response of an FIR filter.
type Response struct {
	// Frequencies in cycles per sample, 0 to 0.5 (Nyquist).
	Frequencies []float64

	// MagnitudeDB is the magnitude at each frequency in dB relative to
	// unity gain.
	MagnitudeDB []float64
}

// ComputeResponse evaluates the magnitude response of the filter at
// uniformly spaced frequencies by zero-padding the impulse response and
// taking a real FFT. points requests the number of bins between DC and
// Nyquist inclusive; it is rounded up to a power-of-two FFT at least
// minResponsePoints long.
func ComputeResponse(coeffs []float64, points int) Response {
	if points < minResponsePoints {
		points = minResponsePoints
	}

	// FFT length: next power of two covering both the filter and the
	// requested resolution.
	n := 1
	for n < 2*points || n < len(coeffs) {
		n <<= 1
	}

	padded := make([]float64, n)
	copy(padded, coeffs)

	fft := fourier.NewFFT(n)
	spectrum := fft.Coefficients(nil, padded)

	bins := n/2 + 1
	resp := Response{
		Frequencies: make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}

	for k := range bins {
		mag := math.Hypot(real(spectrum[k]), imag(spectrum[k]))
		if mag < minMagnitude {
			mag = minMagnitude
		}
		resp.Frequencies[k] = float64(k) / float64(n)
		resp.MagnitudeDB[k] = dbPerDecade * math.Log10(mag)
	}

	return resp
}

// StopbandPeakDB returns the highest magnitude (dB) at or above the given
// normalized frequency. It is the figure of merit for anti-aliasing and
// anti-imaging performance.
func (r Response) StopbandPeakDB(from float64) float64 {
	peak := math.Inf(-1)
	for i, f := range r.Frequencies {
		if f >= from && r.MagnitudeDB[i] > peak {
			peak = r.MagnitudeDB[i]
		}
	}
	return peak
}
