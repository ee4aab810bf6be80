// Package filter provides Kaiser-window FIR design for the resampling
// kernel.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/drbaloney/audio-converter/internal/mathutil"
)

const (
	// Filter length limits
	minTaps = 3
	maxTaps = 32767

	// sincZeroThreshold guards the removable singularity at x = 0.
	sincZeroThreshold = 1e-12
)

// LowPassSpec describes a windowed-sinc lowpass prototype.
type LowPassSpec struct {
	// Taps is the filter length. Odd lengths give a symmetric linear-phase
	// filter with an exact center tap.
	Taps int

	// Cutoff is the normalized cutoff frequency in cycles per sample,
	// where 0.5 is Nyquist. Must lie in (0, 0.5).
	Cutoff float64

	// Attenuation is the desired stopband attenuation in dB. It selects the
	// Kaiser window β.
	Attenuation float64

	// Gain is the DC gain of the resulting filter (typically 1.0, or the
	// phase count for a polyphase prototype).
	Gain float64
}

// Validate checks the prototype parameters.
func (s *LowPassSpec) Validate() error {
	if s.Taps < minTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", s.Taps, minTaps)
	}

	if s.Taps > maxTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", s.Taps, maxTaps)
	}

	if s.Cutoff <= 0 || s.Cutoff >= 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %g (must be in (0, 0.5))", s.Cutoff)
	}

	if s.Attenuation <= 0 {
		return fmt.Errorf("invalid attenuation: %g dB (must be positive)", s.Attenuation)
	}

	if s.Gain <= 0 {
		return fmt.Errorf("invalid gain: %g (must be positive)", s.Gain)
	}

	return nil
}

// Kaiser generates a Kaiser window of the given length and β.
//
// The window is symmetric (w[i] == w[length-1-i]) with w = 1 at the center
// and tapering toward the edges; larger β trades main-lobe width for deeper
// sidelobe suppression.
func Kaiser(length int, beta float64) []float64 {
	if length < 1 {
		return nil
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	center := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)

	for n := range window {
		// Position relative to center, normalized to [-1, 1].
		x := (float64(n) - center) / center
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}

	return window
}

// LowPass designs a windowed-sinc lowpass FIR filter.
//
// The ideal sinc response is truncated to Taps samples, shaped with a Kaiser
// window whose β is derived from the attenuation target, and rescaled so the
// coefficient sum equals Gain.
func LowPass(spec LowPassSpec) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	beta := mathutil.KaiserBeta(spec.Attenuation)
	window := Kaiser(spec.Taps, beta)

	coeffs := make([]float64, spec.Taps)
	center := float64(spec.Taps-1) / 2

	for n := range coeffs {
		x := float64(n) - center

		// sinc(2·fc·x) scaled so the center tap is 2·fc.
		var s float64
		if math.Abs(x) < sincZeroThreshold {
			s = 2 * spec.Cutoff
		} else {
			s = math.Sin(2*math.Pi*spec.Cutoff*x) / (math.Pi * x)
		}

		coeffs[n] = s * window[n]
	}

	// Normalize DC gain.
	sum := f64.Sum(coeffs)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(coeffs, coeffs, spec.Gain/sum)
	}

	return coeffs, nil
}
