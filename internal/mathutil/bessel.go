// Package mathutil provides the numeric building blocks for Kaiser-window
// filter design.
package mathutil

import "math"

// Series convergence constants.
const (
	besselMaxTerms     = 80    // Upper bound on series terms (never reached for audio β)
	besselRelTolerance = 1e-16 // Stop once a term no longer changes the sum
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I0(x). It is the core of the Kaiser window formula.
//
// The implementation sums the power series
//
//	I0(x) = Σ ((x/2)^k / k!)²
//
// which converges rapidly for the argument range used in window design
// (|x| ≤ β ≈ 20) and is accurate to double precision there.
func BesselI0(x float64) float64 {
	// I0 is even, so work with the half-argument squared.
	h := x / 2
	hh := h * h

	sum := 1.0
	term := 1.0
	for k := 1; k < besselMaxTerms; k++ {
		term *= hh / float64(k*k)
		sum += term
		if term < sum*besselRelTolerance {
			break
		}
	}
	return sum
}

// Kaiser β formula constants, from Kaiser & Schafer.
const (
	betaHighAttThreshold = 50.0 // dB above which the linear formula applies
	betaLowAttThreshold  = 21.0 // dB below which a rectangular window suffices
	betaHighAttSlope     = 0.1102
	betaHighAttOffset    = 8.7
	betaMidAttPowCoeff   = 0.5842
	betaMidAttPow        = 0.4
	betaMidAttLinCoeff   = 0.07886
)

// KaiserBeta computes the Kaiser window β parameter that yields the desired
// stopband attenuation in dB.
//
// Formula from Kaiser & Schafer:
//   - att > 50 dB:        β = 0.1102·(att − 8.7)
//   - 21 dB < att ≤ 50:   β = 0.5842·(att − 21)^0.4 + 0.07886·(att − 21)
//   - att ≤ 21 dB:        β = 0 (rectangular window)
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > betaHighAttThreshold:
		return betaHighAttSlope * (attenuation - betaHighAttOffset)
	case attenuation > betaLowAttThreshold:
		d := attenuation - betaLowAttThreshold
		return betaMidAttPowCoeff*math.Pow(d, betaMidAttPow) + betaMidAttLinCoeff*d
	default:
		return 0
	}
}

// Kaiser length estimate constants.
const (
	tapEstimateAttOffset = 7.95  // dB offset in Kaiser's length formula
	tapEstimateSlope     = 2.285 // Slope term (multiplied by Δω = 2π·Δf)
	minEstimatedTaps     = 3     // Shortest meaningful FIR filter
)

// EstimateFilterLength returns the FIR length required for the given
// stopband attenuation (dB) and normalized transition bandwidth
// (cycles/sample, Nyquist = 0.5), per Kaiser's empirical formula
//
//	N ≈ (att − 7.95) / (2.285·Δω),  Δω = 2π·Δf
//
// The result is rounded up and forced odd so the filter can be symmetric
// around a center tap.
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		return minEstimatedTaps
	}

	deltaOmega := 2 * math.Pi * transitionBW
	n := int(math.Ceil((attenuation - tapEstimateAttOffset) / (tapEstimateSlope * deltaOmega)))
	if n < minEstimatedTaps {
		n = minEstimatedTaps
	}
	if n%2 == 0 {
		n++
	}
	return n
}

// EstimateTransitionWidth inverts the length formula: the normalized
// transition bandwidth an N-tap filter achieves for the given attenuation.
// Useful for locating the stopband edge of a filter whose length was capped
// below the estimate.
func EstimateTransitionWidth(attenuation float64, taps int) float64 {
	if taps < minEstimatedTaps {
		taps = minEstimatedTaps
	}
	return (attenuation - tapEstimateAttOffset) / (tapEstimateSlope * 2 * math.Pi * float64(taps))
}
