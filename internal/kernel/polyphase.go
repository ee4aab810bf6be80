package kernel

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f32"

	"github.com/drbaloney/audio-converter/internal/filter"
	"github.com/drbaloney/audio-converter/internal/mathutil"
)

// Filter design constants.
const (
	// Stopband attenuation per bit of precision: att = (bits + 1) * 6.02 dB.
	dbPerBit = 6.0206

	// Polyphase table granularity search range. More phases means finer
	// native phase resolution before sub-phase interpolation kicks in.
	minPhases = 32
	maxPhases = 256

	// rationalTolerance stops the phase search once the ratio is matched
	// exactly for practical purposes.
	rationalTolerance = 1e-12

	// Per-phase window length bounds.
	minTapsPerPhase = 8
)

// Cubic inter-phase coefficient interpolation (Catmull-Rom form):
// coef(x) = a + x*(b + x*(c + x*d)) for sub-phase position x in [0, 1).
const (
	cubicCenterCoeff = 0.5
	cubicDivisor     = 6.0
	cubicCMultiplier = 4.0
)

// qualityParams maps a quality level to its filter design inputs: precision
// bits (setting stopband attenuation), the fraction of the usable band kept
// free of transition rolloff, and a cap on the per-phase window length.
func qualityParams(q Quality) (bits, passband float64, maxTapsPerPhase int, err error) {
	switch q {
	case QualityLow:
		return 16, 0.80, 24, nil
	case QualityMedium:
		return 18, 0.88, 32, nil
	case QualityGood:
		return 20, 0.93, 48, nil
	case QualityBest:
		return 28, 0.97, 96, nil
	default:
		return 0, 0, 0, fmt.Errorf("no polyphase design for quality %d", q)
	}
}

// polySpec holds the deterministic design parameters for a polyphase
// configuration. Computing it is pure, which is what allows PlanLayout to
// report exact sizes before any kernel exists.
type polySpec struct {
	phases       int
	tapsPerPhase int
	totalTaps    int

	attenuation float64
	cutoff      float64 // prototype-normalized cutoff (0, 0.5)
	groupDelay  float64 // source frames
}

// polyphaseSpec derives the filter design for a conversion ratio and quality.
//
// The band to preserve ends at the lower of the two Nyquist frequencies
// (source-normalized). The transition band is carved out of its top
// (1 - passband) fraction, the Kaiser formula sizes the per-phase window for
// the attenuation target, and the quality cap bounds the window so CPU cost
// stays proportional to the chosen level.
func polyphaseSpec(ratio float64, q Quality) (polySpec, error) {
	bits, passband, maxTaps, err := qualityParams(q)
	if err != nil {
		return polySpec{}, err
	}

	phases := rationalPhases(ratio)
	attenuation := (bits + 1) * dbPerBit

	// Band edge in cycles per source sample (Nyquist = 0.5).
	bandEnd := 0.5 * math.Min(1, ratio)
	transitionBW := bandEnd * (1 - passband)
	cutoffSrc := bandEnd - transitionBW/2

	taps := mathutil.EstimateFilterLength(attenuation, transitionBW)
	if taps < minTapsPerPhase {
		taps = minTapsPerPhase
	} else if taps > maxTaps {
		taps = maxTaps
	}

	totalTaps := phases*taps - 1

	return polySpec{
		phases:       phases,
		tapsPerPhase: taps,
		totalTaps:    totalTaps,
		attenuation:  attenuation,
		cutoff:       cutoffSrc / float64(phases),
		groupDelay:   float64(totalTaps-1) / 2 / float64(phases),
	}, nil
}

// rationalPhases picks the phase count whose grid best matches the
// conversion ratio, so the fixed-point step loses as little precision as
// possible. Exact rational ratios (all pairs of the standard rates) get an
// exact grid.
func rationalPhases(ratio float64) int {
	invRatio := 1 / ratio

	best := minPhases
	bestErr := math.Inf(1)

	for l := minPhases; l <= maxPhases; l++ {
		steps := math.Round(invRatio * float64(l))
		if steps < 1 {
			continue
		}
		err := math.Abs(steps/float64(l) - invRatio)
		if err < bestErr {
			best = l
			bestErr = err
		}
		if bestErr < rationalTolerance {
			break
		}
	}

	return best
}

// polyphase is the FIR resampling kernel used by every quality level above
// Quick.
//
// The prototype lowpass is decomposed into phases sub-filters; each output
// frame picks the phase nearest its fractional source position and refines
// it by cubic interpolation between neighboring phases, using the 16
// sub-phase bits of the accumulator. The interpolation polynomials are
// precomputed per tap as four coefficient banks, evaluated fused with the
// dot product in the hot loop.
type polyphase struct {
	staging

	coeffsA [][]float32 // [phase][tap], base coefficient, reversed tap order
	coeffsB [][]float32 // linear term
	coeffsC [][]float32 // quadratic term
	coeffsD [][]float32 // cubic term

	fracScale float32
}

func newPolyphase(sourceHz, targetHz float64, channels, historyCap int, q Quality) (*polyphase, error) {
	spec, err := polyphaseSpec(targetHz/sourceHz, q)
	if err != nil {
		return nil, err
	}

	// Prototype gain equals the phase count so each phase has DC gain ~1.
	prototype, err := filter.LowPass(filter.LowPassSpec{
		Taps:        spec.totalTaps,
		Cutoff:      spec.cutoff,
		Attenuation: spec.attenuation,
		Gain:        float64(spec.phases),
	})
	if err != nil {
		return nil, fmt.Errorf("polyphase prototype design failed: %w", err)
	}

	p := &polyphase{
		staging: newStaging(sourceHz, targetHz, channels, historyCap,
			spec.phases, spec.tapsPerPhase, spec.groupDelay),
		fracScale: float32(1.0 / float64(int64(1)<<fracBits)),
	}
	p.buildBanks(prototype, spec.phases, spec.tapsPerPhase)

	return p, nil
}

// buildBanks decomposes the prototype into per-phase sub-filters and
// precomputes the cubic inter-phase interpolation coefficients. Taps are
// stored reversed so the hot loop is a plain forward dot product over the
// chronological history window.
func (p *polyphase) buildBanks(prototype []float64, phases, taps int) {
	// proto(tap, phase) with wrap-around across the phase axis, reading the
	// prototype in polyphase order. Out-of-range taps read as zero padding.
	proto := func(phase, tap int) float64 {
		wrapped := phase % phases
		if wrapped < 0 {
			wrapped += phases
		}
		idx := tap*phases + wrapped
		if idx < 0 || idx >= len(prototype) {
			return 0
		}
		return prototype[idx]
	}

	p.coeffsA = make([][]float32, phases)
	p.coeffsB = make([][]float32, phases)
	p.coeffsC = make([][]float32, phases)
	p.coeffsD = make([][]float32, phases)

	for phase := range phases {
		p.coeffsA[phase] = make([]float32, taps)
		p.coeffsB[phase] = make([]float32, taps)
		p.coeffsC[phase] = make([]float32, taps)
		p.coeffsD[phase] = make([]float32, taps)

		for tap := range taps {
			f0 := proto(phase, tap)
			f1 := proto(phase+1, tap)
			fm1 := proto(phase-1, tap)
			f2 := proto(phase+2, tap)

			a := f0
			c := cubicCenterCoeff*(f1+fm1) - f0
			d := (1.0 / cubicDivisor) * (f2 - f1 + fm1 - f0 - cubicCMultiplier*c)
			b := f1 - f0 - d - c

			rev := taps - 1 - tap
			p.coeffsA[phase][rev] = float32(a)
			p.coeffsB[phase][rev] = float32(b)
			p.coeffsC[phase][rev] = float32(c)
			p.coeffsD[phase][rev] = float32(d)
		}
	}
}

// Render produces n output frames per channel into dst[ch][offset:].
func (p *polyphase) Render(dst [][]float32, offset, n int) {
	if n <= 0 {
		return
	}
	if n > p.Ready() {
		panic("kernel: render beyond ready frames")
	}

	phases64 := int64(p.phases)
	at := p.at

	for i := range n {
		full := at >> fracBits
		div := int(full / phases64)
		phase := int(full % phases64)
		x := float32(at&fracMask) * p.fracScale

		a := p.coeffsA[phase]
		b := p.coeffsB[phase]
		c := p.coeffsC[phase]
		d := p.coeffsD[phase]

		for ch := range p.hist {
			window := p.hist[ch][div : div+p.taps]
			dst[ch][offset+i] = f32.CubicInterpDot(window, a, b, c, d, x)
		}

		at += p.step
	}

	p.at = at
	p.trim()
}
