package kernel

import (
	"fmt"

	"github.com/drbaloney/audio-converter/internal/filter"
)

// DesignReport describes the polyphase prototype designed for a
// configuration, for analysis tooling and filter-quality tests. The hot path
// never uses it.
type DesignReport struct {
	Phases       int
	TapsPerPhase int
	TotalTaps    int

	// Attenuation is the stopband attenuation target in dB.
	Attenuation float64

	// Cutoff is the prototype-normalized cutoff (0.5 = prototype Nyquist).
	Cutoff float64

	// GroupDelay is the filter delay in source frames.
	GroupDelay float64

	// Prototype holds the designed lowpass coefficients before polyphase
	// decomposition.
	Prototype []float64
}

// Design computes and designs the polyphase prototype for a configuration.
// QualityQuick has no designed filter and is rejected.
func Design(sourceHz, targetHz float64, q Quality) (DesignReport, error) {
	if sourceHz <= 0 || targetHz <= 0 {
		return DesignReport{}, fmt.Errorf("sample rates must be positive: source=%g, target=%g", sourceHz, targetHz)
	}

	spec, err := polyphaseSpec(targetHz/sourceHz, q)
	if err != nil {
		return DesignReport{}, err
	}

	prototype, err := filter.LowPass(filter.LowPassSpec{
		Taps:        spec.totalTaps,
		Cutoff:      spec.cutoff,
		Attenuation: spec.attenuation,
		Gain:        float64(spec.phases),
	})
	if err != nil {
		return DesignReport{}, err
	}

	return DesignReport{
		Phases:       spec.phases,
		TapsPerPhase: spec.tapsPerPhase,
		TotalTaps:    spec.totalTaps,
		Attenuation:  spec.attenuation,
		Cutoff:       spec.cutoff,
		GroupDelay:   spec.groupDelay,
		Prototype:    prototype,
	}, nil
}
