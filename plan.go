package converter

import (
	"fmt"

	"github.com/drbaloney/audio-converter/internal/kernel"
)

// MemoryPlan reports the persistent memory a converter will occupy for a
// configuration. It is computed without building anything: Plan is pure,
// deterministic, and side-effect free, so callers in fixed-allocation
// environments can budget memory before construction. New performs exactly
// one allocation pass matching this plan and the converter never grows
// afterward.
type MemoryPlan struct {
	// StateAlignment is the required alignment of the persistent state in
	// bytes.
	StateAlignment int

	// StateSize is the persistent state size in bytes: kernel coefficient
	// tables, per-channel staging, and the converter bookkeeping.
	StateSize int
}

// Plan validates the configuration and computes its memory plan. Any
// unsupported rate pair, channel count, frame bound, direction, or quality
// fails here; no partial converter ever exists.
func Plan(cfg *Config) (MemoryPlan, error) {
	if cfg == nil {
		return MemoryPlan{}, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return MemoryPlan{}, err
	}

	layout, err := kernel.PlanLayout(
		cfg.SourceRate.Hz(), cfg.TargetRate.Hz(),
		cfg.Channels, cfg.MaxFrames, kernelQuality(cfg.Quality),
	)
	if err != nil {
		return MemoryPlan{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return MemoryPlan{
		StateAlignment: stateAlignment,
		StateSize:      layout.StateBytes + converterOverheadBytes(cfg.Channels),
	}, nil
}

// converterOverheadBytes covers the converter struct and its per-channel
// pull view headers.
func converterOverheadBytes(channels int) int {
	const structBytes = 128
	const sliceHeaderBytes = 24
	return structBytes + channels*sliceHeaderBytes
}

// kernelQuality maps the public quality level to the kernel's.
func kernelQuality(q Quality) kernel.Quality {
	switch q {
	case QualityQuick:
		return kernel.QualityQuick
	case QualityLow:
		return kernel.QualityLow
	case QualityMedium:
		return kernel.QualityMedium
	case QualityGood:
		return kernel.QualityGood
	case QualityBest:
		return kernel.QualityBest
	default:
		return kernel.QualityGood
	}
}
