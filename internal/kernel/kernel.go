// Package kernel implements the stateful resampling engines behind the
// pull-mode converter.
//
// A Kernel converts a stream at a fixed source rate to a fixed target rate.
// It owns per-channel input staging (filter history plus not-yet-consumed
// frames) and a fixed-point fractional phase accumulator, so output is
// deterministic and continuous no matter how the surrounding code slices its
// requests. All staging capacity is fixed at construction; Push and Render
// never allocate.
package kernel

import (
	"fmt"
	"math"
)

// Quality selects the interpolation engine and filter parameters.
type Quality int

const (
	// QualityQuick selects 4-point Hermite interpolation.
	QualityQuick Quality = iota
	// QualityLow selects a short polyphase FIR (~16-bit precision).
	QualityLow
	// QualityMedium selects a medium polyphase FIR (~18-bit precision).
	QualityMedium
	// QualityGood selects a long polyphase FIR (~20-bit precision).
	QualityGood
	// QualityBest selects the longest polyphase FIR (~28-bit precision).
	QualityBest
)

// Kernel is the engine protocol the converter core drives.
//
// The conversation is: ask Ready how many output frames the staged input can
// yield; if that is short, ask Required how many more source frames are
// needed, Push them (never more than Capacity), then Render. Render consumes
// staged input, advances the phase accumulator, and retains the filter
// history needed for continuity into the next call.
type Kernel interface {
	// Ready returns how many output frames the currently staged input can
	// produce without further Push calls.
	Ready() int

	// Required returns how many additional source frames must be pushed
	// before Ready() reaches at least outFrames. Zero means the staging is
	// already sufficient.
	Required(outFrames int) int

	// Capacity returns the free staging space in frames. A Push may never
	// exceed it.
	Capacity() int

	// Push appends one slice of source frames per channel to the staging
	// area. All slices must have equal length, at most Capacity().
	Push(frames [][]float32)

	// Render writes exactly n output frames per channel into
	// dst[ch][offset:offset+n]. n must not exceed Ready().
	Render(dst [][]float32, offset, n int)

	// Latency returns the current pipeline delay in seconds: filter group
	// delay plus staged input, measured in the source time domain.
	Latency() float64

	// Reset returns the kernel to its constructed silent state.
	Reset()
}

// Fixed-point phase accumulator constants. Positions are tracked as
//
//	at = (sourceFrame*phases + phase) << fracBits | subPhase
//
// so one source frame equals phases<<fracBits accumulator units. 16
// fractional bits give 65536 sub-phases per coefficient phase, which keeps
// inter-phase interpolation smooth while the arithmetic stays integer and
// exactly reproducible.
const (
	fracBits = 16
	fracMask = (1 << fracBits) - 1
)

// Ratio limits; derived from the extreme supported rate pairs with margin.
const (
	minRatio = 1.0 / 256.0
	maxRatio = 256.0
)

// stateOverheadBytes accounts for the kernel struct headers and slice
// descriptors in the planner's state size report.
const stateOverheadBytes = 256

// Layout is the memory footprint of a kernel configuration, computed without
// building the kernel. It is pure and deterministic: equal inputs always
// yield equal layouts, which is what lets callers plan allocations before
// construction.
type Layout struct {
	// Phases is the polyphase table granularity (1 for Hermite).
	Phases int

	// TapsPerPhase is the source-domain filter window length.
	TapsPerPhase int

	// HistoryCap is the per-channel staging capacity in frames.
	HistoryCap int

	// StateBytes is the persistent state size in bytes, covering coefficient
	// tables and all channel staging.
	StateBytes int
}

// PlanLayout computes the Layout for a configuration. It fails for
// non-positive rates or a conversion ratio outside the supported range.
func PlanLayout(sourceHz, targetHz float64, channels, maxFrames int, q Quality) (Layout, error) {
	if sourceHz <= 0 || targetHz <= 0 {
		return Layout{}, fmt.Errorf("sample rates must be positive: source=%g, target=%g", sourceHz, targetHz)
	}

	ratio := targetHz / sourceHz
	if ratio < minRatio || ratio > maxRatio {
		return Layout{}, fmt.Errorf("conversion ratio %g out of range [%g, %g]", ratio, minRatio, maxRatio)
	}

	var phases, taps int
	if q == QualityQuick {
		phases, taps = 1, hermiteTaps
	} else {
		spec, err := polyphaseSpec(ratio, q)
		if err != nil {
			return Layout{}, err
		}
		phases, taps = spec.phases, spec.tapsPerPhase
	}

	historyCap := taps - 1 + maxFrames

	stateBytes := stateOverheadBytes + channels*historyCap*4
	if q != QualityQuick {
		// Four coefficient banks (base plus three interpolation orders).
		stateBytes += 4 * phases * taps * 4
	}

	return Layout{
		Phases:       phases,
		TapsPerPhase: taps,
		HistoryCap:   historyCap,
		StateBytes:   stateBytes,
	}, nil
}

// New builds the kernel for a configuration. The returned kernel is in its
// silent initial state and has performed all allocation it will ever do.
func New(sourceHz, targetHz float64, channels, maxFrames int, q Quality) (Kernel, error) {
	layout, err := PlanLayout(sourceHz, targetHz, channels, maxFrames, q)
	if err != nil {
		return nil, err
	}

	if q == QualityQuick {
		return newHermite(sourceHz, targetHz, channels, layout.HistoryCap), nil
	}
	return newPolyphase(sourceHz, targetHz, channels, layout.HistoryCap, q)
}

// stepFor computes the fixed-point accumulator step for one output frame.
func stepFor(sourceHz, targetHz float64, phases int) int64 {
	unit := float64(int64(phases) << fracBits)
	return int64(math.Round(sourceHz / targetHz * unit))
}
