package converter

import (
	"fmt"

	"github.com/drbaloney/audio-converter/internal/kernel"
)

// Converter resamples a continuous stream between two fixed sampling rates,
// pulling input frames from a producer as output is demanded.
//
// A Converter owns its kernel state (filter history, fractional phase) and
// is exclusively bound to one logical stream. It is constructed once via
// [New] and holds no resources beyond memory; discarding it is its
// destruction.
type Converter struct {
	cfg      Config
	kern     kernel.Kernel
	producer Producer

	// pullViews is reused for every producer invocation so the hot path
	// never allocates.
	pullViews [][]float32

	workLen int // work buffer length in samples
}

// New constructs a converter for the configuration, drawing input from
// producer. The producer must outlive the converter. Construction resets the
// kernel to its silent initial state and performs the converter's only
// allocations; the producer is not invoked.
func New(cfg *Config, producer Producer) (*Converter, error) {
	if _, err := Plan(cfg); err != nil {
		return nil, err
	}

	if producer == nil {
		return nil, fmt.Errorf("%w: producer is nil", ErrInvalidConfig)
	}

	kern, err := kernel.New(
		cfg.SourceRate.Hz(), cfg.TargetRate.Hz(),
		cfg.Channels, cfg.MaxFrames, kernelQuality(cfg.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Converter{
		cfg:       *cfg,
		kern:      kern,
		producer:  producer,
		pullViews: make([][]float32, cfg.Channels),
		workLen:   cfg.Channels * cfg.MaxFrames,
	}, nil
}

// WorkPlan returns the alignment and byte size of the work buffer a Process
// call needs. The size depends on the negotiated kernel configuration, so it
// is queryable only on a constructed converter. The buffer is caller-owned
// scratch: reusable across calls, never retained, never grown, and safe to
// share between converters as long as their Process calls are serialized.
func (c *Converter) WorkPlan() (alignment, size int) {
	return workAlignment, c.workLen * BytesPerSample
}

// WorkLen returns the work buffer length in float32 samples, for callers
// allocating the buffer as a slice.
func (c *Converter) WorkLen() int {
	return c.workLen
}

// Process writes exactly frames resampled output frames per channel into
// outputs[ch][0:frames], pulling input from the producer as needed. A frames
// of zero is a no-op and the producer is not invoked.
//
// outputs must hold one buffer per configured channel, each at least frames
// long; work must be at least WorkLen() samples. frames may be smaller or
// larger than the configured MaxFrames — larger requests loop internally,
// with output bit-identical to issuing many smaller calls. Violating the
// buffer contract panics: it is a programmer error, and the processing path
// itself has no failure modes once construction has succeeded.
func (c *Converter) Process(work []float32, outputs [][]float32, frames int) {
	if frames < 0 {
		panic(fmt.Sprintf("converter: negative frame count %d", frames))
	}
	if len(outputs) != c.cfg.Channels {
		panic(fmt.Sprintf("converter: got %d output buffers, want %d", len(outputs), c.cfg.Channels))
	}
	if frames == 0 {
		return
	}
	for ch := range outputs {
		if len(outputs[ch]) < frames {
			panic(fmt.Sprintf("converter: output buffer %d holds %d frames, want %d", ch, len(outputs[ch]), frames))
		}
	}
	if len(work) < c.workLen {
		panic(fmt.Sprintf("converter: work buffer holds %d samples, want %d", len(work), c.workLen))
	}

	produced := 0
	for produced < frames {
		// Drain whatever the staged input already supports.
		n := c.kern.Ready()
		if remaining := frames - produced; n > remaining {
			n = remaining
		}
		if n > 0 {
			c.kern.Render(outputs, produced, n)
			produced += n
			continue
		}

		// Starved: pull exactly what the remaining output needs, bounded by
		// the per-invocation contract.
		want := c.kern.Required(frames - produced)
		if want > c.cfg.MaxFrames {
			want = c.cfg.MaxFrames
		}
		if free := c.kern.Capacity(); want > free {
			want = free
		}

		for ch := 0; ch < c.cfg.Channels; ch++ {
			base := ch * c.cfg.MaxFrames
			c.pullViews[ch] = work[base : base+want]
		}

		c.producer.Produce(c.kern.Latency(), c.pullViews)
		c.kern.Push(c.pullViews)
	}
}

// Latency returns the current pipeline delay in seconds: the kernel's group
// delay plus staged input, in the source time domain. It grows during the
// initial fill and is stable once the pipeline reaches steady state.
func (c *Converter) Latency() float64 {
	return c.kern.Latency()
}

// Ratio returns the conversion ratio (target rate / source rate).
func (c *Converter) Ratio() float64 {
	return c.cfg.Ratio()
}

// Channels returns the configured channel count.
func (c *Converter) Channels() int {
	return c.cfg.Channels
}

// MaxFrames returns the per-pull frame bound.
func (c *Converter) MaxFrames() int {
	return c.cfg.MaxFrames
}

// Reset returns the converter to its constructed silent state, discarding
// filter history and phase. The producer binding and all planned sizes are
// unchanged, so the same work buffer remains valid.
func (c *Converter) Reset() {
	c.kern.Reset()
}
