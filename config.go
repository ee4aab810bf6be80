package converter

import (
	"errors"
	"fmt"
)

// Config holds the immutable parameters of a conversion stream. Every field
// is fixed for the lifetime of the Converter built from it.
type Config struct {
	// SourceRate is the sampling rate of the producer's frames.
	SourceRate SamplingRate

	// TargetRate is the sampling rate of the frames written by Process.
	TargetRate SamplingRate

	// Channels is the number of audio channels. Buffers at the API boundary
	// are always non-interleaved: one contiguous sample slice per channel.
	Channels int

	// MaxFrames is the upper bound on the number of frames the converter
	// requests from the producer in a single invocation. It also sizes the
	// work buffer. It does not bound the frame count of a Process call;
	// larger requests are satisfied by looping internally.
	MaxFrames int

	// Direction selects pull or push mode. Only DirectionPull is
	// implemented.
	Direction Direction

	// Quality selects the resampling fidelity level.
	Quality Quality
}

// Common errors returned by planning and construction.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid converter configuration")

	// ErrUnsupportedRate indicates a sampling rate outside the supported set.
	ErrUnsupportedRate = errors.New("unsupported sampling rate")

	// ErrUnsupportedDirection indicates a direction other than pull.
	ErrUnsupportedDirection = errors.New("unsupported conversion direction")

	// ErrUnsupportedQuality indicates an undefined quality level.
	ErrUnsupportedQuality = errors.New("unsupported quality level")
)

// Validate checks whether the configuration describes a convertible stream.
// Planning and construction both fail hard on the first violation; a partial
// converter never exists.
func (c *Config) Validate() error {
	if !c.SourceRate.Valid() {
		return fmt.Errorf("%w: source rate %d Hz", ErrUnsupportedRate, c.SourceRate)
	}

	if !c.TargetRate.Valid() {
		return fmt.Errorf("%w: target rate %d Hz", ErrUnsupportedRate, c.TargetRate)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.MaxFrames < 1 {
		return fmt.Errorf("%w: max frames must be at least 1", ErrInvalidConfig)
	}

	if c.MaxFrames > maxFrameLimit {
		return fmt.Errorf("%w: max frames too large (max %d)", ErrInvalidConfig, maxFrameLimit)
	}

	switch c.Direction {
	case DirectionPull:
	case DirectionPush:
		return fmt.Errorf("%w: push mode is not implemented", ErrUnsupportedDirection)
	default:
		return fmt.Errorf("%w: direction %d", ErrUnsupportedDirection, c.Direction)
	}

	if !c.Quality.valid() {
		return fmt.Errorf("%w: quality %d", ErrUnsupportedQuality, c.Quality)
	}

	return nil
}

// Ratio returns the conversion ratio (target rate / source rate).
func (c *Config) Ratio() float64 {
	return c.TargetRate.Hz() / c.SourceRate.Hz()
}
