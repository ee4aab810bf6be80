package converter

// Producer supplies input frames on demand. The converter invokes Produce
// zero or more times from inside a Process call, each time with one buffer
// per channel, all of equal length and never longer than the configured
// MaxFrames. The producer must fill every sample of every buffer before
// returning; partial fills are not representable and there is no
// end-of-stream signal in pull mode — the stream is assumed to continue for
// as long as the caller keeps calling Process.
//
// The latency argument is the current pipeline delay in seconds: the time by
// which a frame written into buffers lags its resampled effect in the output.
// It is recomputed for every invocation and stabilizes once the pipeline
// reaches steady state. Producers that generate time-based content (for
// example, scheduled tones) can subtract it to line up output timing.
//
// Produce runs synchronously on the caller's goroutine as part of the
// Process call stack. Any state the producer needs lives in the implementing
// value; the converter never inspects it.
type Producer interface {
	Produce(latency float64, buffers [][]float32)
}

// ProducerFunc adapts a plain function to the Producer interface, for
// producers whose state is captured in a closure or not needed at all.
type ProducerFunc func(latency float64, buffers [][]float32)

// Produce calls f(latency, buffers).
func (f ProducerFunc) Produce(latency float64, buffers [][]float32) {
	f(latency, buffers)
}
