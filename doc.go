// Package converter provides streaming sample-rate conversion with a
// pull-based processing model in pure Go.
//
// A [Converter] sits between a frame producer and a consumer. The consumer
// repeatedly asks for an arbitrary number of output frames via
// [Converter.Process]; the converter pulls exactly as many input frames as it
// needs from the producer callback, resamples them between two fixed sampling
// rates, and writes the requested frames into caller-owned per-channel
// buffers. Call-to-call slicing of the output stream is completely free-form:
// splitting one long request into many short ones yields bit-identical
// output.
//
// # Memory model
//
// All sizing is decided up front. [Plan] computes the alignment and byte size
// of the converter's persistent state before construction, and
// [Converter.WorkPlan] reports the transient work buffer needed by a single
// Process call. Construction performs the one and only allocation pass;
// Process never allocates, never grows a buffer, and never performs I/O of
// its own.
//
// # Quick start
//
//	cfg := &converter.Config{
//	    SourceRate: converter.Rate44100,
//	    TargetRate: converter.Rate48000,
//	    Channels:   2,
//	    MaxFrames:  256,
//	    Direction:  converter.DirectionPull,
//	    Quality:    converter.QualityGood,
//	}
//	if _, err := converter.Plan(cfg); err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := converter.New(cfg, converter.ProducerFunc(produce))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, size := conv.WorkPlan()
//	work := make([]float32, size/converter.BytesPerSample)
//
//	outputs := [][]float32{make([]float32, 400), make([]float32, 400)}
//	conv.Process(work, outputs, 400)
//
// The producer is invoked synchronously from inside Process, at most
// MaxFrames frames per invocation, and receives the current pipeline latency
// in seconds so it can compensate for the filter's group delay.
//
// # Quality levels
//
//   - [QualityQuick]: 4-point Hermite interpolation, lowest CPU and latency.
//   - [QualityLow]: short polyphase FIR, good for speech.
//   - [QualityMedium]: general-purpose music playback.
//   - [QualityGood]: production-grade conversion (recommended default).
//   - [QualityBest]: longest filter, for mastering and archival work.
//
// Higher quality means a longer filter and therefore more latency; the exact
// filter length for a configuration is fixed at construction and reported
// through [Converter.Latency].
//
// # Concurrency
//
// A Converter owns one logical stream. Process, the producer callback, and
// all internal state run on the caller's goroutine; there is no internal
// concurrency. Concurrent streams need one Converter each, and a work buffer
// must never be shared by two Process calls that can overlap.
package converter
