package kernel

// staging is the state shared by every kernel: per-channel input staging and
// the fixed-point phase accumulator. The capacity of each channel slice is
// fixed at construction; Push appends within it and trim reclaims space by
// sliding consumed frames out, so the staging never allocates after
// construction.
type staging struct {
	hist   [][]float32 // per channel; len = staged frames, cap = HistoryCap
	phases int
	taps   int   // filter window length in source frames
	unit   int64 // accumulator units per source frame (phases << fracBits)
	step   int64 // accumulator units per output frame

	at int64 // current position in the staged input

	sourceHz   float64
	groupDelay float64 // filter group delay in source frames
}

func newStaging(sourceHz, targetHz float64, channels, historyCap, phases, taps int, groupDelay float64) staging {
	hist := make([][]float32, channels)
	for ch := range hist {
		hist[ch] = make([]float32, 0, historyCap)
	}

	return staging{
		hist:       hist,
		phases:     phases,
		taps:       taps,
		unit:       int64(phases) << fracBits,
		step:       stepFor(sourceHz, targetHz, phases),
		sourceHz:   sourceHz,
		groupDelay: groupDelay,
	}
}

// Ready returns the output frame count the staged input supports.
func (s *staging) Ready() int {
	numIn := len(s.hist[0]) - s.taps + 1
	if numIn <= 0 {
		return 0
	}

	limit := int64(numIn) * s.unit
	if s.at >= limit {
		return 0
	}
	return int((limit - s.at + s.step - 1) / s.step)
}

// Required returns the source frames still missing for outFrames of output.
func (s *staging) Required(outFrames int) int {
	if outFrames <= 0 {
		return 0
	}

	// Source frame index touched by the last of the outFrames emissions,
	// plus the filter window extending beyond it.
	last := s.at + int64(outFrames-1)*s.step
	needed := int(last/s.unit) + s.taps

	missing := needed - len(s.hist[0])
	if missing < 0 {
		return 0
	}
	return missing
}

// Capacity returns the free staging space in frames.
func (s *staging) Capacity() int {
	return cap(s.hist[0]) - len(s.hist[0])
}

// Push appends source frames to every channel's staging.
func (s *staging) Push(frames [][]float32) {
	if len(frames) != len(s.hist) {
		panic("kernel: push with wrong channel count")
	}
	if len(frames[0]) > s.Capacity() {
		panic("kernel: push exceeds staging capacity")
	}

	for ch := range frames {
		s.hist[ch] = append(s.hist[ch], frames[ch]...)
	}
}

// Latency reports the current delay in source-domain seconds: the filter's
// group delay plus everything staged but not yet rendered.
func (s *staging) Latency() float64 {
	return (s.groupDelay + float64(len(s.hist[0]))) / s.sourceHz
}

// Reset discards all staged input and rewinds the phase accumulator.
func (s *staging) Reset() {
	s.at = 0
	for ch := range s.hist {
		s.hist[ch] = s.hist[ch][:0]
	}
}

// trim slides fully consumed source frames out of the staging and rebases
// the accumulator, keeping the filter history needed for the next render.
func (s *staging) trim() {
	consumed := int(s.at / s.unit)
	if consumed <= 0 {
		return
	}

	n := len(s.hist[0])
	if consumed > n {
		consumed = n
	}

	for ch := range s.hist {
		copy(s.hist[ch], s.hist[ch][consumed:])
		s.hist[ch] = s.hist[ch][:n-consumed]
	}
	s.at -= int64(consumed) * s.unit
}
