package converter

// Channel constants
const (
	stereoChannels = 2   // Stereo channel count (used by convenience constructors)
	maxChannels    = 256 // Maximum supported channel count
)

// Frame count limits
const (
	// maxFrameLimit bounds MaxFrames so that work and staging buffers stay
	// a sane size even for misconfigured callers.
	maxFrameLimit = 1 << 20
)

// Memory layout constants
const (
	// BytesPerSample is the size of one float32 sample in bytes.
	BytesPerSample = 4

	// stateAlignment and workAlignment are the alignments reported by the
	// memory planner. Go's allocator already satisfies both; the values are
	// reported for parity with fixed-allocation hosts that place converter
	// state in arena memory.
	stateAlignment = 64
	workAlignment  = 64
)
