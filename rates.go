package converter

// SamplingRate identifies one of the supported standard sampling rates.
// The numeric value of a SamplingRate is its frequency in Hz, so the
// constants double as plain rate values where convenient. Source and target
// rates of a conversion are independent; every pair of supported rates is a
// valid conversion.
type SamplingRate int

// Supported sampling rates.
const (
	// Rate8000 is the telephony (PSTN narrowband) sample rate.
	Rate8000 SamplingRate = 8000

	// Rate11025 is the quarter-CD sample rate.
	Rate11025 SamplingRate = 11025

	// Rate16000 is the VoIP wideband sample rate.
	Rate16000 SamplingRate = 16000

	// Rate22050 is the half-CD sample rate, common in speech processing.
	Rate22050 SamplingRate = 22050

	// Rate24000 is the super-wideband speech sample rate.
	Rate24000 SamplingRate = 24000

	// Rate32000 is the broadcast (DAB/NICAM) sample rate.
	Rate32000 SamplingRate = 32000

	// Rate44100 is the CD sample rate (Red Book standard).
	Rate44100 SamplingRate = 44100

	// Rate48000 is the DAT/DVD and video production sample rate.
	Rate48000 SamplingRate = 48000

	// Rate88200 is the high-resolution 2x CD sample rate.
	Rate88200 SamplingRate = 88200

	// Rate96000 is the high-resolution 2x DAT sample rate.
	Rate96000 SamplingRate = 96000

	// Rate176400 is the very high resolution 4x CD sample rate.
	Rate176400 SamplingRate = 176400

	// Rate192000 is the very high resolution 4x DAT sample rate.
	Rate192000 SamplingRate = 192000
)

// supportedRates is the closed set accepted by the planner.
var supportedRates = map[SamplingRate]bool{
	Rate8000:   true,
	Rate11025:  true,
	Rate16000:  true,
	Rate22050:  true,
	Rate24000:  true,
	Rate32000:  true,
	Rate44100:  true,
	Rate48000:  true,
	Rate88200:  true,
	Rate96000:  true,
	Rate176400: true,
	Rate192000: true,
}

// Valid reports whether r is one of the supported sampling rates.
func (r SamplingRate) Valid() bool {
	return supportedRates[r]
}

// Hz returns the rate as a frequency in Hz.
func (r SamplingRate) Hz() float64 {
	return float64(r)
}

// Direction selects who drives the conversion loop.
type Direction int

const (
	// DirectionPull makes the converter request input from a producer
	// callback as output is demanded. This is the only direction currently
	// implemented.
	DirectionPull Direction = iota

	// DirectionPush is reserved for a caller-driven mode where input is
	// handed to the converter and output is delivered to a consumer
	// callback. Planning rejects it.
	DirectionPush
)

// Quality enumerates the resampling fidelity levels, trading CPU cost and
// latency for filter length and stopband attenuation.
type Quality int

const (
	// QualityQuick uses 4-point Hermite interpolation. Fastest and lowest
	// latency, suitable for preview and non-critical audio.
	QualityQuick Quality = iota

	// QualityLow provides ~16-bit polyphase resampling for speech and
	// low-bandwidth audio.
	QualityLow

	// QualityMedium provides quality suitable for general music playback.
	QualityMedium

	// QualityGood provides production-grade conversion with ~20-bit
	// precision. The recommended default.
	QualityGood

	// QualityBest provides the longest filter and ~28-bit precision for
	// mastering and archival applications.
	QualityBest
)

// String returns the lowercase name of the quality level.
func (q Quality) String() string {
	switch q {
	case QualityQuick:
		return "quick"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityGood:
		return "good"
	case QualityBest:
		return "best"
	default:
		return "unknown"
	}
}

// valid reports whether q names a defined quality level.
func (q Quality) valid() bool {
	return q >= QualityQuick && q <= QualityBest
}
