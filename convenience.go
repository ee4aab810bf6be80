package converter

// defaultMaxFrames is the per-pull bound used by the convenience
// constructors. 256 frames is small enough for low-latency producers and
// large enough to keep pull overhead negligible.
const defaultMaxFrames = 256

// NewCDtoDAT creates a pull converter for CD (44.1kHz) to DAT/DVD (48kHz)
// conversion, one of the most common professional audio conversions.
func NewCDtoDAT(channels int, quality Quality, producer Producer) (*Converter, error) {
	return New(&Config{
		SourceRate: Rate44100,
		TargetRate: Rate48000,
		Channels:   channels,
		MaxFrames:  defaultMaxFrames,
		Direction:  DirectionPull,
		Quality:    quality,
	}, producer)
}

// NewDATtoCD creates a pull converter for DAT/DVD (48kHz) to CD (44.1kHz)
// conversion.
func NewDATtoCD(channels int, quality Quality, producer Producer) (*Converter, error) {
	return New(&Config{
		SourceRate: Rate48000,
		TargetRate: Rate44100,
		Channels:   channels,
		MaxFrames:  defaultMaxFrames,
		Direction:  DirectionPull,
		Quality:    quality,
	}, producer)
}

// NewMono creates a single-channel pull converter with QualityGood defaults.
func NewMono(source, target SamplingRate, producer Producer) (*Converter, error) {
	return New(&Config{
		SourceRate: source,
		TargetRate: target,
		Channels:   1,
		MaxFrames:  defaultMaxFrames,
		Direction:  DirectionPull,
		Quality:    QualityGood,
	}, producer)
}

// NewStereo creates a stereo pull converter with the specified quality.
func NewStereo(source, target SamplingRate, quality Quality, producer Producer) (*Converter, error) {
	return New(&Config{
		SourceRate: source,
		TargetRate: target,
		Channels:   stereoChannels,
		MaxFrames:  defaultMaxFrames,
		Direction:  DirectionPull,
		Quality:    quality,
	}, producer)
}
