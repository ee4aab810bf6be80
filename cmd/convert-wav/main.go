// Command convert-wav resamples a WAV file to a target sample rate using the
// pull-mode converter: the producer callback streams decoded source frames,
// and the tool drains the converter into the output file.
//
// Usage:
//
//	convert-wav -rate 48000 input.wav output.wav
//	convert-wav -rate 16000 -quality low speech.wav speech_16k.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	converter "github.com/drbaloney/audio-converter"
)

const (
	defaultRate      = 48000
	defaultMaxFrames = 1024
	minRequiredArgs  = 2

	// Output is written in fixed-size chunks.
	outputChunkFrames = 4096

	// WAV audio format tag for PCM.
	wavFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", defaultRate, "Target sample rate in Hz (e.g. 16000, 44100, 48000)")
	quality := flag.String("quality", "good", "Quality level: quick, low, medium, good, best")
	maxFrames := flag.Int("maxframes", defaultMaxFrames, "Maximum frames per internal producer pull")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	q, err := parseQuality(*quality)
	if err != nil {
		return err
	}

	src, err := loadWAV(args[0])
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("input: %d Hz, %d channels, %d-bit, %d frames",
			src.rate, src.channels, src.bitDepth, src.frames)
		log.Printf("target: %d Hz, quality %s", *rate, q)
	}

	cfg := &converter.Config{
		SourceRate: converter.SamplingRate(src.rate),
		TargetRate: converter.SamplingRate(*rate),
		Channels:   src.channels,
		MaxFrames:  *maxFrames,
		Direction:  converter.DirectionPull,
		Quality:    q,
	}

	conv, err := converter.New(cfg, src)
	if err != nil {
		return err
	}

	output, err := pullAll(conv, src, *rate)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("output: %d frames", len(output[0]))
	}

	return writeWAV(args[1], output, *rate, src.bitDepth)
}

// parseQuality maps a quality flag value to the converter's quality level.
func parseQuality(s string) (converter.Quality, error) {
	switch s {
	case "quick":
		return converter.QualityQuick, nil
	case "low":
		return converter.QualityLow, nil
	case "medium":
		return converter.QualityMedium, nil
	case "good":
		return converter.QualityGood, nil
	case "best":
		return converter.QualityBest, nil
	default:
		return 0, fmt.Errorf("unknown quality %q (want quick, low, medium, good or best)", s)
	}
}

// wavSource holds a fully decoded WAV file and doubles as the converter's
// producer: it streams the decoded frames in order and pads with silence
// once the file is exhausted, which flushes the filter tail through the
// converter.
type wavSource struct {
	data     [][]float32 // per channel
	pos      int
	rate     int
	channels int
	bitDepth int
	frames   int
}

// Produce fills the pull buffers with the next source frames.
func (s *wavSource) Produce(_ float64, buffers [][]float32) {
	n := len(buffers[0])
	for ch := range buffers {
		src := s.data[ch]
		for i := range buffers[ch] {
			if s.pos+i < len(src) {
				buffers[ch][i] = src[s.pos+i]
			} else {
				buffers[ch][i] = 0
			}
		}
	}
	s.pos += n
}

// loadWAV decodes a WAV file into per-channel float32 samples in [-1, 1].
func loadWAV(path string) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	channels := buf.Format.NumChannels
	bitDepth := int(decoder.BitDepth)
	frames := len(buf.Data) / channels
	scale := float32(1) / float32(int(1)<<(bitDepth-1))

	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
		for i := range data[ch] {
			data[ch][i] = float32(buf.Data[i*channels+ch]) * scale
		}
	}

	return &wavSource{
		data:     data,
		rate:     buf.Format.SampleRate,
		channels: channels,
		bitDepth: bitDepth,
		frames:   frames,
	}, nil
}

// pullAll drains the converter for the full duration of the source,
// compensating for the filter latency by discarding the leading transient.
func pullAll(conv *converter.Converter, src *wavSource, targetRate int) ([][]float32, error) {
	outFrames := int(math.Round(float64(src.frames) * conv.Ratio()))
	skip := int(math.Round(conv.Latency() * float64(targetRate)))

	work := make([]float32, conv.WorkLen())

	output := make([][]float32, src.channels)
	for ch := range output {
		output[ch] = make([]float32, outFrames)
	}

	chunk := make([][]float32, src.channels)
	for ch := range chunk {
		chunk[ch] = make([]float32, outputChunkFrames)
	}

	// Swallow the latency transient first, then fill the output in chunks.
	for skipped := 0; skipped < skip; {
		n := min(outputChunkFrames, skip-skipped)
		conv.Process(work, chunk, n)
		skipped += n
	}

	for written := 0; written < outFrames; {
		n := min(outputChunkFrames, outFrames-written)
		views := make([][]float32, src.channels)
		for ch := range views {
			views[ch] = output[ch][written : written+n]
		}
		conv.Process(work, views, n)
		written += n
	}

	return output, nil
}

// writeWAV encodes per-channel float32 samples as an interleaved PCM WAV.
func writeWAV(path string, data [][]float32, rate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	channels := len(data)
	frames := len(data[0])
	limit := int(1)<<(bitDepth-1) - 1
	scale := float32(int(1) << (bitDepth - 1))

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, frames*channels),
	}

	for i := range frames {
		for ch := range data {
			v := int(data[ch][i] * scale)
			if v > limit {
				v = limit
			} else if v < -limit-1 {
				v = -limit - 1
			}
			buf.Data[i*channels+ch] = v
		}
	}

	encoder := wav.NewEncoder(f, rate, bitDepth, channels, wavFormatPCM)
	if err := encoder.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	return f.Close()
}
