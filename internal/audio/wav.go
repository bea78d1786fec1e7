// Package audio handles the audio output contract of the synthesis
// pipeline: converting model output samples into 16-bit PCM WAV data.
//
// The acoustic model emits mono float samples at 22050 Hz; everything in
// this package defaults to that contract.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Model output contract.
const (
	// ModelSampleRate is the sample rate the vocoder produces.
	ModelSampleRate = 22050
	// ModelChannels is the channel count the vocoder produces.
	ModelChannels = 1
	// ModelBitDepth is the PCM bit depth of emitted WAV files.
	ModelBitDepth = 16
)

// Validation limits.
const (
	maxSampleRate = 192000
	maxChannels   = 8

	pcmScale    = 32767.0
	wavAudioFmt = 1 // PCM
)

// Static errors.
var (
	// ErrNoSamples indicates an empty sample buffer.
	ErrNoSamples = errors.New("no audio samples to encode")
	// ErrInvalidSampleRate indicates a sample rate outside (0, 192000].
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	// ErrInvalidChannels indicates a channel count outside [1, 8].
	ErrInvalidChannels = errors.New("invalid channel count")
	// ErrEmptyWAV indicates WAV data with no PCM payload.
	ErrEmptyWAV = errors.New("wav data contains no samples")
	// ErrNotWAV indicates data that is not a RIFF/WAVE file.
	ErrNotWAV = errors.New("not a valid wav file")
)

// Format describes the PCM layout of encoded audio.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// ModelFormat returns the format the synthesis pipeline emits.
func ModelFormat() Format {
	return Format{
		SampleRate: ModelSampleRate,
		Channels:   ModelChannels,
		BitDepth:   ModelBitDepth,
	}
}

// Validate checks the format against supported bounds.
func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, f.SampleRate)
	}

	if f.Channels <= 0 || f.Channels > maxChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, f.Channels)
	}

	switch f.BitDepth {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("unsupported bit depth: %d", f.BitDepth)
	}
}

// EncodePCM renders float samples in [-1, 1] as a WAV file in memory.
// Samples outside the range are clamped before scaling to int16, the
// same way the original vocoder output is scaled.
func EncodePCM(samples []float32, format Format) ([]byte, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	validateErr := format.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	buffer := newWriteSeekBuffer()

	encoder := wav.NewEncoder(
		buffer,
		format.SampleRate,
		format.BitDepth,
		format.Channels,
		wavAudioFmt,
	)

	intBuffer := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			SampleRate:  format.SampleRate,
			NumChannels: format.Channels,
		},
		Data:           quantize(samples),
		SourceBitDepth: format.BitDepth,
	}

	writeErr := encoder.Write(intBuffer)
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write wav samples: %w", writeErr)
	}

	closeErr := encoder.Close()
	if closeErr != nil {
		return nil, fmt.Errorf("failed to finalize wav encoding: %w", closeErr)
	}

	return buffer.Bytes(), nil
}

// Decode parses WAV data into an integer PCM buffer.
func Decode(data []byte) (*gaudio.IntBuffer, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav data: %w", err)
	}

	if buffer == nil || len(buffer.Data) == 0 {
		return nil, ErrEmptyWAV
	}

	return buffer, nil
}

// Duration computes the playback duration of a sample count.
func Duration(sampleCount int, format Format) time.Duration {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return 0
	}

	frames := sampleCount / format.Channels

	return time.Duration(frames) * time.Second / time.Duration(format.SampleRate)
}

// quantize clamps and scales float samples to int16 range.
func quantize(samples []float32) []int {
	data := make([]int, len(samples))

	for index, sample := range samples {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		data[index] = int(sample * pcmScale)
	}

	return data
}

// writeSeekBuffer is an in-memory io.WriteSeeker for the wav encoder,
// which patches RIFF chunk sizes after writing the payload.
type writeSeekBuffer struct {
	data []byte
	pos  int
}

func newWriteSeekBuffer() *writeSeekBuffer {
	return &writeSeekBuffer{data: nil, pos: 0}
}

func (b *writeSeekBuffer) Write(p []byte) (int, error) {
	end := b.pos + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}

	copy(b.data[b.pos:end], p)
	b.pos = end

	return len(p), nil
}

func (b *writeSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64

	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid seek whence: %d", whence)
	}

	if next < 0 {
		return 0, errors.New("seek before start of buffer")
	}

	b.pos = int(next)

	return next, nil
}

// Bytes returns the encoded buffer contents.
func (b *writeSeekBuffer) Bytes() []byte {
	return b.data
}
