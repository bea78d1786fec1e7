package engine

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/book-expert/logger"

	"github.com/book-expert/glados-tts/internal/audio"
	"github.com/book-expert/glados-tts/internal/core"
)

const float32Bytes = 4

// Static errors.
var (
	// ErrModelDirEmpty indicates the model directory is not configured.
	ErrModelDirEmpty = errors.New("model directory cannot be empty")
	// ErrBinaryEmpty indicates the inference binary is not configured.
	ErrBinaryEmpty = errors.New("inference binary cannot be empty")
	// ErrTruncatedSamples indicates the runner produced a partial sample.
	ErrTruncatedSamples = errors.New("sample data is not a whole number of float32 values")
)

// LocalSynthesizer implements core.Synthesizer by invoking an external
// inference runner that holds the acoustic model and vocoder weights.
// The phoneme rendering is passed on stdin; the runner exports the raw
// float32 vocoder samples, which are packaged into WAV here.
type LocalSynthesizer struct {
	config core.SynthesisConfig
	binary string
	log    *logger.Logger
}

// NewLocalSynthesizer creates a local, binary-backed synthesizer.
func NewLocalSynthesizer(
	cfg core.SynthesisConfig,
	binary string,
	log *logger.Logger,
) (*LocalSynthesizer, error) {
	if cfg.ModelDir == "" {
		return nil, ErrModelDirEmpty
	}

	if binary == "" {
		return nil, ErrBinaryEmpty
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = audio.ModelSampleRate
	}

	return &LocalSynthesizer{
		config: cfg,
		binary: binary,
		log:    log,
	}, nil
}

// Config returns the synthesizer's base configuration.
func (s *LocalSynthesizer) Config() core.SynthesisConfig {
	return s.config
}

// Synthesize runs the inference binary for one phoneme string and
// returns WAV data built from the runner's raw sample output.
func (s *LocalSynthesizer) Synthesize(
	ctx context.Context,
	phonemes string,
	cfg core.SynthesisConfig,
) ([]byte, error) {
	if phonemes == "" {
		return nil, ErrPhonemesEmpty
	}

	if cfg.ModelDir == "" {
		return nil, ErrModelDirEmpty
	}

	samples, err := s.runInference(ctx, phonemes, cfg)
	if err != nil {
		return nil, err
	}

	format := audio.ModelFormat()
	if cfg.SampleRate > 0 {
		format.SampleRate = cfg.SampleRate
	}

	wavData, err := audio.EncodePCM(samples, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audio: %w", err)
	}

	return wavData, nil
}

func (s *LocalSynthesizer) runInference(
	ctx context.Context,
	phonemes string,
	cfg core.SynthesisConfig,
) ([]float32, error) {
	tempFile, err := os.CreateTemp("", "glados-tts-*.f32")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for sample output: %w", err)
	}

	// Only the path is needed; the runner writes the file itself.
	closeErr := tempFile.Close()
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", closeErr)
	}

	defer func() {
		removeErr := os.Remove(tempFile.Name())
		if removeErr != nil {
			s.log.Warn("Failed to remove temp file '%s': %v", tempFile.Name(), removeErr)
		}
	}()

	args := []string{
		"--model-dir", cfg.ModelDir,
		"--alpha", strconv.FormatFloat(cfg.Alpha, 'f', 2, 64),
		"--temperature", strconv.FormatFloat(cfg.Temperature, 'f', 2, 64),
		"--output", tempFile.Name(),
	}

	if cfg.Voice != "" {
		args = append(args, "--voice", cfg.Voice)
	}

	if cfg.TopP > 0 {
		args = append(args, "--top-p", strconv.FormatFloat(cfg.TopP, 'f', 2, 64))
	}

	// #nosec G204 -- the binary and model dir come from validated configuration
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Stdin = strings.NewReader(phonemes)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf(
			"inference binary execution failed: %w - output: %s",
			err, string(output),
		)
	}

	sampleData, err := os.ReadFile(tempFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read sample data from temp file: %w", err)
	}

	return decodeSamples(sampleData)
}

// decodeSamples parses little-endian float32 sample data.
func decodeSamples(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}

	if len(data)%float32Bytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedSamples, len(data))
	}

	samples := make([]float32, len(data)/float32Bytes)
	for index := range samples {
		bits := binary.LittleEndian.Uint32(data[index*float32Bytes:])
		samples[index] = math.Float32frombits(bits)
	}

	return samples, nil
}
