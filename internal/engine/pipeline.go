package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/book-expert/logger"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/errgroup"

	"github.com/book-expert/glados-tts/internal/core"
	"github.com/book-expert/glados-tts/internal/fsutil"
	"github.com/book-expert/glados-tts/internal/phoneme"
	"github.com/book-expert/glados-tts/internal/text"
)

const (
	// warmupUtterances matches the two short generations the model
	// needs before latency settles.
	warmupUtterances = 2

	chunkFileFormat = "chunk_%04d.wav"

	filePermissions = 0o600
)

// ErrNothingToSay indicates the input reduced to an empty phoneme string.
var ErrNothingToSay = errors.New("input text contains nothing to synthesize")

// Pipeline is the full text-to-speech path: normalization,
// phonemization, inventory filtering, synthesis, and a TTL cache over
// results so repeated utterances skip inference entirely.
type Pipeline struct {
	cleaner    *text.Cleaner
	phonemizer *phoneme.Phonemizer
	tokenizer  *phoneme.Tokenizer
	synth      core.Synthesizer
	cache      *ttlcache.Cache[string, []byte]
	log        *logger.Logger
}

// NewPipeline assembles a pipeline around a synthesizer. A cacheTTL of
// zero disables the result cache.
func NewPipeline(
	synth core.Synthesizer,
	phonemizer *phoneme.Phonemizer,
	cacheTTL time.Duration,
	log *logger.Logger,
) *Pipeline {
	pipeline := &Pipeline{
		cleaner:    text.NewCleaner(),
		phonemizer: phonemizer,
		tokenizer:  phoneme.NewTokenizer(),
		synth:      synth,
		cache:      nil,
		log:        log,
	}

	if cacheTTL > 0 {
		pipeline.cache = ttlcache.New(
			ttlcache.WithTTL[string, []byte](cacheTTL),
		)
		go pipeline.cache.Start()
	}

	return pipeline
}

// Close releases pipeline resources.
func (p *Pipeline) Close() {
	if p.cache != nil {
		p.cache.Stop()
	}
}

// Prepare converts raw text into the filtered phoneme string the model
// consumes. The steps mirror the model's training-time preprocessing:
// terminal punctuation, English normalization, lexicon phonemization,
// and inventory filtering.
func (p *Pipeline) Prepare(input string) (string, error) {
	prepared := text.EnsureSentenceEnd(input)
	if prepared == "" || !text.IsSpoken(prepared) {
		return "", ErrNothingToSay
	}

	cleaned := p.cleaner.Clean(prepared)
	phonemes := p.phonemizer.Phonemize(cleaned)
	filtered := p.tokenizer.Filter(phonemes)

	if !text.IsSpoken(filtered) {
		return "", ErrNothingToSay
	}

	return filtered, nil
}

// Defaults returns the service-level synthesis parameters.
func (p *Pipeline) Defaults() core.SynthesisConfig {
	return p.synth.Config()
}

// Speak synthesizes one text into WAV data using the given parameters.
// Callers without per-request overrides pass Defaults unchanged.
func (p *Pipeline) Speak(
	ctx context.Context,
	input string,
	cfg core.SynthesisConfig,
) ([]byte, error) {
	phonemes, err := p.Prepare(input)
	if err != nil {
		return nil, err
	}

	cacheKey := synthesisCacheKey(phonemes, cfg)
	if cached, found := p.cacheGet(cacheKey); found {
		return cached, nil
	}

	startTime := time.Now()

	wavData, err := p.synth.Synthesize(ctx, phonemes, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	p.log.Info(
		"Synthesized %d phoneme tokens into %s of audio in %s",
		len(p.tokenizer.Encode(phonemes)),
		fsutil.FormatFileSize(int64(len(wavData))),
		fsutil.FormatDuration(time.Since(startTime)),
	)

	p.cacheSet(cacheKey, wavData)

	return wavData, nil
}

// SpeakToFile synthesizes one text and writes the WAV to outputPath,
// creating parent directories as needed.
func (p *Pipeline) SpeakToFile(ctx context.Context, input, outputPath string) error {
	wavData, err := p.Speak(ctx, input, p.Defaults())
	if err != nil {
		return err
	}

	dirErr := fsutil.EnsureDir(filepath.Dir(outputPath))
	if dirErr != nil {
		return dirErr
	}

	writeErr := os.WriteFile(outputPath, wavData, filePermissions)
	if writeErr != nil {
		return fmt.Errorf("failed to write audio file: %w", writeErr)
	}

	return nil
}

// SpeakBatch synthesizes a list of text chunks into outputDir with
// bounded parallelism. Output files are named sequentially
// (chunk_0001.wav, chunk_0002.wav, ...). The first error cancels the
// remaining chunks.
func (p *Pipeline) SpeakBatch(
	ctx context.Context,
	chunks []string,
	outputDir string,
	workers int,
) error {
	if workers <= 0 {
		workers = 1
	}

	dirErr := fsutil.EnsureDir(outputDir)
	if dirErr != nil {
		return dirErr
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for chunkIndex, chunk := range chunks {
		group.Go(func() error {
			outputPath := filepath.Join(
				outputDir,
				fmt.Sprintf(chunkFileFormat, chunkIndex+1),
			)

			err := p.SpeakToFile(groupCtx, chunk, outputPath)
			if err != nil {
				return fmt.Errorf("chunk %d failed: %w", chunkIndex+1, err)
			}

			p.log.Info("Processed chunk %d/%d", chunkIndex+1, len(chunks))

			return nil
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return fmt.Errorf("batch synthesis failed: %w", waitErr)
	}

	return nil
}

// Warmup runs two short syntheses so the model's first real utterance
// is produced at steady-state latency. A warmup failure means the model
// setup is broken and the service should not start.
func (p *Pipeline) Warmup(ctx context.Context) error {
	for iteration := range warmupUtterances {
		_, err := p.Speak(ctx, strconv.Itoa(iteration), p.Defaults())
		if err != nil {
			return fmt.Errorf("warmup utterance %d failed: %w", iteration, err)
		}
	}

	return nil
}

func (p *Pipeline) cacheGet(key string) ([]byte, bool) {
	if p.cache == nil {
		return nil, false
	}

	item := p.cache.Get(key)
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (p *Pipeline) cacheSet(key string, wavData []byte) {
	if p.cache != nil {
		p.cache.Set(key, wavData, ttlcache.DefaultTTL)
	}
}

// synthesisCacheKey derives a stable key from the phonemes and every
// parameter that changes the audio output.
func synthesisCacheKey(phonemes string, cfg core.SynthesisConfig) string {
	hasher := sha256.New()

	fmt.Fprintf(
		hasher,
		"%s|%s|%.4f|%.4f|%.4f|%d",
		phonemes, cfg.Voice, cfg.Alpha, cfg.Temperature, cfg.TopP, cfg.SampleRate,
	)

	return hex.EncodeToString(hasher.Sum(nil))
}
