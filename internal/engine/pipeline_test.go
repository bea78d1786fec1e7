package engine_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/book-expert/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/book-expert/glados-tts/internal/core"
	"github.com/book-expert/glados-tts/internal/engine"
	"github.com/book-expert/glados-tts/internal/phoneme"
)

var errMockSynthesis = errors.New("mock synthesis error")

func coreConfigForTest() core.SynthesisConfig {
	return core.SynthesisConfig{
		ModelDir:    "/opt/glados/models",
		Voice:       "glados",
		Alpha:       1.15,
		Temperature: 0,
		SampleRate:  22050,
	}
}

// mockSynthesizer records calls and returns canned WAV data.
type mockSynthesizer struct {
	mu         sync.Mutex
	calls      atomic.Int64
	shouldFail bool
	config     core.SynthesisConfig
	lastConfig core.SynthesisConfig
}

func (m *mockSynthesizer) Config() core.SynthesisConfig {
	return m.config
}

func (m *mockSynthesizer) Synthesize(
	_ context.Context,
	phonemes string,
	cfg core.SynthesisConfig,
) ([]byte, error) {
	m.calls.Add(1)

	m.mu.Lock()
	m.lastConfig = cfg
	m.mu.Unlock()

	if m.shouldFail {
		return nil, errMockSynthesis
	}

	return []byte("RIFF:" + phonemes), nil
}

func (m *mockSynthesizer) receivedConfig() core.SynthesisConfig {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastConfig
}

func testPhonemizer() *phoneme.Phonemizer {
	return phoneme.NewPhonemizer(map[string]string{
		"zero":  "ˈzɪroʊ",
		"one":   "wʌn",
		"hello": "hɛloʊ",
		"world": "wɜrld",
		"cake":  "keɪk",
	})
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New(t.TempDir(), "pipeline-test.log")
	require.NoError(t, err)

	return log
}

func newTestPipeline(t *testing.T, synth core.Synthesizer, cacheTTL time.Duration) *engine.Pipeline {
	t.Helper()

	pipeline := engine.NewPipeline(synth, testPhonemizer(), cacheTTL, testLogger(t))
	t.Cleanup(pipeline.Close)

	return pipeline
}

func TestPipeline_Prepare(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t, &mockSynthesizer{config: coreConfigForTest()}, 0)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "known words become phonemes",
			input:    "hello world",
			expected: "hɛloʊ wɜrld.",
		},
		{
			name:     "digits are spoken",
			input:    "0",
			expected: "ˈzɪroʊ.",
		},
		{
			name:     "symbols outside the inventory are filtered",
			input:    "hello XYZ",
			expected: "hɛloʊ .",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := pipeline.Prepare(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, result)
		})
	}
}

func TestPipeline_Prepare_NothingToSay(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t, &mockSynthesizer{config: coreConfigForTest()}, 0)

	for _, input := range []string{"", "   ", "...", "?!"} {
		_, err := pipeline.Prepare(input)
		assert.ErrorIs(t, err, engine.ErrNothingToSay, "input %q", input)
	}
}

func TestPipeline_Speak(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)

	wavData, err := pipeline.Speak(t.Context(), "hello world", pipeline.Defaults())
	require.NoError(t, err)

	assert.Equal(t, []byte("RIFF:hɛloʊ wɜrld."), wavData)
	assert.Equal(t, int64(1), synth.calls.Load())
}

func TestPipeline_Speak_UsesRequestConfig(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, time.Minute)

	requestConfig := pipeline.Defaults()
	requestConfig.Voice = "announcer"
	requestConfig.Temperature = 0.9
	requestConfig.TopP = 0.8

	_, err := pipeline.Speak(t.Context(), "cake", requestConfig)
	require.NoError(t, err)

	received := synth.receivedConfig()
	assert.Equal(t, "announcer", received.Voice)
	assert.InEpsilon(t, 0.9, received.Temperature, 1e-9)
	assert.InEpsilon(t, 0.8, received.TopP, 1e-9)

	// Different parameters must not share a cache entry.
	_, err = pipeline.Speak(t.Context(), "cake", pipeline.Defaults())
	require.NoError(t, err)

	assert.Equal(t, int64(2), synth.calls.Load())
}

func TestPipeline_Speak_SynthesisError(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{shouldFail: true, config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)

	_, err := pipeline.Speak(t.Context(), "hello", pipeline.Defaults())
	assert.ErrorIs(t, err, errMockSynthesis)
}

func TestPipeline_Speak_CacheHit(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, time.Minute)

	first, err := pipeline.Speak(t.Context(), "cake", pipeline.Defaults())
	require.NoError(t, err)

	second, err := pipeline.Speak(t.Context(), "cake", pipeline.Defaults())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), synth.calls.Load(), "second call should be served from cache")
}

func TestPipeline_Warmup(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)

	err := pipeline.Warmup(t.Context())
	require.NoError(t, err)

	assert.Equal(t, int64(2), synth.calls.Load())
}

func TestPipeline_Warmup_FailsFast(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{shouldFail: true, config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)

	err := pipeline.Warmup(t.Context())
	assert.ErrorIs(t, err, errMockSynthesis)
}

func TestPipeline_SpeakToFile(t *testing.T) {
	t.Parallel()

	pipeline := newTestPipeline(t, &mockSynthesizer{config: coreConfigForTest()}, 0)
	outputPath := filepath.Join(t.TempDir(), "nested", "hello.wav")

	err := pipeline.SpeakToFile(t.Context(), "hello", outputPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF:hɛloʊ."), data)
}

func TestPipeline_SpeakBatch(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)
	outputDir := t.TempDir()

	chunks := []string{"hello", "world", "cake"}

	err := pipeline.SpeakBatch(t.Context(), chunks, outputDir, 2)
	require.NoError(t, err)

	for index := range chunks {
		path := filepath.Join(outputDir, fmt.Sprintf("chunk_%04d.wav", index+1))

		_, statErr := os.Stat(path)
		assert.NoError(t, statErr, "expected %s to exist", path)
	}

	assert.Equal(t, int64(3), synth.calls.Load())
}

func TestPipeline_SpeakBatch_PropagatesChunkError(t *testing.T) {
	t.Parallel()

	synth := &mockSynthesizer{shouldFail: true, config: coreConfigForTest()}
	pipeline := newTestPipeline(t, synth, 0)

	err := pipeline.SpeakBatch(t.Context(), []string{"hello"}, t.TempDir(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errMockSynthesis)
}
