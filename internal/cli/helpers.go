package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/book-expert/logger"

	"github.com/book-expert/glados-tts/internal/audio"
	"github.com/book-expert/glados-tts/internal/config"
	"github.com/book-expert/glados-tts/internal/core"
	"github.com/book-expert/glados-tts/internal/engine"
	"github.com/book-expert/glados-tts/internal/fsutil"
	"github.com/book-expert/glados-tts/internal/phoneme"
)

const defaultConfigFile = "project.toml"

// ErrServiceURLRequired indicates a command needs engine.service_url set.
var ErrServiceURLRequired = errors.New(
	"engine.service_url is not configured",
)

// loadConfig reads the configuration named by --config, falling back to
// project.toml in the working directory.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = defaultConfigFile
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// newCommandLogger writes command logs next to the service logs when a
// log directory is configured, and to the system temp directory otherwise.
func newCommandLogger(cfg *config.Config) (*logger.Logger, error) {
	logsDir := cfg.Paths.BaseLogsDir
	if logsDir == "" {
		logsDir = os.TempDir()
	}

	log, err := logger.New(logsDir, "glados-say.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func synthesisConfig(cfg *config.Config) core.SynthesisConfig {
	return core.SynthesisConfig{
		ModelDir:    cfg.Engine.ModelDir,
		Voice:       cfg.Engine.Voice,
		Alpha:       cfg.Engine.Alpha,
		Temperature: cfg.Engine.Temperature,
		SampleRate:  audio.ModelSampleRate,
	}
}

// newSynthesizer picks the engine backend: the HTTP engine when a
// service URL is configured, the local runner binary otherwise.
func newSynthesizer(cfg *config.Config, log *logger.Logger) (core.Synthesizer, error) {
	timeout := time.Duration(cfg.Engine.TimeoutSeconds) * time.Second

	if cfg.Engine.ServiceURL != "" {
		return engine.NewHTTPSynthesizer(
			cfg.Engine.ServiceURL, timeout, synthesisConfig(cfg),
		), nil
	}

	synth, err := engine.NewLocalSynthesizer(synthesisConfig(cfg), cfg.Engine.Binary, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create local synthesizer: %w", err)
	}

	return synth, nil
}

func loadPhonemizer(cfg *config.Config) (*phoneme.Phonemizer, error) {
	lexiconPath, err := fsutil.ResolveModelFile(cfg.Engine.LexiconFile, cfg.Engine.ModelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate lexicon: %w", err)
	}

	phonemizer, err := phoneme.LoadLexicon(lexiconPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	return phonemizer, nil
}

// newPipeline assembles the full synthesis pipeline from the
// configuration. The caller owns the returned pipeline and must Close it.
func newPipeline(cfg *config.Config, log *logger.Logger) (*engine.Pipeline, error) {
	synth, err := newSynthesizer(cfg, log)
	if err != nil {
		return nil, err
	}

	phonemizer, err := loadPhonemizer(cfg)
	if err != nil {
		return nil, err
	}

	cacheTTL := time.Duration(cfg.Engine.CacheTTLSeconds) * time.Second

	return engine.NewPipeline(synth, phonemizer, cacheTTL, log), nil
}
