// main package for the glados-tts service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/book-expert/logger"
	"github.com/nats-io/nats.go"

	"github.com/book-expert/glados-tts/internal/audio"
	"github.com/book-expert/glados-tts/internal/config"
	"github.com/book-expert/glados-tts/internal/core"
	"github.com/book-expert/glados-tts/internal/engine"
	"github.com/book-expert/glados-tts/internal/fsutil"
	"github.com/book-expert/glados-tts/internal/objectstore"
	"github.com/book-expert/glados-tts/internal/phoneme"
	"github.com/book-expert/glados-tts/internal/worker"
)

func setupLogger(logPath string) (*logger.Logger, error) {
	log, err := logger.New(logPath, "glados-tts.log")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

func run() error {
	// 1. Create a temporary logger for the bootstrap process
	bootstrapLog, err := setupLogger(os.TempDir())
	if err != nil {
		// If bootstrap logger fails, we can only print to stderr
		fmt.Fprintf(os.Stderr, "FATAL: Failed to create bootstrap logger: %v\n", err)

		return err
	}

	bootstrapLog.Info("Bootstrap logger created.")

	// 2. Load configuration using the central configurator
	cfg, err := config.Load(bootstrapLog)
	if err != nil {
		bootstrapLog.Error("Failed to load configuration: %v", err)

		return fmt.Errorf("failed to load configuration: %w", err)
	}

	bootstrapLog.Info("Configuration loaded successfully.")

	// 3. Initialize the final logger based on the loaded configuration
	finalLog, err := setupLogger(cfg.Paths.BaseLogsDir)
	if err != nil {
		bootstrapLog.Error("Failed to create final logger: %v", err)

		return fmt.Errorf("failed to create final logger: %w", err)
	}

	defer func() {
		closeErr := finalLog.Close()
		if closeErr != nil {
			fmt.Fprintf(os.Stderr, "error closing final logger: %v\n", closeErr)
		}
	}()

	return runService(cfg, finalLog)
}

func runService(cfg *config.Config, log *logger.Logger) error {
	natsConnection, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer natsConnection.Close()

	jetstreamContext, err := natsConnection.JetStream()
	if err != nil {
		return fmt.Errorf("failed to get JetStream context: %w", err)
	}

	textStore, err := objectstore.New(jetstreamContext, cfg.NATS.TextObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("failed to create text object store: %w", err)
	}

	audioStore, err := objectstore.New(jetstreamContext, cfg.NATS.AudioObjectStoreBucket)
	if err != nil {
		return fmt.Errorf("failed to create audio object store: %w", err)
	}

	pipeline, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// The first synthesis pass is slow while the engine pages in its
	// weights. A failed warmup means no job would succeed either.
	err = pipeline.Warmup(ctx)
	if err != nil {
		return fmt.Errorf("engine warmup failed: %w", err)
	}

	ttsWorker := worker.New(
		natsConnection,
		cfg.NATS.TextProcessedSubject,
		textStore,
		audioStore,
		pipeline,
		log,
	)

	log.System(
		"GLaDOS TTS service initialized. Listening for jobs on subject: %s",
		cfg.NATS.TextProcessedSubject,
	)

	err = ttsWorker.Run(ctx)
	if err != nil {
		return fmt.Errorf("worker exited with error: %w", err)
	}

	log.System("Shutdown complete.")

	return nil
}

func buildPipeline(cfg *config.Config, log *logger.Logger) (*engine.Pipeline, error) {
	lexiconPath, err := fsutil.ResolveModelFile(
		cfg.Engine.LexiconFile, cfg.Engine.ModelDir,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to locate lexicon: %w", err)
	}

	phonemizer, err := phoneme.LoadLexicon(lexiconPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	log.Info("Loaded lexicon with %d entries from %s.", phonemizer.Len(), lexiconPath)

	synthConfig := core.SynthesisConfig{
		ModelDir:    cfg.Engine.ModelDir,
		Voice:       cfg.Engine.Voice,
		Alpha:       cfg.Engine.Alpha,
		Temperature: cfg.Engine.Temperature,
		SampleRate:  audio.ModelSampleRate,
	}

	timeout := time.Duration(cfg.Engine.TimeoutSeconds) * time.Second

	var synth core.Synthesizer
	if cfg.Engine.ServiceURL != "" {
		synth = engine.NewHTTPSynthesizer(cfg.Engine.ServiceURL, timeout, synthConfig)
	} else {
		synth, err = engine.NewLocalSynthesizer(synthConfig, cfg.Engine.Binary, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create local synthesizer: %w", err)
		}
	}

	cacheTTL := time.Duration(cfg.Engine.CacheTTLSeconds) * time.Second

	return engine.NewPipeline(synth, phonemizer, cacheTTL, log), nil
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Service exited with error: %v\n", err)
		os.Exit(1)
	}
}
