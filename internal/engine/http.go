package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/book-expert/glados-tts/internal/core"
)

// HTTPSynthesizer implements core.Synthesizer against a standalone
// inference server, for deployments where the model weights live behind
// a service instead of a local runner binary.
type HTTPSynthesizer struct {
	client *Client
	config core.SynthesisConfig
}

// NewHTTPSynthesizer creates a server-backed synthesizer.
func NewHTTPSynthesizer(
	serviceURL string,
	timeout time.Duration,
	cfg core.SynthesisConfig,
) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		client: NewClient(serviceURL, timeout),
		config: cfg,
	}
}

// NewHTTPSynthesizerWithClient injects a custom client; for tests.
func NewHTTPSynthesizerWithClient(client *Client, cfg core.SynthesisConfig) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		client: client,
		config: cfg,
	}
}

// Config returns the synthesizer's base configuration.
func (s *HTTPSynthesizer) Config() core.SynthesisConfig {
	return s.config
}

// Synthesize requests audio for one phoneme string from the server.
func (s *HTTPSynthesizer) Synthesize(
	ctx context.Context,
	phonemes string,
	cfg core.SynthesisConfig,
) ([]byte, error) {
	audioData, err := s.client.Synthesize(ctx, Request{
		Phonemes:    phonemes,
		Voice:       cfg.Voice,
		Alpha:       cfg.Alpha,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return audioData, nil
}

// HealthCheck probes the backing inference server.
func (s *HTTPSynthesizer) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}
