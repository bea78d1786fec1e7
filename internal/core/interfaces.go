// Package core defines the interfaces and job parameters shared across
// the GLaDOS TTS pipeline.
package core

import "context"

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// SynthesisConfig holds the parameters for a single synthesis call.
// Alpha controls speech speed: 1.0 is the natural rate, values above it
// stretch the output and values below it compress it. TopP bounds
// nucleus sampling in engines that support it; zero leaves the engine
// default in place.
type SynthesisConfig struct {
	ModelDir    string
	Voice       string
	Alpha       float64
	Temperature float64
	TopP        float64
	SampleRate  int
}

// Synthesizer turns a phoneme string into WAV audio data. Callers are
// expected to filter the phonemes to the model's symbol inventory first.
type Synthesizer interface {
	Synthesize(ctx context.Context, phonemes string, cfg SynthesisConfig) ([]byte, error)
	Config() SynthesisConfig
}

// Speaker is the full text-in, audio-out surface of the pipeline. Each
// call carries its own synthesis parameters so jobs can override the
// service defaults; callers without overrides pass Defaults unchanged.
type Speaker interface {
	Defaults() SynthesisConfig
	Speak(ctx context.Context, text string, cfg SynthesisConfig) ([]byte, error)
}
