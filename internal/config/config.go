// Package config provides the configuration structure for glados-tts.
package config

import (
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	toml "github.com/pelletier/go-toml/v2"
)

// Defaults applied when the configuration leaves a field unset. An
// unset temperature needs no default; zero already means deterministic
// sampling.
const (
	DefaultAlpha           = 1.0
	DefaultTimeoutSeconds  = 120
	DefaultWorkers         = 4
	DefaultCacheTTLSeconds = 300
	DefaultBinary          = "glados-infer"
	DefaultLexiconFile     = "en_us_ipa_lexicon.tsv"
)

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                      string `toml:"url"`
	TTSStreamName            string `toml:"tts_stream_name"`
	TTSConsumerName          string `toml:"tts_consumer_name"`
	TextProcessedSubject     string `toml:"text_processed_subject"`
	AudioChunkCreatedSubject string `toml:"audio_chunk_created_subject"`
	AudioObjectStoreBucket   string `toml:"audio_object_store_bucket"`
	TextObjectStoreBucket    string `toml:"text_object_store_bucket"`
}

// EngineConfig holds the synthesis engine settings.
type EngineConfig struct {
	// ModelDir is the directory holding the acoustic model, vocoder,
	// speaker embedding, and pronunciation lexicon.
	ModelDir string `toml:"model_dir"`
	// LexiconFile is the lexicon filename inside ModelDir.
	LexiconFile string `toml:"lexicon_file"`
	// Binary is the external inference runner invoked by the local engine.
	Binary string `toml:"binary"`
	// ServiceURL points at a standalone inference server; when set, the
	// HTTP engine is used instead of the local binary.
	ServiceURL      string  `toml:"service_url"`
	Voice           string  `toml:"voice"`
	Alpha           float64 `toml:"alpha"`
	Temperature     float64 `toml:"temperature"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	Workers         int     `toml:"workers"`
	CacheTTLSeconds int     `toml:"cache_ttl_seconds"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
}

// Config is the root configuration structure.
type Config struct {
	NATS   NATSConfig   `toml:"nats"`
	Engine EngineConfig `toml:"engine"`
	Paths  PathsConfig  `toml:"paths"`
}

// Load loads the service configuration through the central configurator.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadFile reads a configuration file directly. The CLI uses this so a
// local project.toml works without the service configurator environment.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Engine.Alpha == 0 {
		c.Engine.Alpha = DefaultAlpha
	}

	if c.Engine.TimeoutSeconds == 0 {
		c.Engine.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if c.Engine.Workers == 0 {
		c.Engine.Workers = DefaultWorkers
	}

	if c.Engine.CacheTTLSeconds == 0 {
		c.Engine.CacheTTLSeconds = DefaultCacheTTLSeconds
	}

	if c.Engine.Binary == "" {
		c.Engine.Binary = DefaultBinary
	}

	if c.Engine.LexiconFile == "" {
		c.Engine.LexiconFile = DefaultLexiconFile
	}
}
