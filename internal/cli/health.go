package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/book-expert/glados-tts/internal/engine"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the inference server is reachable and healthy",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Engine.ServiceURL == "" {
		return ErrServiceURLRequired
	}

	timeout := time.Duration(cfg.Engine.TimeoutSeconds) * time.Second
	synth := engine.NewHTTPSynthesizer(
		cfg.Engine.ServiceURL, timeout, synthesisConfig(cfg),
	)

	err = synth.HealthCheck(cmd.Context())
	if err != nil {
		return fmt.Errorf("inference server is unhealthy: %w", err)
	}

	fmt.Printf("%s is healthy\n", cfg.Engine.ServiceURL)

	return nil
}
