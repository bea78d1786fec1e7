package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var phonemizeCmd = &cobra.Command{
	Use:   "phonemize [text...]",
	Short: "Print the phoneme rendering the engine would receive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPhonemize,
}

func runPhonemize(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newCommandLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	phonemes, err := pipeline.Prepare(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to phonemize: %w", err)
	}

	fmt.Println(phonemes)

	return nil
}
