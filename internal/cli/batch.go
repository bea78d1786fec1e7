package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrNoChunks indicates the batch file contained nothing to synthesize.
var ErrNoChunks = errors.New("batch file contains no text chunks")

var (
	batchOutputDir string
	batchWorkers   int
)

var batchCmd = &cobra.Command{
	Use:   "batch <chunks.json>",
	Short: "Synthesize a JSON array of text chunks to numbered WAV files",
	Long: "batch reads a JSON array of strings and synthesizes each entry " +
		"to chunk_0001.wav, chunk_0002.wav, and so on in the output directory. " +
		"Chunks are processed concurrently.",
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(
		&batchOutputDir, "output-dir", "d", ".",
		"Directory to write the WAV files into",
	)
	batchCmd.Flags().IntVarP(
		&batchWorkers, "workers", "w", 0,
		"Concurrent synthesis workers (0 = use configured default)",
	)
}

func runBatch(cmd *cobra.Command, args []string) error {
	chunks, err := readChunks(args[0])
	if err != nil {
		return err
	}

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

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Engine.Workers
	}

	err = pipeline.SpeakBatch(cmd.Context(), chunks, batchOutputDir, workers)
	if err != nil {
		return fmt.Errorf("batch synthesis failed: %w", err)
	}

	fmt.Printf("Wrote %d chunks to %s\n", len(chunks), batchOutputDir)

	return nil
}

func readChunks(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file %q: %w", path, err)
	}

	var chunks []string

	err = json.Unmarshal(data, &chunks)
	if err != nil {
		return nil, fmt.Errorf("failed to parse batch file %q: %w", path, err)
	}

	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	return chunks, nil
}
