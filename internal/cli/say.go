package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/book-expert/glados-tts/internal/audio"
	"github.com/book-expert/glados-tts/internal/fsutil"
)

// ErrOutputNotWAV indicates the output path has the wrong extension.
var ErrOutputNotWAV = errors.New("output path must end in .wav")

var sayOutputPath string

var sayCmd = &cobra.Command{
	Use:   "say [text...]",
	Short: "Synthesize text to a WAV file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSay,
}

func init() {
	sayCmd.Flags().StringVarP(
		&sayOutputPath, "output", "o", "output.wav",
		"Path of the WAV file to write",
	)
}

func runSay(cmd *cobra.Command, args []string) error {
	if !fsutil.IsWAVPath(sayOutputPath) {
		return fmt.Errorf("%w: %q", ErrOutputNotWAV, sayOutputPath)
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

	text := strings.Join(args, " ")

	err = pipeline.SpeakToFile(cmd.Context(), text, sayOutputPath)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	reportWAV(sayOutputPath)

	return nil
}

// reportWAV prints the size and duration of a written WAV file. Failures
// are silent; the file is already on disk.
func reportWAV(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Wrote %s\n", path)

		return
	}

	buffer, err := audio.Decode(data)
	if err != nil {
		fmt.Printf("Wrote %s (%s)\n", path, fsutil.FormatFileSize(int64(len(data))))

		return
	}

	duration := audio.Duration(len(buffer.Data), audio.Format{
		SampleRate: buffer.Format.SampleRate,
		Channels:   buffer.Format.NumChannels,
		BitDepth:   audio.ModelBitDepth,
	})

	fmt.Printf(
		"Wrote %s (%s, %s)\n",
		path,
		fsutil.FormatFileSize(int64(len(data))),
		fsutil.FormatDuration(duration),
	)
}
