// Package cli implements the glados-say command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set by main from ldflags or "dev". Used for --version / -v.
var Version string

var (
	configPath  string
	showVersion bool
)

var rootCmd = &cobra.Command{
	Use:   "glados-say",
	Short: "Speak text in the GLaDOS voice",
	Long: "glados-say turns text into GLaDOS speech. It normalizes the text, " +
		"looks up pronunciations in an IPA lexicon, sends the phonemes to the " +
		"inference engine, and writes 22050 Hz mono WAV files.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if showVersion {
			if Version == "" {
				Version = "dev"
			}

			fmt.Println(Version)
			os.Exit(0)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath, "config", "c", "",
		"Path to the project.toml configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&showVersion, "version", "v", false,
		"Print version and exit",
	)

	rootCmd.AddCommand(sayCmd, batchCmd, phonemizeCmd, healthCmd)
}

// Execute runs the root command. Returns error for exit code handling.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
