package cli

import (
	"testing"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{
		"say":       true,
		"batch":     true,
		"phonemize": true,
		"health":    true,
	}

	cmds := rootCmd.Commands()
	if len(cmds) < len(want) {
		t.Errorf("root has %d subcommands, want at least %d", len(cmds), len(want))
	}

	got := make(map[string]bool)
	for _, c := range cmds {
		got[c.Name()] = true
	}

	for name := range want {
		if !got[name] {
			t.Errorf("root missing subcommand %q", name)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command missing --config flag")
	}

	if rootCmd.PersistentFlags().Lookup("version") == nil {
		t.Error("root command missing --version flag")
	}
}

func TestSayCmd_Flags(t *testing.T) {
	output := sayCmd.Flags().Lookup("output")
	if output == nil {
		t.Fatal("say command missing --output flag")
	}

	if output.DefValue != "output.wav" {
		t.Errorf("say --output default = %q, want %q", output.DefValue, "output.wav")
	}
}

func TestBatchCmd_Flags(t *testing.T) {
	if batchCmd.Flags().Lookup("output-dir") == nil {
		t.Error("batch command missing --output-dir flag")
	}

	if batchCmd.Flags().Lookup("workers") == nil {
		t.Error("batch command missing --workers flag")
	}
}
