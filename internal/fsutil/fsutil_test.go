package fsutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/book-expert/glados-tts/internal/fsutil"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "c")

	err := fsutil.EnsureDir(path)
	if err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	info, statErr := os.Stat(path)
	if statErr != nil || !info.IsDir() {
		t.Errorf("Expected directory at %s", path)
	}

	// Second call on an existing directory is a no-op.
	err = fsutil.EnsureDir(path)
	if err != nil {
		t.Errorf("EnsureDir on existing directory failed: %v", err)
	}
}

func TestResolveModelFile_FindsInModelDir(t *testing.T) {
	t.Parallel()

	modelDir := t.TempDir()
	name := "glados.pt"

	err := os.WriteFile(filepath.Join(modelDir, name), []byte("weights"), 0o600)
	if err != nil {
		t.Fatalf("Failed to write model file: %v", err)
	}

	resolved, err := fsutil.ResolveModelFile(name, modelDir)
	if err != nil {
		t.Fatalf("ResolveModelFile failed: %v", err)
	}

	if !filepath.IsAbs(resolved) {
		t.Errorf("Expected absolute path, got %q", resolved)
	}
}

func TestResolveModelFile_AbsolutePath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocoder.pt")

	err := os.WriteFile(path, []byte("weights"), 0o600)
	if err != nil {
		t.Fatalf("Failed to write model file: %v", err)
	}

	resolved, err := fsutil.ResolveModelFile(path, "")
	if err != nil {
		t.Fatalf("ResolveModelFile failed: %v", err)
	}

	if resolved != path {
		t.Errorf("Expected %q, got %q", path, resolved)
	}
}

func TestResolveModelFile_NotFound(t *testing.T) {
	t.Parallel()

	_, err := fsutil.ResolveModelFile("missing.pt", t.TempDir())
	if !errors.Is(err, fsutil.ErrModelFileNotFound) {
		t.Errorf("Expected ErrModelFileNotFound, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "seconds", input: 45200 * time.Millisecond, expected: "45.2s"},
		{name: "minutes", input: 330500 * time.Millisecond, expected: "5m 30.5s"},
		{name: "hours", input: time.Hour + 15*time.Minute, expected: "1h 15m"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := fsutil.FormatDuration(testCase.input)
			if result != testCase.expected {
				t.Errorf("Expected %q, got %q", testCase.expected, result)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "bytes", input: 512, expected: "512 B"},
		{name: "kilobytes", input: 2048, expected: "2.0 KB"},
		{name: "megabytes", input: 5 * 1024 * 1024, expected: "5.0 MB"},
		{name: "gigabytes", input: 3 * 1024 * 1024 * 1024, expected: "3.0 GB"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := fsutil.FormatFileSize(testCase.input)
			if result != testCase.expected {
				t.Errorf("Expected %q, got %q", testCase.expected, result)
			}
		})
	}
}

func TestIsWAVPath(t *testing.T) {
	t.Parallel()

	if !fsutil.IsWAVPath("output.wav") || !fsutil.IsWAVPath("OUTPUT.WAV") {
		t.Error("Expected .wav paths to be recognized")
	}

	if fsutil.IsWAVPath("output.mp3") || fsutil.IsWAVPath("output") {
		t.Error("Expected non-wav paths to be rejected")
	}
}
