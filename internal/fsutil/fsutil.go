// Package fsutil provides file and path helpers for glados-tts: model
// file resolution, directory creation, and human-readable formatting for
// log output.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Environment variable names used for path resolution.
const (
	envCacheDir = "GLADOS_TTS_CACHE_DIR"
)

// Common application directory and path constants.
const (
	appName               = "glados-tts"
	modelsDirName         = "models"
	tmpDir                = "/tmp"
	dotCache              = ".cache"
	defaultDirPermissions = 0o750
)

// Data size constants.
const (
	kilobyte = int64(1024)
	megabyte = kilobyte * 1024
	gigabyte = megabyte * 1024
)

// ErrModelFileNotFound is returned when a model artifact cannot be located.
var ErrModelFileNotFound = errors.New("model file not found")

// CacheDir returns the application cache directory, respecting the
// environment override and falling back to the user cache location.
func CacheDir() string {
	if cacheDir := os.Getenv(envCacheDir); cacheDir != "" {
		return cacheDir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(tmpDir, appName)
	}

	return filepath.Join(homeDir, dotCache, appName)
}

// EnsureDir ensures a directory exists at the given path, creating it
// and any parents if needed.
func EnsureDir(path string) error {
	_, statErr := os.Stat(path)
	if os.IsNotExist(statErr) {
		mkdirErr := os.MkdirAll(path, defaultDirPermissions)
		if mkdirErr != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, mkdirErr)
		}
	}

	return nil
}

// ResolveModelFile locates a model artifact by name. The search order is
// the name itself (absolute or cwd-relative), the configured model
// directory, a local "models" directory, and the cache.
func ResolveModelFile(name, modelDir string) (string, error) {
	candidates := []string{
		name,
		filepath.Join(modelDir, name),
		filepath.Join(modelsDirName, name),
		filepath.Join(CacheDir(), modelsDirName, name),
	}

	for _, candidate := range candidates {
		resolved, found, err := statCandidate(candidate)
		if err != nil {
			return "", err
		}

		if found {
			return resolved, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrModelFileNotFound, name)
}

// statCandidate checks a single candidate path. A missing file is not an
// error; anything else (permissions, bad cwd) is.
func statCandidate(path string) (resolved string, found bool, err error) {
	_, statErr := os.Stat(path)

	switch {
	case statErr == nil:
		absPath, absErr := filepath.Abs(path)
		if absErr != nil {
			return "", false, fmt.Errorf(
				"could not resolve absolute path for %q: %w", path, absErr,
			)
		}

		return absPath, true, nil
	case os.IsNotExist(statErr):
		return "", false, nil
	default:
		return "", false, fmt.Errorf("error checking model path %q: %w", path, statErr)
	}
}

// FormatDuration renders a duration as "1h 15m", "5m 30.5s", or "45.2s".
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()

	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}

	if seconds < 3600 {
		minutes := int(seconds / 60)

		return fmt.Sprintf("%dm %.1fs", minutes, seconds-float64(minutes*60))
	}

	hours := int(seconds / 3600)
	remaining := seconds - float64(hours*3600)

	return fmt.Sprintf("%dh %dm", hours, int(remaining/60))
}

// FormatFileSize renders a byte count as "1.2 GB", "500.5 MB", etc.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= gigabyte:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gigabyte))
	case bytes >= megabyte:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(megabyte))
	case bytes >= kilobyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kilobyte))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// IsWAVPath reports whether a filename carries the .wav extension.
func IsWAVPath(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".wav")
}
