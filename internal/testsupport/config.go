package testsupport

import (
	"path/filepath"
	"testing"

	"splice/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithFFprobe overrides the ffprobe binary on the test config.
func WithFFprobe(binary string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tools.FFprobe = binary
	}
}

// WithTiming replaces the estimate tuning on the test config.
func WithTiming(rules config.Timing) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Timing = rules
	}
}
