package testsupport

import (
	"testing"

	"sfollow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config tuned for fast tests: millisecond ticks, no
// finish grace, no colors.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Follow.TickIntervalMs = 1
	cfg.Follow.StateQueryEvery = 1
	cfg.Follow.FinishGraceMs = 0
	cfg.Follow.Color = config.ColorNever
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithCluster sets the cluster qualifier on the test config.
func WithCluster(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Slurm.Cluster = name
	}
}
