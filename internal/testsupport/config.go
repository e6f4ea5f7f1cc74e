package testsupport

import (
	"path/filepath"
	"testing"

	"doccleaner/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Quarantine and state live outside any input folder the test creates.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.QuarantineDir = filepath.Join(base, "duplicated")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithHistoryDisabled turns off the SQLite run ledger.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithDateSource selects the reference date used for naming.
func WithDateSource(source string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naming.DateSource = source
	}
}

// WithTopics replaces the configured topic list.
func WithTopics(topics ...config.Topic) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Topics = topics
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
