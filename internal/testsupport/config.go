package testsupport

import (
	"path/filepath"
	"testing"

	"chapsplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.DoneDir = filepath.Join(base, "done")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")
	cfgVal.ASR.ModelDir = filepath.Join(base, "models")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithoutTitles disables spoken title extraction on the test config.
func WithoutTitles() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chapters.ExtractTitles = false
	}
}

// WithoutCache disables the chapter sidecar cache on the test config.
func WithoutCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chapters.CacheEnabled = false
	}
}

// WithPreroll overrides the pre-roll trim on the test config.
func WithPreroll(ms int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Chapters.PrerollMS = ms
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
