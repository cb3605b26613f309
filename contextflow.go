// Package contextflow provides a top-level convenience entry point for
// creating a conversation-context manager with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/contextflow"
//
//	m, err := contextflow.New()
//	m, err := contextflow.New(contextflow.WithConfigFile("contextflow.yaml"))
//
//	result := m.Manage(history, incomingText)
//
// This is a thin wrapper around [manager.New]; use the manager package
// directly when you need to inject custom components.
package contextflow

import (
	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/digest"
	"github.com/BaSui01/contextflow/manager"
	"github.com/BaSui01/contextflow/tokenizer"
)

// Option configures the manager created by [New].
type Option func(*builder)

type builder struct {
	cfg        *config.Config
	configPath string
	mgrOpts    []manager.Option
}

// WithConfig sets a pre-built configuration.
func WithConfig(cfg *config.Config) Option {
	return func(b *builder) { b.cfg = cfg }
}

// WithConfigFile loads configuration from a YAML file over the defaults.
func WithConfigFile(path string) Option {
	return func(b *builder) { b.configPath = path }
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *builder) { b.mgrOpts = append(b.mgrOpts, manager.WithLogger(logger)) }
}

// WithTokenizer overrides the config-selected tokenizer.
func WithTokenizer(tok tokenizer.Tokenizer) Option {
	return func(b *builder) { b.mgrOpts = append(b.mgrOpts, manager.WithTokenizer(tok)) }
}

// WithExtractor swaps the entity extractor used for digests.
func WithExtractor(extractor digest.Extractor) Option {
	return func(b *builder) { b.mgrOpts = append(b.mgrOpts, manager.WithExtractor(extractor)) }
}

// New creates a [manager.Manager] with minimal configuration. With no
// options it uses the default configuration and the heuristic tokenizer.
func New(opts ...Option) (*manager.Manager, error) {
	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	cfg := b.cfg
	if b.configPath != "" {
		loaded, err := config.NewLoader().WithConfigPath(b.configPath).Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	return manager.New(cfg, b.mgrOpts...), nil
}
