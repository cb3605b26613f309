// Package manager composes the contextflow components into the single
// entry point callers use: a bounded conversation-context manager that
// keeps history within budget and recovers degraded conversations.
package manager

import (
	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/digest"
	"github.com/BaSui01/contextflow/filter"
	"github.com/BaSui01/contextflow/health"
	"github.com/BaSui01/contextflow/internal/metrics"
	"github.com/BaSui01/contextflow/tokenizer"
	"github.com/BaSui01/contextflow/types"
	"github.com/BaSui01/contextflow/window"
)

// Manager is the orchestrator. Each call is an independent, stateless
// transform over the supplied history: nothing is cached between calls
// and the input slice is never mutated. Callers that run multiple
// conversations concurrently must serialize calls per conversation (see
// the session package).
type Manager struct {
	cfg        *config.Config
	tok        tokenizer.Tokenizer
	cleaner    *filter.Cleaner
	summarizer *digest.Summarizer
	detector   *health.Detector
	window     *window.Manager
	collector  *metrics.Collector
	logger     *zap.Logger
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	tok       tokenizer.Tokenizer
	extractor digest.Extractor
	collector *metrics.Collector
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTokenizer overrides the config-selected tokenizer.
func WithTokenizer(tok tokenizer.Tokenizer) Option {
	return func(o *options) { o.tok = tok }
}

// WithExtractor swaps the entity extractor used for digests.
func WithExtractor(extractor digest.Extractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// WithCollector attaches a metrics collector.
func WithCollector(collector *metrics.Collector) Option {
	return func(o *options) { o.collector = collector }
}

// New creates a Manager. cfg may be nil (defaults apply).
func New(cfg *config.Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.tok == nil {
		o.tok = tokenizerFromConfig(cfg.Tokenizer)
	}

	cleaner := filter.NewCleaner(cfg.Limits, cfg.Quality, o.tok, o.logger)
	summarizer := digest.NewSummarizer(o.extractor)

	return &Manager{
		cfg:        cfg,
		tok:        o.tok,
		cleaner:    cleaner,
		summarizer: summarizer,
		detector:   health.NewDetector(cfg.Limits, cfg.Health, o.tok, o.logger),
		window:     window.NewManager(cfg.Limits, cleaner, summarizer, o.tok, o.logger),
		collector:  o.collector,
		logger:     o.logger.With(zap.String("component", "context_manager")),
	}
}

// tokenizerFromConfig resolves the configured token counting backend.
func tokenizerFromConfig(cfg config.TokenizerConfig) tokenizer.Tokenizer {
	if cfg.Mode == "tiktoken" {
		return tokenizer.NewTiktokenTokenizer(cfg.Model)
	}
	return tokenizer.NewEstimator()
}

// Manage runs one context-management pass: assess health, then either
// hard-reset the conversation or window it and run a final cleaning pass.
func (m *Manager) Manage(messages []types.Message, incoming string) types.ManagementResult {
	report := m.detector.Assess(messages)
	inputTokens := m.tok.CountConversation(messages)

	if report.Suggestion == types.SuggestReset {
		managed := m.reset(messages)
		m.collector.ObserveManage(metrics.OutcomeReset, inputTokens)
		m.collector.ObserveDropped(len(messages) - len(managed))

		m.logger.Info("conversation reset",
			zap.Int("original", len(messages)),
			zap.Int("kept", len(managed)),
			zap.Strings("reasons", report.Reasons))

		return types.ManagementResult{
			ManagedMessages: managed,
			WasReset:        true,
			Warnings:        report.Reasons,
		}
	}

	windowed := m.window.Apply(messages, incoming)
	wasSummarized := containsSummary(windowed)
	final := m.cleaner.Clean(windowed)

	outcome := metrics.OutcomeContinue
	if wasSummarized {
		outcome = metrics.OutcomeSummarized
	}
	m.collector.ObserveManage(outcome, inputTokens)
	m.collector.ObserveDropped(len(messages) - len(final))

	m.logger.Debug("conversation managed",
		zap.Int("original", len(messages)),
		zap.Int("managed", len(final)),
		zap.Bool("summarized", wasSummarized))

	return types.ManagementResult{
		ManagedMessages: final,
		WasSummarized:   wasSummarized,
		Warnings:        report.Reasons,
	}
}

// Assess exposes the health detector for callers that only want the
// report.
func (m *Manager) Assess(messages []types.Message) types.HealthReport {
	return m.detector.Assess(messages)
}

func containsSummary(messages []types.Message) bool {
	for _, msg := range messages {
		if msg.IsSummary {
			return true
		}
	}
	return false
}
