// Package health classifies conversation snapshots against size, token,
// error-density, and repetition thresholds.
package health

import (
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/tokenizer"
	"github.com/BaSui01/contextflow/types"
)

// Reasons reported by the detector. Every triggered check appends its
// reason; the report is the union, not the first match.
const (
	ReasonTooManyMessages     = "too many messages"
	ReasonTokenBudgetExceeded = "token budget exceeded"
	ReasonTooManyErrors       = "too many error messages"
	ReasonRepetitiveMessages  = "repetitive messages detected"
)

// Detector assesses conversation health. Assessment is a pure function of
// the snapshot and the configured thresholds; it consults no other
// component's output.
type Detector struct {
	limits config.LimitsConfig
	cfg    config.HealthConfig
	tok    tokenizer.Tokenizer
	logger *zap.Logger
}

// NewDetector creates a detector. tok may be nil (defaults to the
// heuristic estimator); logger may be nil.
func NewDetector(limits config.LimitsConfig, cfg config.HealthConfig, tok tokenizer.Tokenizer, logger *zap.Logger) *Detector {
	if tok == nil {
		tok = tokenizer.NewEstimator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		limits: limits,
		cfg:    cfg,
		tok:    tok,
		logger: logger,
	}
}

// Assess runs every health check over the conversation and returns the
// union of triggered reasons plus a handling suggestion.
func (d *Detector) Assess(messages []types.Message) types.HealthReport {
	var reasons []string

	if len(messages) > d.limits.MaxTotalMessages {
		reasons = append(reasons, ReasonTooManyMessages)
	}

	totalTokens := d.tok.CountConversation(messages)
	if totalTokens > d.limits.MaxContextTokens {
		reasons = append(reasons, ReasonTokenBudgetExceeded)
	}

	if d.countErrorMessages(messages) > d.cfg.MaxErrorMessages {
		reasons = append(reasons, ReasonTooManyErrors)
	}

	if d.isRepetitive(messages) {
		reasons = append(reasons, ReasonRepetitiveMessages)
	}

	report := types.HealthReport{
		IsMessy:    len(reasons) > 0,
		Reasons:    reasons,
		Suggestion: d.suggest(len(messages), totalTokens, len(reasons) > 0),
	}

	if report.IsMessy {
		d.logger.Info("conversation health degraded",
			zap.Int("messages", len(messages)),
			zap.Int("tokens", totalTokens),
			zap.Strings("reasons", reasons),
			zap.String("suggestion", string(report.Suggestion)))
	}
	return report
}

// countErrorMessages counts messages whose content carries an error or
// apology-for-error indicator.
func (d *Detector) countErrorMessages(messages []types.Message) int {
	count := 0
	for _, msg := range messages {
		lower := strings.ToLower(msg.Content)
		for _, indicator := range d.cfg.ErrorIndicators {
			if indicator != "" && strings.Contains(lower, indicator) {
				count++
				break
			}
		}
	}
	return count
}

// isRepetitive checks the trailing window for low prefix diversity.
func (d *Detector) isRepetitive(messages []types.Message) bool {
	window := messages
	if len(window) > d.cfg.RepetitionWindow {
		window = window[len(window)-d.cfg.RepetitionWindow:]
	}
	if len(window) <= d.cfg.RepetitionMinCount {
		return false
	}

	distinct := make(map[string]struct{}, len(window))
	for _, msg := range window {
		prefix := msg.Content
		if len(prefix) > d.cfg.RepetitionPrefixLength {
			prefix = prefix[:d.cfg.RepetitionPrefixLength]
		}
		distinct[prefix] = struct{}{}
	}
	ratio := float64(len(distinct)) / float64(len(window))
	return ratio < d.cfg.RepetitionThreshold
}

// suggest picks the handling: reset past the hard thresholds, summarize
// when merely messy, continue otherwise.
func (d *Detector) suggest(messageCount, totalTokens int, messy bool) types.Suggestion {
	if !messy {
		return types.SuggestContinue
	}
	hardMessages := d.cfg.ResetFactor * float64(d.limits.MaxTotalMessages)
	hardTokens := d.cfg.ResetFactor * float64(d.limits.MaxContextTokens)
	if float64(messageCount) > hardMessages || float64(totalTokens) > hardTokens {
		return types.SuggestReset
	}
	return types.SuggestSummarize
}
