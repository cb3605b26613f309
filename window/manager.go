// Package window decides whether conversation history passes through
// unchanged or has its older turns folded into a single digest message
// plus a verbatim tail of recent turns.
package window

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/digest"
	"github.com/BaSui01/contextflow/filter"
	"github.com/BaSui01/contextflow/tokenizer"
	"github.com/BaSui01/contextflow/types"
)

// Status reports the window state for a conversation snapshot.
type Status struct {
	TotalTokens  int  `json:"total_tokens"`
	MessageCount int  `json:"message_count"`
	WouldFold    bool `json:"would_fold"`
}

// Manager implements sliding-window context management: clean, then
// either pass through or keep the recent tail and fold everything older
// into exactly one summary message. Original system messages always
// survive in order.
type Manager struct {
	limits     config.LimitsConfig
	cleaner    *filter.Cleaner
	summarizer *digest.Summarizer
	tok        tokenizer.Tokenizer
	logger     *zap.Logger
}

// NewManager creates a window manager. tok may be nil (defaults to the
// heuristic estimator); logger may be nil.
func NewManager(limits config.LimitsConfig, cleaner *filter.Cleaner, summarizer *digest.Summarizer, tok tokenizer.Tokenizer, logger *zap.Logger) *Manager {
	if tok == nil {
		tok = tokenizer.NewEstimator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		limits:     limits,
		cleaner:    cleaner,
		summarizer: summarizer,
		tok:        tok,
		logger:     logger,
	}
}

// Apply cleans the history and folds older turns when the conversation
// exceeds the message or token thresholds. At most one synthetic summary
// message is added, placed immediately before the retained tail.
func (m *Manager) Apply(messages []types.Message, incoming string) []types.Message {
	cleaned := m.cleaner.Clean(messages)

	totalTokens := m.tok.CountConversation(cleaned) + m.tok.CountTokens(incoming)
	if len(cleaned) <= m.limits.SummarizeAfter && totalTokens <= m.limits.MaxContextTokens {
		m.logger.Debug("conversation within window",
			zap.Int("messages", len(cleaned)),
			zap.Int("tokens", totalTokens))
		return cleaned
	}

	system, rest := splitSystemAndRest(cleaned)

	recent := rest
	var old []types.Message
	if len(rest) > m.limits.MaxRecentMessages {
		old = rest[:len(rest)-m.limits.MaxRecentMessages]
		recent = rest[len(rest)-m.limits.MaxRecentMessages:]
	}

	result := make([]types.Message, 0, len(system)+1+len(recent))
	result = append(result, system...)
	if len(old) > 0 {
		summary := types.NewSummaryMessage(fmt.Sprintf(
			"[Summary of %d earlier messages] %s",
			len(old), m.summarizer.Summarize(old)))
		result = append(result, summary)

		m.logger.Info("folded older messages into summary",
			zap.Int("folded", len(old)),
			zap.Int("recent", len(recent)),
			zap.Int("system", len(system)))
	}
	result = append(result, recent...)
	return result
}

// GetStatus reports the window state without modifying anything.
func (m *Manager) GetStatus(messages []types.Message, incoming string) Status {
	totalTokens := m.tok.CountConversation(messages) + m.tok.CountTokens(incoming)
	return Status{
		TotalTokens:  totalTokens,
		MessageCount: len(messages),
		WouldFold:    len(messages) > m.limits.SummarizeAfter || totalTokens > m.limits.MaxContextTokens,
	}
}

// splitSystemAndRest separates system messages from the rest, both in
// original relative order.
func splitSystemAndRest(msgs []types.Message) (system, rest []types.Message) {
	for _, m := range msgs {
		if m.Role == types.RoleSystem {
			system = append(system, m)
		} else {
			rest = append(rest, m)
		}
	}
	return
}
