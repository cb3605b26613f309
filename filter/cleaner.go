// Package filter removes redundant and low-value messages from a
// conversation while preserving order and system messages.
package filter

import (
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/tokenizer"
	"github.com/BaSui01/contextflow/types"
)

// Cleaner drops short, duplicated, and degenerate messages and truncates
// oversized ones. Cleaning is a single left-to-right pass: every decision
// is made against previously kept messages only, which makes the pass
// idempotent.
type Cleaner struct {
	limits  config.LimitsConfig
	quality config.QualityConfig
	tok     tokenizer.Tokenizer
	logger  *zap.Logger
}

// NewCleaner creates a cleaner. tok may be nil (defaults to the heuristic
// estimator); logger may be nil.
func NewCleaner(limits config.LimitsConfig, quality config.QualityConfig, tok tokenizer.Tokenizer, logger *zap.Logger) *Cleaner {
	if tok == nil {
		tok = tokenizer.NewEstimator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{
		limits:  limits,
		quality: quality,
		tok:     tok,
		logger:  logger,
	}
}

// Clean returns an equal-or-shorter copy of messages with low-value
// entries removed and oversized entries truncated. System messages are
// inviolable: every one of them survives in original relative order.
func (c *Cleaner) Clean(messages []types.Message) []types.Message {
	kept := make([]types.Message, 0, len(messages))
	exact := make(map[string]struct{}, len(messages))
	fingerprints := make(map[string]struct{}, len(messages))
	dropped := 0

	for _, msg := range messages {
		if msg.Role == types.RoleSystem {
			kept = append(kept, msg)
			exact[exactKey(msg.Role, msg.Content)] = struct{}{}
			fingerprints[c.fingerprint(msg.Role, msg.Content)] = struct{}{}
			continue
		}

		if c.isLowQuality(msg, exact) {
			dropped++
			continue
		}

		fp := c.fingerprint(msg.Role, msg.Content)
		if _, seen := fingerprints[fp]; seen {
			c.logger.Debug("dropping near-duplicate message",
				zap.String("role", string(msg.Role)))
			dropped++
			continue
		}

		msg = c.truncate(msg)
		kept = append(kept, msg)
		exact[exactKey(msg.Role, msg.Content)] = struct{}{}
		fingerprints[c.fingerprint(msg.Role, msg.Content)] = struct{}{}
	}

	if dropped > 0 {
		c.logger.Debug("cleaned conversation",
			zap.Int("original", len(messages)),
			zap.Int("kept", len(kept)),
			zap.Int("dropped", dropped))
	}
	return kept
}

// isLowQuality reports whether a non-system message should be dropped:
// too short, an exact duplicate of a kept message with the same role, or
// degenerate content (doubled error marker, repeated apology).
func (c *Cleaner) isLowQuality(msg types.Message, exact map[string]struct{}) bool {
	trimmed := strings.TrimSpace(msg.Content)
	if len(trimmed) < c.quality.MinContentLength {
		return true
	}

	if _, dup := exact[exactKey(msg.Role, msg.Content)]; dup {
		return true
	}

	for _, marker := range c.quality.DoubledErrorMarkers {
		if marker != "" && strings.Count(msg.Content, marker) >= 2 {
			return true
		}
	}
	for _, phrase := range c.quality.ApologyPhrases {
		if phrase != "" && strings.Count(msg.Content, phrase) >= 2 {
			return true
		}
	}
	return false
}

// truncate clamps oversized content to the byte prefix covered by the
// per-message token budget plus the truncation marker. The prefix is
// fixed, so re-cleaning a truncated message reproduces it unchanged.
func (c *Cleaner) truncate(msg types.Message) types.Message {
	if c.tok.CountTokens(msg.Content) <= c.limits.MaxMessageTokens {
		return msg
	}
	limit := c.limits.MaxMessageTokens * 4
	if len(msg.Content) > limit {
		msg.Content = msg.Content[:limit] + c.quality.TruncationMarker
	}
	return msg
}

// fingerprint is the coarse de-duplication key: role plus content prefix.
func (c *Cleaner) fingerprint(role types.Role, content string) string {
	n := c.quality.FingerprintLength
	if n > 0 && len(content) > n {
		content = content[:n]
	}
	return string(role) + "\x00" + content
}

func exactKey(role types.Role, content string) string {
	return string(role) + "\x01" + content
}
