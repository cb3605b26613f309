// Package config provides the contextflow configuration surface.
//
// Configuration is loaded once at startup and treated as immutable for the
// process lifetime: defaults -> YAML file. Components receive thresholds
// through an explicit Config value, never through ambient globals.
package config

import "fmt"

// Config is the complete contextflow configuration.
type Config struct {
	// Limits holds the size and token budgets shared across components.
	Limits LimitsConfig `yaml:"limits"`

	// Quality configures the conversation cleaner.
	Quality QualityConfig `yaml:"quality"`

	// Health configures the conversation health detector.
	Health HealthConfig `yaml:"health"`

	// Reset configures the hard-compaction path.
	Reset ResetConfig `yaml:"reset"`

	// Tokenizer selects the token counting backend.
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
}

// LimitsConfig holds the shared size and token budgets.
type LimitsConfig struct {
	// MaxRecentMessages is the verbatim tail kept when windowing folds
	// older history into a digest.
	MaxRecentMessages int `yaml:"max_recent_messages"`
	// SummarizeAfter is the message count above which windowing kicks in.
	SummarizeAfter int `yaml:"summarize_after"`
	// MaxTotalMessages is the count above which a conversation is messy.
	MaxTotalMessages int `yaml:"max_total_messages"`
	// MaxMessageTokens is the per-message estimate above which content is
	// truncated.
	MaxMessageTokens int `yaml:"max_message_tokens"`
	// MaxContextTokens is the whole-conversation token budget.
	MaxContextTokens int `yaml:"max_context_tokens"`
	// MinMessageQuality is reserved for a per-message quality score.
	// No algorithm consults it yet; it is kept so existing configuration
	// files remain valid.
	MinMessageQuality float64 `yaml:"min_message_quality"`
}

// QualityConfig configures the conversation cleaner.
//
// The degenerate-content lists track whatever phrasing the upstream LLM
// client produces, which is why they are configuration rather than
// constants.
type QualityConfig struct {
	// MinContentLength is the trimmed length below which a non-system
	// message is dropped.
	MinContentLength int `yaml:"min_content_length"`
	// FingerprintLength is the content prefix length used for coarse
	// de-duplication.
	FingerprintLength int `yaml:"fingerprint_length"`
	// TruncationMarker is appended to truncated content.
	TruncationMarker string `yaml:"truncation_marker"`
	// DoubledErrorMarkers drop a message when any marker occurs at least
	// twice in its content.
	DoubledErrorMarkers []string `yaml:"doubled_error_markers"`
	// ApologyPhrases drop a message when any phrase occurs at least twice
	// in its content.
	ApologyPhrases []string `yaml:"apology_phrases"`
}

// HealthConfig configures the health detector.
type HealthConfig struct {
	// MaxErrorMessages is the error-bearing message count above which the
	// conversation is messy.
	MaxErrorMessages int `yaml:"max_error_messages"`
	// ErrorIndicators mark a message as error-bearing when its content
	// contains any of them (case-insensitive).
	ErrorIndicators []string `yaml:"error_indicators"`
	// RepetitionWindow is how many trailing messages the repetition check
	// inspects.
	RepetitionWindow int `yaml:"repetition_window"`
	// RepetitionMinCount is the trailing-message count the repetition
	// check requires before it applies.
	RepetitionMinCount int `yaml:"repetition_min_count"`
	// RepetitionPrefixLength is the content prefix length used to compare
	// trailing messages for repetition.
	RepetitionPrefixLength int `yaml:"repetition_prefix_length"`
	// RepetitionThreshold is the distinct-prefix ratio below which the
	// tail counts as repetitive.
	RepetitionThreshold float64 `yaml:"repetition_threshold"`
	// ResetFactor scales the message and token limits into the hard
	// thresholds that switch the suggestion from summarize to reset.
	ResetFactor float64 `yaml:"reset_factor"`
}

// ResetConfig configures the hard-compaction path.
type ResetConfig struct {
	// EssentialMarkers identify system messages that survive a reset:
	// fetched-data context, permission context, and conversation-state
	// context blocks carry one of these substrings.
	EssentialMarkers []string `yaml:"essential_markers"`
	// DigestLimit caps the digest embedded in the reset marker, in
	// characters.
	DigestLimit int `yaml:"digest_limit"`
}

// TokenizerConfig selects the token counting backend.
type TokenizerConfig struct {
	// Mode is "heuristic" (chars/4 estimation) or "tiktoken" (exact BPE
	// counts for OpenAI-family models).
	Mode string `yaml:"mode"`
	// Model is the model name used for tiktoken encoding lookup.
	Model string `yaml:"model"`
}

// Validate checks the configuration for values no component could run with.
func (c *Config) Validate() error {
	if c.Limits.MaxRecentMessages <= 0 {
		return fmt.Errorf("limits.max_recent_messages must be positive, got %d", c.Limits.MaxRecentMessages)
	}
	if c.Limits.SummarizeAfter <= 0 {
		return fmt.Errorf("limits.summarize_after must be positive, got %d", c.Limits.SummarizeAfter)
	}
	if c.Limits.MaxTotalMessages <= 0 {
		return fmt.Errorf("limits.max_total_messages must be positive, got %d", c.Limits.MaxTotalMessages)
	}
	if c.Limits.MaxMessageTokens <= 0 {
		return fmt.Errorf("limits.max_message_tokens must be positive, got %d", c.Limits.MaxMessageTokens)
	}
	if c.Limits.MaxContextTokens <= 0 {
		return fmt.Errorf("limits.max_context_tokens must be positive, got %d", c.Limits.MaxContextTokens)
	}
	if c.Health.ResetFactor < 1.0 {
		return fmt.Errorf("health.reset_factor must be at least 1.0, got %g", c.Health.ResetFactor)
	}
	if c.Health.RepetitionThreshold <= 0 || c.Health.RepetitionThreshold > 1 {
		return fmt.Errorf("health.repetition_threshold must be in (0, 1], got %g", c.Health.RepetitionThreshold)
	}
	switch c.Tokenizer.Mode {
	case "heuristic", "tiktoken":
	default:
		return fmt.Errorf("tokenizer.mode must be %q or %q, got %q", "heuristic", "tiktoken", c.Tokenizer.Mode)
	}
	return nil
}
