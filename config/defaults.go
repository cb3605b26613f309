package config

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits:    DefaultLimitsConfig(),
		Quality:   DefaultQualityConfig(),
		Health:    DefaultHealthConfig(),
		Reset:     DefaultResetConfig(),
		Tokenizer: DefaultTokenizerConfig(),
	}
}

// DefaultLimitsConfig returns the default size and token budgets.
func DefaultLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxRecentMessages: 20,
		SummarizeAfter:    30,
		MaxTotalMessages:  50,
		MaxMessageTokens:  500,
		MaxContextTokens:  32000,
		MinMessageQuality: 0.3,
	}
}

// DefaultQualityConfig returns the default cleaner configuration.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		MinContentLength:    5,
		FingerprintLength:   100,
		TruncationMarker:    "...[truncated]",
		DoubledErrorMarkers: []string{"Error:"},
		ApologyPhrases:      []string{"I apologize", "I'm sorry"},
	}
}

// DefaultHealthConfig returns the default health detector configuration.
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		MaxErrorMessages:       5,
		ErrorIndicators:        []string{"error", "i apologize", "i'm sorry"},
		RepetitionWindow:       10,
		RepetitionMinCount:     5,
		RepetitionPrefixLength: 50,
		RepetitionThreshold:    0.5,
		ResetFactor:            1.5,
	}
}

// DefaultResetConfig returns the default hard-compaction configuration.
func DefaultResetConfig() ResetConfig {
	return ResetConfig{
		EssentialMarkers: []string{
			"[fetched data]",
			"[permissions]",
			"[conversation state]",
		},
		DigestLimit: 200,
	}
}

// DefaultTokenizerConfig returns the default tokenizer selection.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		Mode:  "heuristic",
		Model: "gpt-4o",
	}
}
