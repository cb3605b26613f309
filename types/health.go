package types

// Suggestion is the recommended handling for a conversation after a health
// assessment.
type Suggestion string

const (
	// SuggestContinue means the conversation is healthy; pass it through.
	SuggestContinue Suggestion = "continue"
	// SuggestSummarize means the conversation is degraded; fold older turns
	// into a digest.
	SuggestSummarize Suggestion = "summarize"
	// SuggestReset means the conversation is beyond windowing; collapse it
	// to essential context plus a reset marker.
	SuggestReset Suggestion = "reset"
)

// HealthReport classifies the state of a conversation snapshot.
// It is a pure function of the snapshot and the configured thresholds;
// nothing persists it between calls.
type HealthReport struct {
	// IsMessy is true when at least one health check triggered.
	IsMessy bool `json:"is_messy"`
	// Reasons lists every triggered check, in check order.
	Reasons []string `json:"reasons,omitempty"`
	// Suggestion is the recommended handling given the triggered checks.
	Suggestion Suggestion `json:"suggestion"`
}
