package types

// ManagementResult is the output of a single context-management pass.
// It is ephemeral: recomputed on every call, never stored by the library.
type ManagementResult struct {
	// ManagedMessages is the history to feed to the LLM, in chronological
	// order.
	ManagedMessages []Message `json:"managed_messages"`
	// WasReset is true when the conversation was collapsed to essential
	// context plus a reset marker.
	WasReset bool `json:"was_reset"`
	// WasSummarized is true when older turns were folded into a digest
	// message.
	WasSummarized bool `json:"was_summarized"`
	// Warnings carries the health reasons observed on the way in; it may be
	// non-empty even when neither reset nor summarization happened.
	Warnings []string `json:"warnings,omitempty"`
}
