package tokenizer

import "github.com/BaSui01/contextflow/types"

// charsPerToken is the rough English-text ratio the estimator divides by.
const charsPerToken = 4

// Estimator approximates token counts as ceil(len(text)/4), the usual
// English-text rule of thumb. It is deterministic and byte-based, which
// keeps downstream budgeting decisions reproducible across processes.
type Estimator struct{}

// NewEstimator creates the heuristic estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) CountTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

func (e *Estimator) CountConversation(messages []types.Message) int {
	total := 0
	for _, msg := range messages {
		total += e.CountTokens(msg.Content)
	}
	return total
}

func (e *Estimator) Name() string {
	return "estimator"
}
