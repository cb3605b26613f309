package health

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/types"
)

func newTestDetector() *Detector {
	return NewDetector(config.DefaultLimitsConfig(), config.DefaultHealthConfig(), nil, nil)
}

// conversation builds n alternating user/assistant messages with unique
// content.
func conversation(n int) []types.Message {
	msgs := make([]types.Message, n)
	for i := range msgs {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		msgs[i] = types.Message{Role: role, Content: fmt.Sprintf("message number %d with some detail", i)}
	}
	return msgs
}

func TestDetector_HealthyConversation(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	report := d.Assess(conversation(10))
	assert.False(t, report.IsMessy)
	assert.Empty(t, report.Reasons)
	assert.Equal(t, types.SuggestContinue, report.Suggestion)
}

func TestDetector_EmptyConversation(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	report := d.Assess(nil)
	assert.False(t, report.IsMessy)
	assert.Equal(t, types.SuggestContinue, report.Suggestion)
}

func TestDetector_TooManyMessages(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	report := d.Assess(conversation(51))
	assert.True(t, report.IsMessy)
	assert.Contains(t, report.Reasons, ReasonTooManyMessages)
	assert.Equal(t, types.SuggestSummarize, report.Suggestion)
}

func TestDetector_TokenBudgetExceeded(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// One huge message: ~33k estimated tokens, over the 32k budget but
	// under the 1.5x reset threshold.
	msgs := []types.Message{{Role: types.RoleUser, Content: strings.Repeat("a", 132000)}}
	report := d.Assess(msgs)
	assert.True(t, report.IsMessy)
	assert.Contains(t, report.Reasons, ReasonTokenBudgetExceeded)
	assert.Equal(t, types.SuggestSummarize, report.Suggestion)
}

func TestDetector_TooManyErrorMessages(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	msgs := conversation(10)
	for i := range 6 {
		msgs[i].Content = fmt.Sprintf("Error: lookup %d failed unexpectedly", i)
	}

	report := d.Assess(msgs)
	assert.True(t, report.IsMessy)
	assert.Contains(t, report.Reasons, ReasonTooManyErrors)
}

func TestDetector_ApologyCountsAsError(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	msgs := conversation(12)
	for i := range 6 {
		msgs[i].Content = fmt.Sprintf("I apologize, attempt %d did not work", i)
	}

	report := d.Assess(msgs)
	assert.Contains(t, report.Reasons, ReasonTooManyErrors)
}

func TestDetector_RepetitiveTail(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	msgs := make([]types.Message, 10)
	for i := range msgs {
		msgs[i] = types.Message{Role: types.RoleAssistant, Content: "the same response repeated verbatim every time"}
	}

	report := d.Assess(msgs)
	assert.True(t, report.IsMessy)
	assert.Contains(t, report.Reasons, ReasonRepetitiveMessages)
}

func TestDetector_RepetitionNeedsEnoughMessages(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// Five identical messages: too few for the repetition check.
	msgs := make([]types.Message, 5)
	for i := range msgs {
		msgs[i] = types.Message{Role: types.RoleAssistant, Content: "the same response repeated verbatim every time"}
	}

	report := d.Assess(msgs)
	assert.NotContains(t, report.Reasons, ReasonRepetitiveMessages)
}

func TestDetector_RepetitionOnlyInspectsTail(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// Repetitive start, diverse tail: the window only sees the tail.
	msgs := make([]types.Message, 0, 20)
	for range 10 {
		msgs = append(msgs, types.Message{Role: types.RoleAssistant, Content: "identical early message content"})
	}
	msgs = append(msgs, conversation(10)...)

	report := d.Assess(msgs)
	assert.NotContains(t, report.Reasons, ReasonRepetitiveMessages)
}

func TestDetector_ReasonsAreUnion(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// 51 identical error messages: count, errors, and repetition all trip.
	msgs := make([]types.Message, 51)
	for i := range msgs {
		msgs[i] = types.Message{Role: types.RoleAssistant, Content: "Error: the same failure reported every time"}
	}

	report := d.Assess(msgs)
	require.True(t, report.IsMessy)
	assert.Contains(t, report.Reasons, ReasonTooManyMessages)
	assert.Contains(t, report.Reasons, ReasonTooManyErrors)
	assert.Contains(t, report.Reasons, ReasonRepetitiveMessages)
}

func TestDetector_SuggestsResetPastMessageThreshold(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// 76 > 1.5 * 50
	report := d.Assess(conversation(76))
	assert.Equal(t, types.SuggestReset, report.Suggestion)

	// 75 is not strictly greater than the hard threshold.
	report = d.Assess(conversation(75))
	assert.Equal(t, types.SuggestSummarize, report.Suggestion)
}

func TestDetector_SuggestsResetPastTokenThreshold(t *testing.T) {
	t.Parallel()
	d := newTestDetector()

	// ~50k estimated tokens > 1.5 * 32k
	msgs := []types.Message{{Role: types.RoleUser, Content: strings.Repeat("a", 200000)}}
	report := d.Assess(msgs)
	assert.Equal(t, types.SuggestReset, report.Suggestion)
}
