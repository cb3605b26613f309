package manager

import (
	"fmt"
	"strings"

	"github.com/BaSui01/contextflow/types"
)

// reset collapses the conversation to its essential system messages plus
// a single reset marker embedding a truncated digest of the full history.
// A reset is a hard compaction: it bypasses windowing entirely.
func (m *Manager) reset(messages []types.Message) []types.Message {
	full := m.summarizer.Summarize(messages)
	if limit := m.cfg.Reset.DigestLimit; limit > 0 && len(full) > limit {
		full = full[:limit]
	}

	resetMsg := types.NewSystemMessage(fmt.Sprintf(
		"Conversation was reset to recover context quality. Prior context: %s", full))

	essential := m.essentialSystemMessages(messages)
	result := make([]types.Message, 0, len(essential)+1)
	result = append(result, essential...)
	result = append(result, resetMsg)
	return result
}

// essentialSystemMessages selects the system messages that carry
// fetched-data, permission, or conversation-state context, identified by
// the configured marker substrings. Everything else is discarded.
func (m *Manager) essentialSystemMessages(messages []types.Message) []types.Message {
	var essential []types.Message
	for _, msg := range messages {
		if msg.Role != types.RoleSystem {
			continue
		}
		lower := strings.ToLower(msg.Content)
		for _, marker := range m.cfg.Reset.EssentialMarkers {
			if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
				essential = append(essential, msg)
				break
			}
		}
	}
	return essential
}
