// Package digest produces deterministic heuristic summaries of
// conversation history, preserving continuity when older turns are folded
// away or a conversation is reset.
package digest

import (
	"fmt"
	"strings"

	"github.com/BaSui01/contextflow/types"
)

// Query recording bounds: messages in (minQueryLength, maxQueryLength)
// characters count as query candidates, recorded up to queryRecordLength.
const (
	minQueryLength    = 10
	maxQueryLength    = 200
	queryRecordLength = 100
)

// Caps on how much of each extracted set the digest spells out.
const (
	maxDigestIdentifiers = 5
	maxDigestNames       = 3
	maxDigestQueries     = 3
	maxDigestActions     = 3
)

// Summarizer mines a message sequence for topics, entities, and action
// history and assembles a compact text digest. Output is byte-identical
// for identical input: no randomness, no wall-clock reads.
type Summarizer struct {
	extractor Extractor
}

// NewSummarizer creates a summarizer. extractor may be nil (defaults to
// the heuristic pattern extractor).
func NewSummarizer(extractor Extractor) *Summarizer {
	if extractor == nil {
		extractor = NewHeuristicExtractor()
	}
	return &Summarizer{extractor: extractor}
}

// Summarize produces the digest for a message sequence.
func (s *Summarizer) Summarize(messages []types.Message) string {
	var (
		topics      orderedSet
		identifiers orderedSet
		names       orderedSet
		queries     []string
		actions     []string
	)

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleUser:
			ext := s.extractor.Extract(msg.Content)
			identifiers.addAll(ext.Identifiers)
			names.addAll(ext.Names)
			topics.addAll(ext.Topics)

			if len(msg.Content) > minQueryLength && len(msg.Content) < maxQueryLength {
				q := msg.Content
				if len(q) > queryRecordLength {
					q = q[:queryRecordLength]
				}
				queries = append(queries, q)
			}
		case types.RoleAssistant:
			if label := actionLabel(msg.Content); label != "" {
				actions = append(actions, label)
			}
		}
	}

	var clauses []string
	if len(topics.items) > 0 {
		clauses = append(clauses, "Topics discussed: "+strings.Join(topics.items, ", "))
	}
	if len(identifiers.items) > 0 {
		clauses = append(clauses, "Identifiers mentioned: "+capped(identifiers.items, maxDigestIdentifiers))
	}
	if len(names.items) > 0 {
		clauses = append(clauses, "Names mentioned: "+capped(names.items, maxDigestNames))
	}
	if len(queries) > 0 {
		clauses = append(clauses, "Recent queries: "+quotedTail(queries, maxDigestQueries))
	}
	if len(actions) > 0 {
		clauses = append(clauses, "Actions taken: "+strings.Join(tail(actions, maxDigestActions), "; "))
	}
	clauses = append(clauses, fmt.Sprintf("Total exchanges: %d", len(messages)/2))

	return strings.Join(clauses, ". ")
}

// actionLabel maps assistant phrasing to a coarse action label. First
// match wins.
func actionLabel(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "created"):
		return "Created record(s)"
	case strings.Contains(lower, "updated"), strings.Contains(lower, "modified"):
		return "Updated record(s)"
	case strings.Contains(lower, "found") && strings.Contains(lower, "incident"):
		return "Retrieved data"
	}
	return ""
}

// capped joins up to max items, marking overflow with an ellipsis.
func capped(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + "..."
}

// tail returns the last max items.
func tail(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[len(items)-max:]
}

// quotedTail joins the last max items, each quoted, with semicolons.
func quotedTail(items []string, max int) string {
	last := tail(items, max)
	quoted := make([]string, len(last))
	for i, item := range last {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, "; ")
}

// orderedSet deduplicates while preserving first-sighting order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

func (s *orderedSet) addAll(items []string) {
	for _, item := range items {
		s.add(item)
	}
}
