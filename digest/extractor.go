package digest

import (
	"regexp"
	"strings"
)

// Extraction is what an extractor mines out of a single piece of text.
type Extraction struct {
	// Identifiers are record-like numeric tokens (ticket numbers,
	// employee ids).
	Identifiers []string
	// Names are person-like capitalized word pairs.
	Names []string
	// Topics are coarse subject tags.
	Topics []string
}

// Extractor mines identifiers, names, and topics from text. The heuristic
// implementation can be swapped for a smarter one without touching the
// digest assembly.
type Extractor interface {
	Extract(text string) Extraction
}

var (
	identifierPattern = regexp.MustCompile(`\d{5,}`)
	namePattern       = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
)

// topicRule tags text containing any of its keywords.
type topicRule struct {
	keywords []string
	tag      string
}

var topicRules = []topicRule{
	{keywords: []string{"ticket", "incident"}, tag: "incidents"},
	{keywords: []string{"user", "employee"}, tag: "users"},
	{keywords: []string{"create"}, tag: "creation"},
	{keywords: []string{"update", "edit"}, tag: "updates"},
	{keywords: []string{"search", "find"}, tag: "search"},
}

// HeuristicExtractor is the default pattern-based extractor.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the default extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (e *HeuristicExtractor) Extract(text string) Extraction {
	var out Extraction
	out.Identifiers = identifierPattern.FindAllString(text, -1)
	out.Names = namePattern.FindAllString(text, -1)

	lower := strings.ToLower(text)
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				out.Topics = append(out.Topics, rule.tag)
				break
			}
		}
	}
	return out
}
