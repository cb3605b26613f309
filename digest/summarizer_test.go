package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/contextflow/types"
)

func msg(role types.Role, content string) types.Message {
	return types.Message{Role: role, Content: content}
}

func userMsg(content string) types.Message   { return msg(types.RoleUser, content) }
func assistMsg(content string) types.Message { return msg(types.RoleAssistant, content) }

func TestSummarizer_CollectsIdentifiers(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("please check ticket 1234567 and ticket 89012 for me"),
	})

	assert.Contains(t, out, "Identifiers mentioned: 1234567, 89012")
}

func TestSummarizer_IdentifierDedupPreservesFirstSighting(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("look at 55555 please"),
		userMsg("now compare 44444 with 55555"),
	})

	assert.Contains(t, out, "Identifiers mentioned: 55555, 44444")
}

func TestSummarizer_IdentifierOverflowEllipsis(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	// Padding keeps the message out of the recent-query clause, which
	// would otherwise echo the sixth identifier.
	out := s.Summarize([]types.Message{
		userMsg("ids 10001 10002 10003 10004 10005 10006 " + strings.Repeat("padding ", 30)),
	})

	assert.Contains(t, out, "Identifiers mentioned: 10001, 10002, 10003, 10004, 10005...")
	assert.NotContains(t, out, "10006")
}

func TestSummarizer_IgnoresShortNumbers(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("give me the top 1000 rows from page 42"),
	})

	assert.NotContains(t, out, "Identifiers mentioned")
}

func TestSummarizer_CollectsNames(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("assign this to Maria Santos or maybe John Smith"),
	})

	assert.Contains(t, out, "Names mentioned: Maria Santos, John Smith")
}

func TestSummarizer_CollectsTopics(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("search for the incident affecting that employee"),
	})

	assert.Contains(t, out, "Topics discussed: incidents, users, search")
}

func TestSummarizer_RecordsRecentQueries(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("first question about printers"),
		userMsg("second question about laptops"),
		userMsg("third question about monitors"),
		userMsg("fourth question about keyboards"),
	})

	// Only the last three recorded queries survive.
	assert.NotContains(t, out, "printers")
	assert.Contains(t, out, `Recent queries: "second question about laptops"; "third question about monitors"; "fourth question about keyboards"`)
}

func TestSummarizer_QueryLengthBounds(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		userMsg("tiny query"),             // exactly 10 chars: excluded
		userMsg(strings.Repeat("q", 200)), // exactly 200 chars: excluded
	})

	assert.NotContains(t, out, "Recent queries")
}

func TestSummarizer_LongQueryTruncatedTo100(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	query := strings.Repeat("w", 150)
	out := s.Summarize([]types.Message{userMsg(query)})

	assert.Contains(t, out, `"`+strings.Repeat("w", 100)+`"`)
	assert.NotContains(t, out, strings.Repeat("w", 101))
}

func TestSummarizer_CollectsActionLabels(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	out := s.Summarize([]types.Message{
		assistMsg("I have created the ticket for you"),
		assistMsg("the record was updated successfully"),
		assistMsg("I found 3 incident records matching"),
	})

	assert.Contains(t, out, "Actions taken: Created record(s); Updated record(s); Retrieved data")
}

func TestSummarizer_ActionLabelFirstMatchWins(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	// "created" outranks "updated" within the same message.
	out := s.Summarize([]types.Message{
		assistMsg("created and then updated the record"),
	})

	assert.Contains(t, out, "Actions taken: Created record(s)")
	assert.NotContains(t, out, "Updated record(s)")
}

func TestSummarizer_TotalExchangesAlwaysPresent(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	assert.Equal(t, "Total exchanges: 0", s.Summarize(nil))

	out := s.Summarize([]types.Message{
		userMsg("abc"), assistMsg("def"), userMsg("ghi"),
	})
	assert.Contains(t, out, "Total exchanges: 1")

	out = s.Summarize(make([]types.Message, 8))
	assert.Contains(t, out, "Total exchanges: 4")
}

func TestSummarizer_Deterministic(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	messages := []types.Message{
		userMsg("search for incident 1234567 reported by Maria Santos"),
		assistMsg("I found the incident record"),
		userMsg("please update it and assign to John Smith"),
		assistMsg("the record was updated"),
	}

	first := s.Summarize(messages)
	for range 10 {
		assert.Equal(t, first, s.Summarize(messages))
	}
}

type fixedExtractor struct{}

func (fixedExtractor) Extract(string) Extraction {
	return Extraction{Topics: []string{"custom"}}
}

func TestSummarizer_SwappableExtractor(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(fixedExtractor{})

	out := s.Summarize([]types.Message{userMsg("anything at all here")})
	assert.Contains(t, out, "Topics discussed: custom")
}

func TestHeuristicExtractor_Extract(t *testing.T) {
	t.Parallel()
	e := NewHeuristicExtractor()

	ext := e.Extract("find ticket 9876543 for Jane Doe and update it")
	assert.Equal(t, []string{"9876543"}, ext.Identifiers)
	assert.Equal(t, []string{"Jane Doe"}, ext.Names)
	assert.Equal(t, []string{"incidents", "updates", "search"}, ext.Topics)
}

func TestHeuristicExtractor_EmptyText(t *testing.T) {
	t.Parallel()
	e := NewHeuristicExtractor()

	ext := e.Extract("")
	assert.Empty(t, ext.Identifiers)
	assert.Empty(t, ext.Names)
	assert.Empty(t, ext.Topics)
}

func TestSummarizer_EmptyContentSafe(t *testing.T) {
	t.Parallel()
	s := NewSummarizer(nil)

	require.NotPanics(t, func() {
		s.Summarize([]types.Message{{Role: types.RoleUser}, {Role: types.RoleAssistant}})
	})
}
