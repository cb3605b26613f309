package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/contextflow/types"
)

// TiktokenTokenizer counts tokens with tiktoken for OpenAI-family models.
// Encoding initialization is lazy; when it fails (unknown model, encoding
// files unavailable) the tokenizer degrades to the heuristic estimator so
// counting stays total.
type TiktokenTokenizer struct {
	model    string
	encoding string

	once     sync.Once
	enc      *tiktoken.Tiktoken
	fallback *Estimator
}

// modelEncodings maps model names to their tiktoken encoding.
var modelEncodings = map[string]string{
	"gpt-4o":        "o200k_base",
	"gpt-4o-mini":   "o200k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-4":         "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",
}

// NewTiktokenTokenizer creates a tiktoken-backed tokenizer for the given
// model. Unknown models fall back to cl100k_base; prefix matching covers
// dated variants like "gpt-4o-2024-08-06".
func NewTiktokenTokenizer(model string) *TiktokenTokenizer {
	encoding, ok := modelEncodings[model]
	if !ok {
		for prefix, enc := range modelEncodings {
			if len(model) >= len(prefix) && model[:len(prefix)] == prefix {
				encoding = enc
				ok = true
				break
			}
		}
	}
	if !ok {
		encoding = "cl100k_base"
	}

	return &TiktokenTokenizer{
		model:    model,
		encoding: encoding,
		fallback: NewEstimator(),
	}
}

func (t *TiktokenTokenizer) init() {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			return
		}
		t.enc = enc
	})
}

func (t *TiktokenTokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	t.init()
	if t.enc == nil {
		return t.fallback.CountTokens(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

func (t *TiktokenTokenizer) CountConversation(messages []types.Message) int {
	total := 0
	for _, msg := range messages {
		total += t.CountTokens(msg.Content)
	}
	return total
}

func (t *TiktokenTokenizer) Name() string {
	return "tiktoken:" + t.encoding
}
