package tokenizer

import (
	"fmt"
	"sync"

	"github.com/BaSui01/contextflow/types"
)

// Tokenizer is the unified token counting interface.
//
// Counting is total: every implementation returns a count for any input,
// including the empty string, and never fails.
type Tokenizer interface {
	// CountTokens returns the token count for the given text.
	CountTokens(text string) int

	// CountConversation returns the summed content token count of a
	// message sequence. Used for budgeting, never for exact accounting.
	CountConversation(messages []types.Message) int

	// Name returns the tokenizer name.
	Name() string
}

// Global tokenizer registry, keyed by model name.
var (
	modelTokenizers   = make(map[string]Tokenizer)
	modelTokenizersMu sync.RWMutex
)

// Register registers a tokenizer for the given model name.
func Register(model string, t Tokenizer) {
	modelTokenizersMu.Lock()
	defer modelTokenizersMu.Unlock()
	modelTokenizers[model] = t
}

// Get returns the tokenizer registered for the given model.
// It also tries prefix matching (e.g. "gpt-4o" matches "gpt-4o-mini").
func Get(model string) (Tokenizer, error) {
	modelTokenizersMu.RLock()
	defer modelTokenizersMu.RUnlock()

	if t, ok := modelTokenizers[model]; ok {
		return t, nil
	}

	for prefix, t := range modelTokenizers {
		if len(model) >= len(prefix) && model[:len(prefix)] == prefix {
			return t, nil
		}
	}

	return nil, fmt.Errorf("no tokenizer registered for model: %s", model)
}

// GetOrEstimator returns the registered tokenizer for the model, falling
// back to the heuristic estimator when none is registered.
func GetOrEstimator(model string) Tokenizer {
	t, err := Get(model)
	if err != nil {
		return NewEstimator()
	}
	return t
}
