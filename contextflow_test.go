package contextflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/contextflow/config"
	"github.com/BaSui01/contextflow/tokenizer"
	"github.com/BaSui01/contextflow/types"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	m, err := New()
	require.NoError(t, err)

	result := m.Manage([]types.Message{
		types.NewUserMessage("is the mail server back up yet"),
	}, "checking in")
	assert.False(t, result.WasReset)
	assert.Len(t, result.ManagedMessages, 1)
}

func TestNew_WithOptions(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()
	cfg.Limits.SummarizeAfter = 5
	cfg.Limits.MaxRecentMessages = 4

	m, err := New(
		WithConfig(cfg),
		WithLogger(zap.NewNop()),
		WithTokenizer(tokenizer.NewEstimator()),
	)
	require.NoError(t, err)

	// Ten messages against a summarize-after of five: folding happens.
	messages := make([]types.Message, 10)
	for i := range messages {
		messages[i] = types.NewUserMessage("unique question number " + string(rune('a'+i)) + " about the printers")
	}
	result := m.Manage(messages, "next")
	assert.True(t, result.WasSummarized)
}

func TestNew_WithConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("limits:\n  max_recent_messages: 4\n"), 0o644))

	m, err := New(WithConfigFile(path))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestNew_BadConfigFile(t *testing.T) {
	t.Parallel()
	_, err := New(WithConfigFile("/nonexistent/contextflow.yaml"))
	assert.Error(t, err)
}
