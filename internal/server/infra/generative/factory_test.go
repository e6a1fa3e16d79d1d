package generative

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelFactory_Unknown(t *testing.T) {
	_, err := ModelFactory(context.Background(), "deepseek", "key", "model", 0, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic, gemini, genai, openai")
}

func TestModelFactory_CaseInsensitive(t *testing.T) {
	m, err := ModelFactory(context.Background(), "OpenAI", "key", "gpt-4o", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, "openai", m.Name())
}

func TestModelFactory_PropagatesConstructorError(t *testing.T) {
	_, err := ModelFactory(context.Background(), "anthropic", "", "claude-sonnet-4-5", 0, -1)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"anthropic", "gemini", "genai", "openai"}, Names())
}
