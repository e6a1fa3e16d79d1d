package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentPart_JSONShape(t *testing.T) {
	parts := []ContentPart{TextPart("hi"), InlineDataPart([]byte("abc"), "audio/mpeg")}

	b, err := json.Marshal(parts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"hi"},{"inlineData":{"data":"YWJj","mimeType":"audio/mpeg"}}]`, string(b))
}

func TestGenerationResult_JSONShape(t *testing.T) {
	b, err := json.Marshal(Succeeded(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"output":""}`, string(b))

	b, err = json.Marshal(Failed("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}

func TestProviderError(t *testing.T) {
	cause := errors.New("API key not valid")
	err := error(&ProviderError{Provider: "gemini", Err: cause})

	assert.Equal(t, "API key not valid", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unknown provider error", (&ProviderError{}).Error())
}

func TestClientInputError(t *testing.T) {
	err := error(&ClientInputError{Message: "No file uploaded", Err: ErrMissingAttachment})

	assert.Equal(t, "No file uploaded", err.Error())
	assert.ErrorIs(t, err, ErrMissingAttachment)
}
