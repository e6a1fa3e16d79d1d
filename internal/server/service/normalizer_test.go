package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTextParts_PreservesOrder(t *testing.T) {
	parts := TextParts(strPtr("first"), strPtr("second"), strPtr("third"))

	require.Len(t, parts, 3)
	assert.Equal(t, "first", *parts[0].Text)
	assert.Equal(t, "second", *parts[1].Text)
	assert.Equal(t, "third", *parts[2].Text)
}

func TestTextParts_SkipsAbsentFragments(t *testing.T) {
	parts := TextParts(strPtr("only"), nil, nil)

	require.Len(t, parts, 1)
	assert.Equal(t, "only", *parts[0].Text)
	assert.Nil(t, parts[0].InlineData)
}

func TestTextParts_KeepsEmptyFragments(t *testing.T) {
	parts := TextParts(nil, strPtr(""), strPtr("x"))

	require.Len(t, parts, 2)
	assert.Equal(t, "", *parts[0].Text)
	assert.Equal(t, "x", *parts[1].Text)
}

func TestAttachmentParts(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	parts := AttachmentParts("Describe the image", data, "image/png")

	require.Len(t, parts, 2)
	require.True(t, parts[0].IsText())
	assert.Equal(t, "Describe the image", *parts[0].Text)
	assert.Nil(t, parts[0].InlineData)

	require.NotNil(t, parts[1].InlineData)
	assert.Nil(t, parts[1].Text)
	assert.Equal(t, "image/png", parts[1].InlineData.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), parts[1].InlineData.Data)

	decoded, err := parts[1].InlineData.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestPromptOrDefault(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		def    string
		want   string
	}{
		{name: "empty uses default", prompt: "", def: "Describe the image", want: "Describe the image"},
		{name: "set keeps prompt", prompt: "What color?", def: "Describe the image", want: "What color?"},
		{name: "whitespace is kept", prompt: " ", def: "Analyze this document", want: " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PromptOrDefault(tt.prompt, tt.def))
		})
	}
}
