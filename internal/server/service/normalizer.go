package service

import (
	"github.com/DenisKhanov/GenAPI/internal/server/models"
)

// TextParts turns the fragments of the plain-text route into content parts, in the order
// received. A nil fragment was absent from the request and is left out; a present fragment
// is passed as-is, even when empty.
func TextParts(fragments ...*string) []models.ContentPart {
	parts := make([]models.ContentPart, 0, len(fragments))
	for _, f := range fragments {
		if f == nil {
			continue
		}
		parts = append(parts, models.TextPart(*f))
	}
	return parts
}

// AttachmentParts builds the two-part payload of the attachment routes:
// the prompt followed by the file content as base64 inline data.
func AttachmentParts(prompt string, data []byte, mimeType string) []models.ContentPart {
	return []models.ContentPart{
		models.TextPart(prompt),
		models.InlineDataPart(data, mimeType),
	}
}

// PromptOrDefault returns prompt, or def when prompt is empty.
func PromptOrDefault(prompt, def string) string {
	if prompt == "" {
		return def
	}
	return prompt
}
