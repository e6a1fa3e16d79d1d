// Package models holds the request, payload and result types shared by the
// generation service, the upload store and the HTTP handlers.
package models

import "encoding/base64"

// AttachmentKind describes which binary attachment, if any, accompanies a generation request.
type AttachmentKind string

const (
	AttachmentNone     AttachmentKind = "none"
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
	AttachmentAudio    AttachmentKind = "audio"
)

// AttachmentRoute parameterizes the generic attachment handler.
type AttachmentRoute struct {
	Kind           AttachmentKind // Kind of the attachment accepted by the route
	Path           string         // URL path of the route (e.g., /generate-from-image)
	Field          string         // Multipart field carrying the file (e.g., image)
	DefaultPrompt  string         // Prompt used when the request has none
	MissingMessage string         // Error returned to the caller when the file is absent
}

// Upload is a single transient file written by the upload store for the lifetime of one request.
type Upload struct {
	Field        string `json:"field"`        // Multipart field the file arrived in
	OriginalName string `json:"originalName"` // File name supplied by the client
	Path         string `json:"-"`            // Location of the transient copy on disk
	MIMEType     string `json:"mimeType"`     // Declared or detected MIME type
	Size         int64  `json:"size"`         // Size in bytes
}

// TextRequest is the JSON body of the plain-text route.
// A nil fragment was absent from the request body.
type TextRequest struct {
	Prompt  *string `json:"prompt"`
	Prompt2 *string `json:"prompt2"`
	Prompt3 *string `json:"prompt3"`
}

// GenerationRequest is the parsed form of one HTTP call.
type GenerationRequest struct {
	Kind    AttachmentKind // none for the plain-text route
	Prompts []*string      // Text fragments, only used when Kind is none
	Prompt  string         // Prompt for attachment routes, already defaulted
	Upload  *Upload        // Attachment, nil when Kind is none
}

// InlineData carries base64-encoded binary content with its MIME type.
type InlineData struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// Bytes decodes the base64 payload back to raw bytes.
func (d InlineData) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Data)
}

// ContentPart is one unit of a multimodal payload: exactly one of Text or InlineData is set.
type ContentPart struct {
	Text       *string     `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Text: &text}
}

// InlineDataPart builds a binary content part, encoding data as base64.
func InlineDataPart(data []byte, mimeType string) ContentPart {
	return ContentPart{InlineData: &InlineData{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}}
}

// IsText reports whether the part carries text.
func (p ContentPart) IsText() bool {
	return p.Text != nil
}

// GenerationResult is the body of every generation response: exactly one of Output or Error is set.
type GenerationResult struct {
	Output *string `json:"output,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// Succeeded builds the result of a successful generation.
func Succeeded(output string) GenerationResult {
	return GenerationResult{Output: &output}
}

// Failed builds the result of a failed request.
func Failed(message string) GenerationResult {
	return GenerationResult{Error: &message}
}
