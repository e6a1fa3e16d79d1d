package api

import "strings"

// supportedImageMIME normalizes an image MIME type accepted by the OpenAI and Anthropic
// APIs. It returns "" for anything else.
func supportedImageMIME(mt string) string {
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case "image/jpeg", "image/jpg":
		return "image/jpeg"
	case "image/png":
		return "image/png"
	case "image/gif":
		return "image/gif"
	case "image/webp":
		return "image/webp"
	default:
		return ""
	}
}
