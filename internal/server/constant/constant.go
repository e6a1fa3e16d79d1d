package constant

const (
	ROUTE_GENERATE_TEXT     = "/generate-text"
	ROUTE_GENERATE_IMAGE    = "/generate-from-image"
	ROUTE_GENERATE_DOCUMENT = "/generate-from-document"
	ROUTE_GENERATE_AUDIO    = "/generate-from-audio"
	ROUTE_HEALTH            = "/ping"
	ROUTE_METRICS           = "/metrics"
	FORM_FIELD_PROMPT       = "prompt"
	FORM_FIELD_IMAGE        = "image"
	FORM_FIELD_DOCUMENT     = "document"
	FORM_FIELD_AUDIO        = "audio"
	DEFAULT_PROMPT_IMAGE    = "Describe the image"
	DEFAULT_PROMPT_DOCUMENT = "Analyze this document"
	DEFAULT_PROMPT_AUDIO    = "What does this audio say?"
	ERR_TEXT_NO_IMAGE       = "No image uploaded"
	ERR_TEXT_NO_DOCUMENT    = "No file uploaded"
	ERR_TEXT_NO_AUDIO       = "No audio file uploaded"
	ERR_TEXT_INVALID_BODY   = "Invalid request body"
	ERR_TEXT_INTERNAL       = "internal server error"
	MIME_TYPE_OCTET_STREAM  = "application/octet-stream"
)
