package models

import "errors"

// ErrMissingAttachment is wrapped by ClientInputError when a required file is absent.
var ErrMissingAttachment = errors.New("required attachment is missing")

// ErrUploadTooLarge is returned by the upload store for files above the configured limit.
// It is a server-side fault, not a client input error.
var ErrUploadTooLarge = errors.New("upload exceeds the size limit")

// ErrEmptyResponse is returned by gateways when the provider answers without any text.
var ErrEmptyResponse = errors.New("generative model returned an empty response")

// ClientInputError is a fault caused by the caller's request. It maps to 400.
type ClientInputError struct {
	Message string // Message shown to the caller
	Err     error  // Underlying cause, may be nil
}

func (e *ClientInputError) Error() string {
	return e.Message
}

func (e *ClientInputError) Unwrap() error {
	return e.Err
}

// ProviderError is a fault returned by the Model Gateway. It maps to 500 and its
// message is the provider's message verbatim.
type ProviderError struct {
	Provider string // Name of the gateway that failed (e.g., gemini)
	Err      error  // Error returned by the provider SDK
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return "unknown provider error"
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
