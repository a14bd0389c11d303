// Package ai contains the LLM client: the model capability table, the
// OpenAI/Claude wire codecs, and the bounded-retry request machine.
package ai

import "fmt"

// Error codes surfaced to callers. Input errors are never retried and never
// security-logged; transient errors are retried up to maxRetries; terminal
// provider errors surface immediately.
const (
	ErrPromptTooShort        = "prompt_too_short"
	ErrPromptTooLong         = "prompt_too_long"
	ErrMissingAPIKey         = "missing_api_key"
	ErrInvalidModel          = "invalid_model"
	ErrInvalidAPIKey         = "invalid_api_key"
	ErrRateLimited           = "rate_limited"
	ErrServerError           = "server_error"
	ErrConnectionError       = "connection_error"
	ErrContextLengthExceeded = "context_length_exceeded"
	ErrInvalidResponse       = "invalid_response"
	ErrMaxRetriesExceeded    = "max_retries_exceeded"
	ErrAPIError              = "api_error"
	ErrGenerationFailed      = "generation_error"
)

// Error is the typed error returned by every layer of the generation
// pipeline. Message is human-readable and safe to show to end users; raw
// provider error bodies never leak through it.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a typed pipeline error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AsError returns err's *Error if it is one, wrapping anything else as a
// generic generation_error so unexpected faults never reach users raw.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Code: ErrGenerationFailed, Message: "Layout generation failed. Please try again."}
}
