package analyzer

import (
	"fmt"
	"time"
)

// ValidationKind distinguishes the user-visible rejection classes so the HTTP
// layer can pick a message without re-parsing error strings.
type ValidationKind int

const (
	// ValidationNonFood: the model reported the image contains no food.
	ValidationNonFood ValidationKind = iota
	// ValidationAIGenerated: the image was judged AI-generated or synthetic.
	ValidationAIGenerated
	// ValidationSafetyBlocked: the provider's safety filter refused the image.
	ValidationSafetyBlocked
	// ValidationBadResponse: the model reply was missing required fields.
	ValidationBadResponse
	// ValidationRefusal: the model refused the image for a reason of its own;
	// the message carries the model's wording and is shown to the user as-is.
	ValidationRefusal
)

// ValidationError is fatal to a request and surfaces as a 4xx; it is never
// substituted with the mock result.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// QuotaError means the provider quota is exhausted and retries were spent.
// Surfaces as a 503 upstream; never retried further.
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string { return e.Message }

// AuthError means the provider credential is missing or invalid. Fatal, never
// retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// RateLimitError is a transient 429 from the provider. RetryAfter carries the
// provider-suggested delay when one was present in the raw error, zero
// otherwise. The string parsing happens exactly once, at the provider
// boundary.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return e.Message }

// ParseError means the model reply was not valid JSON.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// NewParseError builds a ParseError from the decode failure.
func NewParseError(cause error) *ParseError {
	return &ParseError{Message: fmt.Sprintf("invalid JSON response from model: %v", cause)}
}
