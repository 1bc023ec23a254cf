package gemini

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"github.com/foodloop/foodlens/internal/analyzer"
)

// retryInPattern matches the provider's "retry in 3.2s" hint embedded in
// quota error messages.
var retryInPattern = regexp.MustCompile(`(?i)retry in ([\d.]+)s`)

// ClassifyError translates a raw provider error into the typed taxonomy. This
// is the single place that inspects provider error strings; everything above
// it uses errors.As.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &analyzer.ValidationError{
			Kind:    analyzer.ValidationSafetyBlocked,
			Message: "Image was blocked by safety filters. Please ensure the image contains appropriate content.",
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	var gerr *googleapi.Error
	code := 0
	if errors.As(err, &gerr) {
		code = gerr.Code
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden ||
		strings.Contains(msg, "API_KEY") || strings.Contains(lower, "api key"):
		return &analyzer.AuthError{Message: "invalid or missing Gemini API key"}
	case code == http.StatusTooManyRequests ||
		strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") ||
		strings.Contains(msg, "429"):
		return &analyzer.RateLimitError{Message: msg, RetryAfter: suggestedRetryDelay(msg)}
	case strings.Contains(lower, "safety") || strings.Contains(lower, "blocked"):
		return &analyzer.ValidationError{
			Kind:    analyzer.ValidationSafetyBlocked,
			Message: "Image was blocked by safety filters. Please ensure the image contains appropriate content.",
		}
	}
	return err
}

// suggestedRetryDelay extracts the provider-suggested wait from an error
// message, or zero when none is present.
func suggestedRetryDelay(msg string) time.Duration {
	m := retryInPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// retryDelay picks the actual wait before the next attempt: the suggested
// delay plus a 10% buffer, but never less than the scheduled backoff.
func retryDelay(suggested, scheduled time.Duration) time.Duration {
	if suggested <= 0 {
		return scheduled
	}
	buffered := time.Duration(float64(suggested) * 1.1)
	if buffered > scheduled {
		return buffered
	}
	return scheduled
}
