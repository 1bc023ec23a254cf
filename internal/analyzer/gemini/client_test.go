package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/domain"
	"github.com/foodloop/foodlens/internal/fetch"
)

func TestDecideVerdictAboveThreshold(t *testing.T) {
	err := decideVerdict(&domain.AIVerdict{IsAIGenerated: true, Confidence: 0.85, Reason: "waxy highlights"})
	var ve *analyzer.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, analyzer.ValidationAIGenerated, ve.Kind)
	assert.Contains(t, ve.Message, "AI-generated")
	assert.Contains(t, ve.Message, "waxy highlights")
}

func TestDecideVerdictBelowThreshold(t *testing.T) {
	assert.NoError(t, decideVerdict(&domain.AIVerdict{IsAIGenerated: true, Confidence: 0.65}))
}

func TestDecideVerdictNotAIGenerated(t *testing.T) {
	assert.NoError(t, decideVerdict(&domain.AIVerdict{IsAIGenerated: false, Confidence: 0.99}))
}

// testClassifier builds a Classifier with a stubbed provider call and a sleep
// hook that records waits instead of sleeping.
func testClassifier(gen generateFunc) (*Classifier, *[]time.Duration) {
	waits := &[]time.Duration{}
	c := &Classifier{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		sleep: func(_ context.Context, d time.Duration) error {
			*waits = append(*waits, d)
			return nil
		},
		generate: gen,
	}
	return c, waits
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}},
		}},
	}
}

func testImage() *fetch.Image {
	return &fetch.Image{Data: []byte("pixels"), Format: "jpeg"}
}

func TestCallModelRetriesTransientThenFails(t *testing.T) {
	calls := 0
	c, waits := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, errors.New("transport reset")
	})

	_, err := c.callModel(context.Background(), nil, testImage(), analysisPrompt, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestCallModelSucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transport reset")
		}
		return textResponse("reply text"), nil
	})

	text, err := c.callModel(context.Background(), nil, testImage(), analysisPrompt, true)

	require.NoError(t, err)
	assert.Equal(t, "reply text", text)
	assert.Equal(t, 2, calls)
}

func TestCallModelRateLimitExhaustionBecomesQuotaError(t *testing.T) {
	calls := 0
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, &googleapi.Error{Code: 429, Message: "resource exhausted"}
	})

	_, err := c.callModel(context.Background(), nil, testImage(), analysisPrompt, true)

	var qe *analyzer.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 3, calls)
}

func TestCallModelRateLimitNotRetriedWhenDisabled(t *testing.T) {
	calls := 0
	c, waits := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, &googleapi.Error{Code: 429, Message: "resource exhausted"}
	})

	_, err := c.callModel(context.Background(), nil, testImage(), aiDetectionPrompt, false)

	var rl *analyzer.RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestCallModelAuthErrorNeverRetried(t *testing.T) {
	calls := 0
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		calls++
		return nil, &googleapi.Error{Code: 401, Message: "invalid credentials"}
	})

	_, err := c.callModel(context.Background(), nil, testImage(), analysisPrompt, true)

	var ae *analyzer.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 1, calls)
}

func TestRejectAIGeneratedUnreadableVerdict(t *testing.T) {
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		return textResponse("the image looks real to me"), nil
	})

	err := c.rejectAIGenerated(context.Background(), testImage())

	var ve *analyzer.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, analyzer.ValidationBadResponse, ve.Kind)
	assert.Contains(t, ve.Message, "Invalid AI detection response")
}

func TestRejectAIGeneratedMissingVerdictField(t *testing.T) {
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		return textResponse(`{"confidence": 0.4}`), nil
	})

	err := c.rejectAIGenerated(context.Background(), testImage())

	var ve *analyzer.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "isAiGenerated")
}

func TestRejectAIGeneratedRateLimitSkipsDetection(t *testing.T) {
	c, _ := testClassifier(func(context.Context, *genai.GenerativeModel, []genai.Part) (*genai.GenerateContentResponse, error) {
		return nil, &googleapi.Error{Code: 429, Message: "resource exhausted"}
	})

	assert.NoError(t, c.rejectAIGenerated(context.Background(), testImage()))
}
