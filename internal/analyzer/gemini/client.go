package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/domain"
	"github.com/foodloop/foodlens/internal/fetch"
)

// maxRetries bounds transient-failure retries per model call: 2 retries, 3
// attempts total.
const maxRetries = 2

// aiGeneratedThreshold is the confidence at which an AI-generated verdict
// rejects the image.
const aiGeneratedThreshold = 0.7

// generateFunc is the provider call; injectable for tests.
type generateFunc func(ctx context.Context, model *genai.GenerativeModel, parts []genai.Part) (*genai.GenerateContentResponse, error)

func generateContent(ctx context.Context, model *genai.GenerativeModel, parts []genai.Part) (*genai.GenerateContentResponse, error) {
	return model.GenerateContent(ctx, parts...)
}

// Classifier is the remote food classifier backed by the Gemini API. It is
// constructed once at startup and safe for concurrent use: the model handle
// is read-only after initialization.
type Classifier struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	detect    *genai.GenerativeModel
	modelName string
	fetcher   *fetch.Fetcher
	logger    *slog.Logger
	sleep     func(ctx context.Context, d time.Duration) error
	generate  generateFunc
}

// NewClassifier dials the Gemini API and selects the first model from
// preferred that the provider supports. The preference list is configuration;
// selection is a single pass over the provider's model listing.
func NewClassifier(ctx context.Context, apiKey string, preferred []string, logger *slog.Logger) (*Classifier, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	name := selectModel(ctx, client, preferred, logger)
	logger.Info("gemini model selected", "model", name)

	model := client.GenerativeModel(name)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.2),
		TopP:            genai.Ptr[float32](0.8),
		TopK:            genai.Ptr[int32](40),
		MaxOutputTokens: genai.Ptr[int32](2048),
	}

	detect := client.GenerativeModel(name)
	detect.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: genai.Ptr[int32](512),
	}

	return &Classifier{
		client:    client,
		model:     model,
		detect:    detect,
		modelName: name,
		fetcher:   fetch.NewFetcher(),
		logger:    logger,
		sleep:     sleepCtx,
		generate:  generateContent,
	}, nil
}

// Close releases the underlying API client.
func (c *Classifier) Close() error { return c.client.Close() }

// Provider implements analyzer.Provider.
func (c *Classifier) Provider() string { return "Google Gemini (" + c.modelName + ")" }

// Client exposes the shared API client for the chat service.
func (c *Classifier) Client() *genai.Client { return c.client }

// ModelName reports the model chosen at startup.
func (c *Classifier) ModelName() string { return c.modelName }

// selectModel returns the first preferred model the provider lists with
// generateContent support. When listing fails the first preference is used
// as-is; a bad name will surface on the first call.
func selectModel(ctx context.Context, client *genai.Client, preferred []string, logger *slog.Logger) string {
	available := map[string]bool{}
	it := client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Warn("failed to list gemini models", "error", err)
			return preferred[0]
		}
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				available[strings.TrimPrefix(m.Name, "models/")] = true
				break
			}
		}
	}
	for _, name := range preferred {
		if available[name] {
			return name
		}
	}
	return preferred[0]
}

// Classify runs the full remote pipeline: fetch, AI-generation check, food
// analysis, response validation.
func (c *Classifier) Classify(ctx context.Context, imageURL string) (*domain.FoodAnalysis, error) {
	img, err := c.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	c.logger.Info("image fetched", "url", imageURL, "format", img.Format, "bytes", len(img.Data))

	if err := c.rejectAIGenerated(ctx, img); err != nil {
		return nil, err
	}

	raw, err := c.callModel(ctx, c.model, img, analysisPrompt, true)
	if err != nil {
		return nil, err
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}
	c.logger.Info("analysis complete",
		"item", result.ItemName,
		"category", result.FoodCategory,
		"quantity", result.Quantity,
		"confidence", result.Confidence,
	)
	return result, nil
}

// rejectAIGenerated runs the AI-generation check and returns a
// ValidationError when the image is judged synthetic with high confidence.
// Call failures fail open: the pipeline proceeds with a neutral verdict, and
// rate-limit errors are not retried here so quota is preserved for the main
// analysis call. An unreadable verdict is a validation failure, not a skip:
// the model answered, but not in the agreed shape.
func (c *Classifier) rejectAIGenerated(ctx context.Context, img *fetch.Image) error {
	raw, err := c.callModel(ctx, c.detect, img, aiDetectionPrompt, false)
	if err != nil {
		var rl *analyzer.RateLimitError
		if errors.As(err, &rl) {
			c.logger.Warn("rate limited during AI detection, skipping to conserve quota")
			return nil
		}
		c.logger.Warn("AI detection failed, proceeding with analysis", "error", err)
		return nil
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return &analyzer.ValidationError{
			Kind:    analyzer.ValidationBadResponse,
			Message: "Invalid AI detection response: " + err.Error(),
		}
	}
	c.logger.Info("AI detection verdict",
		"ai_generated", verdict.IsAIGenerated,
		"confidence", verdict.Confidence,
	)
	return decideVerdict(verdict)
}

// decideVerdict converts a detection verdict into an error when it crosses
// the rejection threshold.
func decideVerdict(v *domain.AIVerdict) error {
	if !v.IsAIGenerated || v.Confidence < aiGeneratedThreshold {
		return nil
	}
	msg := "This image appears to be AI-generated or synthetic. Please upload a real photograph of food."
	if v.Reason != "" {
		msg += " (" + v.Reason + ")"
	}
	return &analyzer.ValidationError{Kind: analyzer.ValidationAIGenerated, Message: msg}
}

// callModel sends prompt + image and returns the reply text, retrying
// transient failures with exponential backoff (1s initial, doubled each
// retry). Auth errors and safety blocks are never retried. Rate limits are
// retried only when retryRateLimit is set, waiting the provider-suggested
// delay when it exceeds the schedule; exhausting retries on a rate limit
// becomes a QuotaError.
func (c *Classifier) callModel(ctx context.Context, model *genai.GenerativeModel, img *fetch.Image, prompt string, retryRateLimit bool) (string, error) {
	sched := backoff.NewExponentialBackOff()
	sched.InitialInterval = time.Second
	sched.Multiplier = 2
	sched.RandomizationFactor = 0
	sched.MaxInterval = time.Minute
	sched.Reset()

	parts := []genai.Part{
		genai.Text(prompt),
		genai.ImageData(img.Format, img.Data),
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := c.generate(ctx, model, parts)
		if err == nil {
			text, terr := responseText(resp)
			if terr == nil {
				return text, nil
			}
			err = terr
		}

		classified := ClassifyError(err)
		var wait time.Duration

		switch e := classified.(type) {
		case *analyzer.AuthError, *analyzer.ValidationError:
			return "", classified
		case *analyzer.RateLimitError:
			if !retryRateLimit {
				return "", e
			}
			if attempt == maxRetries {
				return "", &analyzer.QuotaError{
					Message: "Gemini API rate limit exceeded. You have reached your quota. Please try again later or upgrade your API plan.",
				}
			}
			wait = retryDelay(e.RetryAfter, sched.NextBackOff())
			lastErr = e
		default:
			if attempt == maxRetries {
				return "", fmt.Errorf("gemini call failed after %d attempts: %w", maxRetries+1, classified)
			}
			wait = sched.NextBackOff()
			lastErr = classified
		}

		c.logger.Warn("gemini call failed, retrying",
			"attempt", attempt+1,
			"wait", wait,
			"error", classified,
		)
		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

// responseText extracts the first text part of a generation response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(text)) == "" {
		return "", errors.New("empty response from model")
	}
	return string(text), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
