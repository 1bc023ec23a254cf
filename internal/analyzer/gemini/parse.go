package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/domain"
)

// requiredFields must all be present in a model analysis reply.
var requiredFields = []string{
	"foodCategory",
	"itemName",
	"quantity",
	"qualityScore",
	"freshness",
	"storageRecommendation",
	"confidence",
	"detectedItems",
}

// expiryLayouts are the date shapes accepted for expiryDateFromPackage.
var expiryLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// stripFences removes a leading ```json or ``` marker and a trailing ```
// marker, then trims whitespace. Models wrap JSON in markdown fences often
// enough that this is the first parsing step.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

// parseAnalysis validates and normalizes a raw model reply into a
// FoodAnalysis. Malformed JSON is a ParseError; a model-reported refusal or a
// missing/invalid required field is a ValidationError. Optional fields are
// repaired, never rejected: an unknown productType defaults to cooked and an
// unparsable expiry date becomes null.
func parseAnalysis(raw string) (*domain.FoodAnalysis, error) {
	text := stripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, analyzer.NewParseError(err)
	}

	// An "error" key is the model's own refusal, typically a non-food image.
	// It is a validation failure, not a parse failure.
	if rawErr, ok := fields["error"]; ok {
		var msg string
		_ = json.Unmarshal(rawErr, &msg)
		return nil, refusalError(msg)
	}

	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, &analyzer.ValidationError{
				Kind:    analyzer.ValidationBadResponse,
				Message: fmt.Sprintf("model response missing required field: %s", field),
			}
		}
	}

	var result domain.FoodAnalysis
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, analyzer.NewParseError(err)
	}

	if err := checkDomains(&result); err != nil {
		return nil, err
	}

	if !domain.ValidProductType(result.ProductType) {
		result.ProductType = domain.ProductTypeCooked
	}
	result.ExpiryDateFromPackage = normalizeExpiry(result.ExpiryDateFromPackage)

	return &result, nil
}

// refusalError maps the model's refusal message to a user-facing validation
// error. Messages that name a non-food image get the canned rejection; any
// other refusal keeps the model's own wording.
func refusalError(msg string) *analyzer.ValidationError {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "non-food") || strings.Contains(lower, "does not contain food") || msg == "" {
		return &analyzer.ValidationError{
			Kind: analyzer.ValidationNonFood,
			Message: "This image does not contain food items. Please upload an image of food only " +
				"(cooked meals, ingredients, beverages, snacks, etc.).",
		}
	}
	return &analyzer.ValidationError{Kind: analyzer.ValidationRefusal, Message: msg}
}

// checkDomains verifies every required field sits inside its declared domain.
func checkDomains(r *domain.FoodAnalysis) error {
	bad := func(field string) error {
		return &analyzer.ValidationError{
			Kind:    analyzer.ValidationBadResponse,
			Message: fmt.Sprintf("model response has invalid value for field: %s", field),
		}
	}
	switch {
	case !domain.ValidCategory(r.FoodCategory):
		return bad("foodCategory")
	case strings.TrimSpace(r.ItemName) == "":
		return bad("itemName")
	case r.Quantity < 1:
		return bad("quantity")
	case r.QualityScore < 0 || r.QualityScore > 1:
		return bad("qualityScore")
	case !domain.ValidFreshness(r.Freshness):
		return bad("freshness")
	case !domain.ValidStorage(r.StorageRecommendation):
		return bad("storageRecommendation")
	case r.Confidence < 0 || r.Confidence > 1:
		return bad("confidence")
	case r.DetectedItems == nil:
		return bad("detectedItems")
	}
	return nil
}

// normalizeExpiry coerces the optional package expiry date to a clean
// YYYY-MM-DD string, or nil when absent or unparsable.
func normalizeExpiry(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(strings.Replace(*v, "Z", "+00:00", 1))
	s = strings.TrimSuffix(s, "+00:00")
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}

// parseVerdict decodes the AI-generation detection reply.
func parseVerdict(raw string) (*domain.AIVerdict, error) {
	text := stripFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, analyzer.NewParseError(err)
	}
	if _, ok := fields["isAiGenerated"]; !ok {
		return nil, &analyzer.ParseError{Message: "detection response missing isAiGenerated field"}
	}

	var verdict domain.AIVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		return nil, analyzer.NewParseError(err)
	}
	return &verdict, nil
}
