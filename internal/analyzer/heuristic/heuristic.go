// Package heuristic is the local food classifier used when no remote
// credentials are configured. It combines an optional generic object
// detector with classical pixel statistics: circular-shape detection for
// flatbreads and HSV color-band ratios for curry, rice, and vegetable
// classes.
package heuristic

import (
	"context"
	"image"
	"log/slog"
	"strings"

	"github.com/foodloop/foodlens/internal/analyzer"
	"github.com/foodloop/foodlens/internal/domain"
	"github.com/foodloop/foodlens/internal/fetch"
)

// Detector supplies object detections for an image. It is an external
// collaborator; the classifier works without one by relying on pixel-level
// inference alone.
type Detector interface {
	Detect(ctx context.Context, img *image.NRGBA) ([]domain.Detection, error)
}

// maxQuantity caps the serving estimate for busy images.
const maxQuantity = 20

// storageByCategory maps a food category to its storage recommendation.
var storageByCategory = map[string]string{
	domain.CategoryCookedMeals: domain.StorageHot,
	domain.CategoryRawFood:     domain.StorageCold,
	domain.CategoryBeverages:   domain.StorageCold,
	domain.CategorySnacks:      domain.StorageDry,
	domain.CategoryDesserts:    domain.StorageCold,
}

// Classifier implements analyzer.FoodClassifier with local image analysis.
type Classifier struct {
	detector Detector
	fetcher  *fetch.Fetcher
	logger   *slog.Logger
}

// NewClassifier builds the heuristic classifier. detector may be nil, in
// which case label validation is skipped and naming goes straight to pixel
// inference.
func NewClassifier(detector Detector, logger *slog.Logger) *Classifier {
	return &Classifier{
		detector: detector,
		fetcher:  fetch.NewFetcher(),
		logger:   logger,
	}
}

// Provider implements analyzer.Provider.
func (c *Classifier) Provider() string { return "Local Heuristic" }

// Classify fetches the image and classifies it locally. With a detector the
// detections are validated (only non-food hits reject the image) and drive
// the name; without one the pixels carry the whole decision.
func (c *Classifier) Classify(ctx context.Context, imageURL string) (*domain.FoodAnalysis, error) {
	img, err := c.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	var detections []domain.Detection
	if c.detector != nil {
		all, err := c.detector.Detect(ctx, img.Pixels)
		if err != nil {
			return nil, err
		}
		food, ok := ValidateDetections(all)
		if !ok {
			return nil, &analyzer.ValidationError{
				Kind: analyzer.ValidationNonFood,
				Message: "No food items detected in the image. Please upload an image " +
					"containing only food items.",
			}
		}
		detections = food
	}

	name := itemName(detections, img.Pixels)
	if genericNames[name] || name == "" {
		if inferred := InferFoodFromImage(img.Pixels); inferred != "" {
			name = inferred
		}
	}
	if name == "" {
		name = "Food Item"
	}

	category := deriveCategory(detections)
	score, freshness := AssessQuality(img.Pixels)

	result := &domain.FoodAnalysis{
		FoodCategory:          category,
		ItemName:              name,
		Quantity:              estimateQuantity(detections),
		QualityScore:          score,
		Freshness:             freshness,
		StorageRecommendation: storageByCategory[category],
		Confidence:            averageConfidence(detections),
		DetectedItems:         detectedItems(detections),
		ProductType:           domain.ProductTypeCooked,
	}
	c.logger.Info("heuristic analysis complete",
		"item", result.ItemName,
		"category", result.FoodCategory,
		"detections", len(detections),
	)
	return result, nil
}

// deriveCategory picks a food category from detection labels, defaulting to
// cooked meals.
func deriveCategory(detections []domain.Detection) string {
	for _, det := range detections {
		label := strings.ToLower(det.Label)
		switch {
		case containsAny(label, "juice", "coffee", "tea", "soda", "drink", "beverage", "bottle", "cup", "mug"):
			return domain.CategoryBeverages
		case containsAny(label, "cake", "cookie", "chocolate", "ice cream", "dessert", "donut"):
			return domain.CategoryDesserts
		case containsAny(label, "apple", "banana", "orange", "fruit", "vegetable", "carrot", "broccoli", "raw"):
			return domain.CategoryRawFood
		case containsAny(label, "samosa", "pakora", "chips", "snack", "vada"):
			return domain.CategorySnacks
		}
	}
	return domain.CategoryCookedMeals
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// estimateQuantity treats each detection as roughly one serving, capped for
// busy images.
func estimateQuantity(detections []domain.Detection) int {
	n := len(detections)
	if n == 0 {
		return 1
	}
	if n > maxQuantity {
		return maxQuantity
	}
	return n
}

func averageConfidence(detections []domain.Detection) float64 {
	if len(detections) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, det := range detections {
		sum += det.Confidence
	}
	return sum / float64(len(detections))
}

func detectedItems(detections []domain.Detection) []string {
	items := make([]string, 0, len(detections))
	seen := map[string]bool{}
	for _, det := range detections {
		name := titleCase(det.Label)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, name)
	}
	return items
}
