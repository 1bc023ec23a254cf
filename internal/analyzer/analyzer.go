package analyzer

import (
	"context"

	"github.com/foodloop/foodlens/internal/domain"
)

// FoodClassifier analyzes the food content of an image reachable at a URL.
// Implementations: the Gemini-backed remote classifier and the local
// heuristic classifier. The backend is chosen once at startup; request
// handlers never branch on which one they hold.
type FoodClassifier interface {
	Classify(ctx context.Context, imageURL string) (*domain.FoodAnalysis, error)
}

// Provider reports a human-readable name for health endpoints.
type Provider interface {
	Provider() string
}
