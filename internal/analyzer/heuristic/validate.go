package heuristic

import "github.com/foodloop/foodlens/internal/domain"

// minDetectionConfidence is the floor below which detector hits are ignored.
const minDetectionConfidence = 0.3

// ValidateDetections filters detections to confident food items. The image is
// valid iff at least one food detection survives; an image with only non-food
// detections is rejected.
func ValidateDetections(detections []domain.Detection) ([]domain.Detection, bool) {
	var food, nonFood []domain.Detection
	for _, det := range detections {
		if det.Confidence < minDetectionConfidence {
			continue
		}
		if IsFoodItem(det.Label) {
			food = append(food, det)
		} else {
			nonFood = append(nonFood, det)
		}
	}

	if len(food) > 0 {
		return food, true
	}
	return nil, false
}
