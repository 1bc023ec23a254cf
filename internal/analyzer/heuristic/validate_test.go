package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodloop/foodlens/internal/domain"
)

func TestValidateDetectionsKeepsFood(t *testing.T) {
	dets := []domain.Detection{
		{Label: "rice", Confidence: 0.8},
		{Label: "person", Confidence: 0.9},
		{Label: "curry", Confidence: 0.5},
	}
	food, ok := ValidateDetections(dets)
	assert.True(t, ok)
	assert.Len(t, food, 2)
	assert.Equal(t, "rice", food[0].Label)
	assert.Equal(t, "curry", food[1].Label)
}

func TestValidateDetectionsOnlyNonFood(t *testing.T) {
	dets := []domain.Detection{
		{Label: "laptop", Confidence: 0.9},
		{Label: "phone", Confidence: 0.7},
	}
	food, ok := ValidateDetections(dets)
	assert.False(t, ok)
	assert.Empty(t, food)
}

func TestValidateDetectionsBelowConfidenceFloor(t *testing.T) {
	dets := []domain.Detection{
		{Label: "rice", Confidence: 0.2},
		{Label: "curry", Confidence: 0.29},
	}
	food, ok := ValidateDetections(dets)
	assert.False(t, ok)
	assert.Empty(t, food)
}

func TestValidateDetectionsEmpty(t *testing.T) {
	food, ok := ValidateDetections(nil)
	assert.False(t, ok)
	assert.Empty(t, food)
}
