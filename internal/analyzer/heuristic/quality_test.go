package heuristic

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodloop/foodlens/internal/domain"
)

func TestAssessQualityDarkImage(t *testing.T) {
	score, freshness := AssessQuality(solidImage(50, 50, color.NRGBA{A: 255}))
	assert.InDelta(t, 0, score, 0.01)
	assert.Equal(t, domain.FreshnessFair, freshness)
}

func TestAssessQualityBrightFlatImage(t *testing.T) {
	// Full brightness but zero contrast lands exactly on the Good boundary.
	score, freshness := AssessQuality(solidImage(50, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	assert.InDelta(t, 0.5, score, 0.01)
	assert.Equal(t, domain.FreshnessGood, freshness)
}

func TestAssessQualityHighContrastImage(t *testing.T) {
	// Half black, half white: mid brightness, near-maximal contrast.
	img := solidImage(50, 50, color.NRGBA{A: 255})
	for y := 0; y < 50; y++ {
		for x := 0; x < 25; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	score, freshness := AssessQuality(img)
	assert.Greater(t, score, 0.7)
	assert.Equal(t, domain.FreshnessFresh, freshness)
}
