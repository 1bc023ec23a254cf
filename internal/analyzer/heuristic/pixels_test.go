package heuristic

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBestHypothesisCurryOverRice(t *testing.T) {
	// Curry gate holds (yellow > 0.15, smooth texture); the rice gate fails
	// because the edge density is below 0.15.
	f := features{yellow: 0.2, edgeDensity: 0.08}
	assert.Equal(t, "Curry or Dal", bestHypothesis(f))
}

func TestBestHypothesisSambarOnBusyTexture(t *testing.T) {
	f := features{yellow: 0.2, edgeDensity: 0.14}
	assert.Equal(t, "Sambar", bestHypothesis(f))
}

func TestBestHypothesisRice(t *testing.T) {
	f := features{white: 0.5, edgeDensity: 0.2}
	assert.Equal(t, "Rice", bestHypothesis(f))
}

func TestBestHypothesisDosaIdli(t *testing.T) {
	f := features{white: 0.4, edgeDensity: 0.1}
	assert.Equal(t, "Dosa or Idli", bestHypothesis(f))
}

func TestBestHypothesisVegetable(t *testing.T) {
	f := features{green: 0.3}
	assert.Equal(t, "Vegetable Dish", bestHypothesis(f))
}

func TestBestHypothesisNoneQualifies(t *testing.T) {
	assert.Equal(t, "", bestHypothesis(features{}))
}

func TestDominantColorFallback(t *testing.T) {
	assert.Equal(t, "Brown (Bread/Chappati)", dominantColorName(features{brown: 0.4}))
	assert.Equal(t, "", dominantColorName(features{brown: 0.05, green: 0.02}))
}

func TestInferFoodFromYellowSmoothImage(t *testing.T) {
	// A uniform turmeric-yellow frame: strong yellow band, zero edges, no
	// circles.
	img := solidImage(120, 120, color.NRGBA{R: 220, G: 200, B: 30, A: 255})
	assert.Equal(t, "Curry or Dal", InferFoodFromImage(img))
}

func TestInferFoodFromCircularShape(t *testing.T) {
	// A pale disc on a dark background reads as a flatbread.
	img := solidImage(300, 300, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	cx, cy, r := 150, 150, 60
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, color.NRGBA{R: 235, G: 235, B: 235, A: 255})
			}
		}
	}
	require.GreaterOrEqual(t, countCirclesFromImage(img), 1)
	assert.Contains(t, InferFoodFromImage(img), "Chappati")
}

// countCirclesFromImage runs the circle detector on a decoded image.
func countCirclesFromImage(img *image.NRGBA) int {
	f := extractFeatures(downscale(img))
	return f.circles
}

func TestRGBToHSVKnownColors(t *testing.T) {
	h, s, v := rgbToHSV(255, 0, 0)
	assert.InDelta(t, 0, h, 0.01)
	assert.InDelta(t, 255, s, 0.01)
	assert.InDelta(t, 255, v, 0.01)

	h, _, _ = rgbToHSV(0, 255, 0)
	assert.InDelta(t, 60, h, 0.01) // 120 degrees on the half scale

	_, s, v = rgbToHSV(255, 255, 255)
	assert.InDelta(t, 0, s, 0.01)
	assert.InDelta(t, 255, v, 0.01)
}

func TestDownscaleBoundsWidth(t *testing.T) {
	img := solidImage(1600, 800, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	small := downscale(img)
	assert.Equal(t, 800, small.Bounds().Dx())
	assert.Equal(t, 400, small.Bounds().Dy())

	// Already small images pass through untouched.
	tiny := solidImage(100, 50, color.NRGBA{A: 255})
	assert.Same(t, tiny, downscale(tiny))
}
