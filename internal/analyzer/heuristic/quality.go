package heuristic

import (
	"image"
	"math"

	"github.com/foodloop/foodlens/internal/domain"
)

// AssessQuality scores visual quality from image brightness and contrast and
// maps the score to a freshness level. Both fallback pipelines share this
// formula.
func AssessQuality(img *image.NRGBA) (score float64, freshness string) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	n := float64(w * h)

	sum := 0.0
	sumSq := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			g := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			sum += g
			sumSq += g * g
		}
	}
	brightness := sum / n
	stddev := math.Sqrt(math.Max(0, sumSq/n-brightness*brightness))

	score = 0.5*math.Min(brightness/255, 1) + 0.5*math.Min(stddev/128, 1)

	switch {
	case score >= 0.7:
		freshness = domain.FreshnessFresh
	case score >= 0.5:
		freshness = domain.FreshnessGood
	default:
		freshness = domain.FreshnessFair
	}
	return score, freshness
}
