package heuristic

import (
	"image"
	"math"
	"sort"

	xdraw "golang.org/x/image/draw"
)

// maxAnalysisWidth bounds the pixel analysis cost; larger images are
// downscaled first.
const maxAnalysisWidth = 800

// edgeThreshold is the Sobel gradient magnitude at which a pixel counts as an
// edge.
const edgeThreshold = 150.0

// features are the pixel statistics the hypothesis gates consume: five HSV
// color-band ratios and two texture metrics.
type features struct {
	yellow      float64
	orange      float64
	brown       float64
	white       float64
	green       float64
	edgeDensity float64
	lapVariance float64
	circles     int
}

// InferFoodFromImage guesses a food label from pixel statistics alone. It is
// the last resort when detector labels are missing or too generic. Returns ""
// when no hypothesis qualifies and no color band dominates.
func InferFoodFromImage(img *image.NRGBA) string {
	img = downscale(img)
	f := extractFeatures(img)

	// Round flatbread-like shapes trump the color hypotheses.
	if f.circles >= 2 {
		return "Chappati (Multiple)"
	}
	if f.circles == 1 {
		return "Chappati"
	}

	if name := bestHypothesis(f); name != "" {
		return name
	}
	return dominantColorName(f)
}

type hypothesis struct {
	name  string
	gate  func(features) bool
	score func(features) float64
}

// hypotheses in fixed priority order; ties on score resolve to the earlier
// entry.
var hypotheses = []hypothesis{
	{
		name: "Rice",
		gate: func(f features) bool { return f.white > 0.2 && f.edgeDensity > 0.15 },
		score: func(f features) float64 {
			return 0.6*f.white + 0.4*f.edgeDensity
		},
	},
	{
		name: "Curry or Dal",
		gate: func(f features) bool {
			return (f.yellow > 0.15 || f.orange > 0.15) && f.edgeDensity < 0.12
		},
		score: func(f features) float64 {
			return 0.8*math.Max(f.yellow, f.orange) + 0.2*(1-f.edgeDensity)
		},
	},
	{
		name: "Sambar",
		gate: func(f features) bool {
			return (f.yellow > 0.15 || f.orange > 0.15) && f.edgeDensity >= 0.12
		},
		score: func(f features) float64 {
			return 0.7*math.Max(f.yellow, f.orange) + 0.3*f.edgeDensity
		},
	},
	{
		name: "Biryani",
		gate: func(f features) bool {
			return f.yellow+f.orange > 0.1 && f.brown > 0.1 && f.edgeDensity > 0.1 && f.edgeDensity < 0.2
		},
		score: func(f features) float64 {
			return (f.yellow + f.orange + f.brown) / 3
		},
	},
	{
		name: "Dosa or Idli",
		gate: func(f features) bool {
			return f.white > 0.25 && f.edgeDensity > 0.08 && f.edgeDensity < 0.18
		},
		score: func(f features) float64 {
			return 0.7*f.white + 0.3*f.edgeDensity
		},
	},
	{
		name:  "Vegetable Dish",
		gate:  func(f features) bool { return f.green > 0.15 },
		score: func(f features) float64 { return f.green },
	},
}

// bestHypothesis scores every qualifying hypothesis and returns the highest,
// or "" when none qualifies.
func bestHypothesis(f features) string {
	best := ""
	bestScore := 0.0
	for _, h := range hypotheses {
		if !h.gate(f) {
			continue
		}
		if s := h.score(f); best == "" || s > bestScore {
			best = h.name
			bestScore = s
		}
	}
	return best
}

// dominantColorName is the generic fallback when no hypothesis qualifies: the
// strongest color band above 0.1 names the dish family.
func dominantColorName(f features) string {
	type band struct {
		name  string
		ratio float64
	}
	bands := []band{
		{"Yellow/Orange (Curry/Dal)", f.yellow + f.orange},
		{"Brown (Bread/Chappati)", f.brown},
		{"White (Rice)", f.white},
		{"Green (Vegetables)", f.green},
	}
	best := bands[0]
	for _, b := range bands[1:] {
		if b.ratio > best.ratio {
			best = b
		}
	}
	if best.ratio > 0.1 {
		return best.name
	}
	return ""
}

func downscale(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxAnalysisWidth {
		return img
	}
	nh := h * maxAnalysisWidth / w
	dst := image.NewNRGBA(image.Rect(0, 0, maxAnalysisWidth, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func extractFeatures(img *image.NRGBA) features {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := float64(w * h)

	gray := make([]float64, w*h)
	var f features

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			gray[y*w+x] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)

			hue, sat, val := rgbToHSV(c.R, c.G, c.B)
			if hue >= 15 && hue <= 35 && sat >= 100 && val >= 100 {
				f.yellow++
			}
			if hue >= 5 && hue <= 25 && sat >= 100 && val >= 100 {
				f.orange++
			}
			if hue >= 10 && hue <= 25 && sat >= 50 && val >= 50 && val <= 200 {
				f.brown++
			}
			if sat <= 30 && val >= 200 {
				f.white++
			}
			if hue >= 40 && hue <= 80 && sat >= 50 && val >= 50 {
				f.green++
			}
		}
	}
	f.yellow /= total
	f.orange /= total
	f.brown /= total
	f.white /= total
	f.green /= total

	f.edgeDensity = edgeDensity(gray, w, h)
	f.lapVariance = laplacianVariance(gray, w, h)
	f.circles = countCircles(gray, w, h)
	return f
}

// rgbToHSV converts to hue [0,180), saturation and value [0,255], the scale
// the band thresholds are written in.
func rgbToHSV(r8, g8, b8 uint8) (hue, sat, val float64) {
	r, g, b := float64(r8), float64(g8), float64(b8)
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	val = maxC
	delta := maxC - minC
	if maxC > 0 {
		sat = 255 * delta / maxC
	}
	if delta == 0 {
		return 0, sat, val
	}
	var deg float64
	switch maxC {
	case r:
		deg = 60 * (g - b) / delta
	case g:
		deg = 60*(b-r)/delta + 120
	default:
		deg = 60*(r-g)/delta + 240
	}
	if deg < 0 {
		deg += 360
	}
	return deg / 2, sat, val
}

// sobel returns the horizontal and vertical gradient at an interior pixel.
func sobel(gray []float64, w int, x, y int) (gx, gy float64) {
	i := func(dx, dy int) float64 { return gray[(y+dy)*w+(x+dx)] }
	gx = -i(-1, -1) - 2*i(-1, 0) - i(-1, 1) + i(1, -1) + 2*i(1, 0) + i(1, 1)
	gy = -i(-1, -1) - 2*i(0, -1) - i(1, -1) + i(-1, 1) + 2*i(0, 1) + i(1, 1)
	return gx, gy
}

// edgeDensity is the fraction of pixels whose gradient magnitude crosses the
// edge threshold.
func edgeDensity(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	edges := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx, gy := sobel(gray, w, x, y)
			if math.Hypot(gx, gy) >= edgeThreshold {
				edges++
			}
		}
	}
	return float64(edges) / float64(w*h)
}

// laplacianVariance measures local contrast: grainy textures like rice score
// high, smooth gravies low.
func laplacianVariance(gray []float64, w, h int) float64 {
	if w < 3 || h < 3 {
		return 0
	}
	n := (w - 2) * (h - 2)
	vals := make([]float64, 0, n)
	sum := 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := gray[y*w+x-1] + gray[y*w+x+1] + gray[(y-1)*w+x] + gray[(y+1)*w+x] - 4*gray[y*w+x]
			vals = append(vals, lap)
			sum += lap
		}
	}
	mean := sum / float64(n)
	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	return variance / float64(n)
}

// countCircles is a gradient-voting Hough transform tuned for plate-sized
// round shapes: edge pixels vote for centers along their gradient direction
// across the radius range, and well-separated accumulator peaks count as
// circles.
func countCircles(gray []float64, w, h int) int {
	minDim := w
	if h < minDim {
		minDim = h
	}
	minR := 20
	maxR := minDim / 3
	if maxR <= minR || w < 3 || h < 3 {
		return 0
	}
	minDist := minDim / 4
	const voteThreshold = 30

	rStep := (maxR - minR) / 16
	if rStep < 1 {
		rStep = 1
	}

	acc := make([]int, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx, gy := sobel(gray, w, x, y)
			mag := math.Hypot(gx, gy)
			if mag < 100 {
				continue
			}
			ux, uy := gx/mag, gy/mag
			for r := minR; r <= maxR; r += rStep {
				for _, sign := range [2]float64{1, -1} {
					cx := x + int(sign*ux*float64(r))
					cy := y + int(sign*uy*float64(r))
					if cx >= 0 && cx < w && cy >= 0 && cy < h {
						acc[cy*w+cx]++
					}
				}
			}
		}
	}

	type peak struct{ votes, x, y int }
	var peaks []peak
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			v := acc[y*w+x]
			if v < voteThreshold {
				continue
			}
			// Local maximum within the 3x3 neighborhood.
			if v >= acc[(y-1)*w+x] && v >= acc[(y+1)*w+x] && v >= acc[y*w+x-1] && v >= acc[y*w+x+1] {
				peaks = append(peaks, peak{v, x, y})
			}
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })

	var accepted []peak
	for _, p := range peaks {
		ok := true
		for _, a := range accepted {
			dx, dy := float64(p.x-a.x), float64(p.y-a.y)
			if math.Hypot(dx, dy) < float64(minDist) {
				ok = false
				break
			}
		}
		if ok {
			accepted = append(accepted, p)
		}
	}
	return len(accepted)
}
