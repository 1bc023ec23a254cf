package heuristic

import (
	"fmt"
	"image"
	"strings"

	"github.com/foodloop/foodlens/internal/domain"
)

// nameTable maps raw labels and regional spelling variants to presentable
// names.
var nameTable = map[string]string{
	"bowl":      "Prepared Food",
	"plate":     "Cooked Meal",
	"dish":      "Food Dish",
	"container": "Food Item",
	"bottle":    "Beverage",
	"cup":       "Beverage",
	"mug":       "Beverage",
	"roti":      "Chappati",
	"chapati":   "Chappati",
	"chapathi":  "Chappati",
	"chappati":  "Chappati",
	"naan":      "Naan Bread",
	"dosa":      "Dosa",
	"idli":      "Idli",
	"sambar":    "Sambar",
	"dal":       "Dal",
	"biryani":   "Biryani",
	"pulao":     "Pulao",
	"pulav":     "Pulao",
}

// genericNames are labels too vague to present; they trigger pixel-level
// inference.
var genericNames = map[string]bool{
	"Food Item":     true,
	"Cooked Meal":   true,
	"Prepared Food": true,
	"Food Dish":     true,
}

// NormalizeFoodName maps a raw label to its presentable form, falling back to
// the input when no mapping applies. Pure function.
func NormalizeFoodName(name string) string {
	lower := strings.ToLower(name)
	if mapped, ok := nameTable[lower]; ok {
		return mapped
	}
	for key, mapped := range nameTable {
		if strings.Contains(lower, key) {
			return mapped
		}
	}
	return name
}

func titleCase(label string) string {
	label = strings.ReplaceAll(label, "_", " ")
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// itemName builds a display name from the surviving food detections, falling
// back to pixel-level inference when the labels are only containers or
// otherwise too generic.
func itemName(detections []domain.Detection, img *image.NRGBA) string {
	var foods, containers []string
	seen := map[string]bool{}
	for _, det := range detections {
		label := strings.ToLower(det.Label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		if isContainer(label) {
			containers = append(containers, label)
		} else {
			foods = append(foods, label)
		}
	}

	// Only containers detected: the label list says nothing about the food
	// itself, so look at the pixels.
	if len(foods) == 0 {
		if img != nil {
			if inferred := InferFoodFromImage(img); inferred != "" {
				return inferred
			}
		}
		for _, c := range containers {
			if c == "plate" {
				return "Cooked Meal"
			}
		}
		for _, c := range containers {
			if c == "bowl" {
				return "Prepared Food"
			}
		}
		return "Food Item"
	}

	switch len(foods) {
	case 1:
		return NormalizeFoodName(titleCase(foods[0]))
	case 2:
		return NormalizeFoodName(titleCase(foods[0])) + " and " + NormalizeFoodName(titleCase(foods[1]))
	case 3:
		return NormalizeFoodName(titleCase(foods[0])) + ", " +
			NormalizeFoodName(titleCase(foods[1])) + ", and " +
			NormalizeFoodName(titleCase(foods[2]))
	default:
		return fmt.Sprintf("%s, %s, and %d more items",
			NormalizeFoodName(titleCase(foods[0])),
			NormalizeFoodName(titleCase(foods[1])),
			len(foods)-2)
	}
}
