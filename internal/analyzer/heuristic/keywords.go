package heuristic

import "strings"

// foodKeywords accept a detector label as food.
var foodKeywords = []string{
	"apple", "banana", "orange", "bread", "rice", "pasta", "noodle", "pizza", "burger",
	"sandwich", "salad", "soup", "curry", "chicken", "beef", "fish", "egg", "milk",
	"cheese", "yogurt", "butter", "cake", "cookie", "chocolate", "ice cream", "dessert",
	"vegetable", "fruit", "meat", "seafood", "grains", "cereal", "snack", "beverage",
	"drink", "juice", "coffee", "tea", "soda", "chappati", "roti", "naan",
	"dosa", "idli", "sambar", "dal", "biryani", "pulao", "fried", "grilled", "baked",
	"cooked", "raw", "fresh", "prepared", "meal", "food", "cuisine",
}

// nonFoodKeywords reject a label outright: people, animals, vehicles,
// electronics, cleaning and medical products.
var nonFoodKeywords = []string{
	"person", "people", "human", "man", "woman", "child", "baby",
	"dog", "cat", "animal", "pet", "bird", "horse", "cow",
	"car", "truck", "bus", "vehicle", "motorcycle", "bicycle",
	"phone", "laptop", "computer", "keyboard", "mouse", "screen",
	"book", "newspaper", "magazine", "paper",
	"cleaning", "detergent", "soap", "shampoo", "toothpaste", "medicine", "pill",
	"bleach", "chemical", "toxic", "poison",
}

// containerKeywords are provisionally accepted: a bowl or plate may hold food.
var containerKeywords = []string{"bowl", "plate", "dish", "cup", "mug", "bottle", "container"}

// IsFoodItem reports whether a detector label plausibly names food. Non-food
// matches win over food matches; containers are accepted since they may hold
// food. Pure function.
func IsFoodItem(label string) bool {
	if label == "" {
		return false
	}
	lower := strings.ToLower(label)

	for _, kw := range nonFoodKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range foodKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range containerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isContainer(label string) bool {
	lower := strings.ToLower(label)
	for _, kw := range containerKeywords {
		if lower == kw {
			return true
		}
	}
	return false
}
