package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodloop/foodlens/internal/domain"
)

func TestNormalizeFoodName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Roti", "Chappati"},
		{"chapati", "Chappati"},
		{"chapathi", "Chappati"},
		{"naan", "Naan Bread"},
		{"pulav", "Pulao"},
		{"plate", "Cooked Meal"},
		{"bowl", "Prepared Food"},
		{"Pizza", "Pizza"}, // no mapping: passes through
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, NormalizeFoodName(tt.in))
		})
	}
}

func TestNormalizeFoodNamePure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Chappati", NormalizeFoodName("roti"))
	}
}

func TestItemNameSingleFood(t *testing.T) {
	name := itemName([]domain.Detection{{Label: "biryani", Confidence: 0.9}}, nil)
	assert.Equal(t, "Biryani", name)
}

func TestItemNameTwoFoods(t *testing.T) {
	name := itemName([]domain.Detection{
		{Label: "rice", Confidence: 0.9},
		{Label: "curry", Confidence: 0.8},
	}, nil)
	assert.Equal(t, "Rice and Curry", name)
}

func TestItemNameManyFoods(t *testing.T) {
	name := itemName([]domain.Detection{
		{Label: "rice", Confidence: 0.9},
		{Label: "curry", Confidence: 0.8},
		{Label: "salad", Confidence: 0.7},
		{Label: "soup", Confidence: 0.6},
	}, nil)
	assert.Equal(t, "Rice, Curry, and 2 more items", name)
}

func TestItemNameContainersOnly(t *testing.T) {
	name := itemName([]domain.Detection{{Label: "plate", Confidence: 0.9}}, nil)
	assert.Equal(t, "Cooked Meal", name)

	name = itemName([]domain.Detection{{Label: "bowl", Confidence: 0.9}}, nil)
	assert.Equal(t, "Prepared Food", name)
}

func TestItemNameDeduplicates(t *testing.T) {
	name := itemName([]domain.Detection{
		{Label: "rice", Confidence: 0.9},
		{Label: "Rice", Confidence: 0.8},
	}, nil)
	assert.Equal(t, "Rice", name)
}
