package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFoodItem(t *testing.T) {
	tests := []struct {
		label    string
		expected bool
	}{
		{"rice", true},
		{"dal curry", true},
		{"Chappati", true},
		{"fried chicken", true},
		{"bowl", true},  // container: may hold food
		{"plate", true}, // container: may hold food
		{"person", false},
		{"laptop", false},
		{"detergent", false},
		{"medicine", false},
		{"dog", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFoodItem(tt.label))
		})
	}
}

func TestIsFoodItemPure(t *testing.T) {
	// Same input, same output, across repeated calls.
	for i := 0; i < 3; i++ {
		assert.True(t, IsFoodItem("sambar"))
		assert.False(t, IsFoodItem("toothpaste"))
	}
}

func TestNonFoodWinsOverFood(t *testing.T) {
	// A label matching both sets is rejected: the non-food check runs first.
	assert.False(t, IsFoodItem("dog food"))
}
