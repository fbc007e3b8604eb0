package bmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	// 70 kg at 175 cm is BMI 22.86
	assert.InDelta(t, 22.86, Calculate(70, 175), 0.01)
}

func TestCalculateDegenerateInput(t *testing.T) {
	assert.Equal(t, 0.0, Calculate(70, 0))
	assert.Equal(t, 0.0, Calculate(70, -10))
	assert.Equal(t, 0.0, Calculate(0, 175))
}

func TestCategorizeBoundaries(t *testing.T) {
	cases := []struct {
		value float64
		want  Category
	}{
		{10, Underweight},
		{18.49, Underweight},
		{18.5, Normal},
		{24.99, Normal},
		{25, Overweight},
		{29.99, Overweight},
		{30, Obese},
		{45, Obese},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Categorize(c.value), "bmi %v", c.value)
	}
}

func TestCategorizeDegenerateValueIsNormal(t *testing.T) {
	assert.Equal(t, Normal, Categorize(0))
}

// The category must be monotonic non-decreasing as BMI grows.
func TestCategorizeMonotonic(t *testing.T) {
	rank := map[Category]int{Underweight: 0, Normal: 1, Overweight: 2, Obese: 3}
	prev := -1
	for v := 1.0; v < 60; v += 0.25 {
		r := rank[Categorize(v)]
		assert.GreaterOrEqual(t, r, prev, "bmi %v", v)
		prev = r
	}
}

func TestClassify(t *testing.T) {
	value, category := Classify(90, 170)
	assert.InDelta(t, 31.14, value, 0.01)
	assert.Equal(t, Obese, category)

	// Missing height degrades to Normal with BMI 0, not an error
	value, category = Classify(90, 0)
	assert.Equal(t, 0.0, value)
	assert.Equal(t, Normal, category)
}
