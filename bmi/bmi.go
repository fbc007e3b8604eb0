// Package bmi computes Body Mass Index values and maps them to the
// weight categories that drive mission selection.
package bmi

// Category is a BMI weight classification
type Category string

const (
	Underweight Category = "underweight"
	Normal      Category = "normal"
	Overweight  Category = "overweight"
	Obese       Category = "obese"
)

// Categories lists every category, in increasing BMI order.
func Categories() []Category {
	return []Category{Underweight, Normal, Overweight, Obese}
}

// Description returns a short human-readable label for the category.
func (c Category) Description() string {
	switch c {
	case Underweight:
		return "Below healthy weight"
	case Overweight:
		return "Above healthy weight"
	case Obese:
		return "Obesity"
	default:
		return "Healthy weight"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Underweight, Normal, Overweight, Obese:
		return true
	}
	return false
}

// Calculate expects weight in kilograms and height in centimeters.
// Degenerate input (height or weight <= 0) yields 0 rather than an
// error; the caller falls back to the Normal category.
func Calculate(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0
	return weightKg / (h * h)
}

// Categorize maps a BMI value onto its category using the standard
// 18.5 / 25 / 30 thresholds. BMI 0 (degenerate input) lands in Normal.
func Categorize(value float64) Category {
	switch {
	case value <= 0:
		return Normal
	case value < 18.5:
		return Underweight
	case value < 25:
		return Normal
	case value < 30:
		return Overweight
	default:
		return Obese
	}
}

// Classify computes the BMI for the given weight and height and
// returns both the value and its category.
func Classify(weightKg, heightCm float64) (float64, Category) {
	value := Calculate(weightKg, heightCm)
	return value, Categorize(value)
}
