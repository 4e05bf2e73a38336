package domain

import "math"

// EffectivePrice returns the price after the product discount is applied,
// rounded to the nearest whole unit.
func EffectivePrice(price, discount float64) float64 {
	return math.Round(price * (1 - discount/100))
}

// RoundDiscount normalizes a discount percentage to 2 decimal places before
// it is persisted.
func RoundDiscount(discount float64) float64 {
	return math.Round(discount*100) / 100
}

// ValidDiscount reports whether a discount percentage is inside [0, 100].
// Out-of-range values are rejected, never clamped.
func ValidDiscount(discount float64) bool {
	if math.IsNaN(discount) || math.IsInf(discount, 0) {
		return false
	}
	return discount >= 0 && discount <= 100
}
