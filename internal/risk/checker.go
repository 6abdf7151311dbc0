package risk

import "math"

// Pre-trade checks and numeric helpers. The book and engine trust their
// input; anything reaching them must have passed through here first.

const Epsilon = 1e-9

// AlmostEqual reports whether two prices are equal within Epsilon.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// NormalizeToTick rounds a price to the nearest multiple of tickSize.
func NormalizeToTick(price, tickSize float64) float64 {
	return math.Round(price/tickSize) * tickSize
}

// Validate reports whether an order is acceptable: strictly positive
// price and quantity, both within the configured bounds.
func Validate(price float64, quantity uint64, maxPrice float64, maxQuantity uint64) bool {
	if price <= 0.0 || quantity == 0 {
		return false
	}
	if price > maxPrice || quantity > maxQuantity {
		return false
	}
	return true
}
