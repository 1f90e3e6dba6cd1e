// Package util provides small shared helpers.
package util

import (
	"fmt"
	"math"
)

// Round2 rounds a monetary or percentage value to two decimals. Internal
// arithmetic keeps full precision; rounding is for presentation only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a monetary value with a dollar sign and two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
