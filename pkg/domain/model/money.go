package model

import "math"

type Money struct {
	Currency    string
	AmountCents int64
}

// MinorUnits converts a decimal major-unit amount to minor units, rounding
// half-up. Rounding must happen per line, never on an aggregate.
func MinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}
