package utils

import (
	"fmt"
	"math"
)

// Round rounds a number to 2 decimal places for monetary calculations
func Round(num float64) float64 {
	return math.Round(num*MoneyPrecision) / MoneyPrecision
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// ToMinorUnits converts a major-unit decimal amount (e.g. 19.99) to the
// minor-unit integer the payment gateway expects (1999). The conversion must
// be exact; a non-finite or non-positive result is rejected.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("amount is not a finite number")
	}
	minor := math.Round(amount * MoneyPrecision)
	if minor <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return int64(minor), nil
}
