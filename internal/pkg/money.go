package pkg

import "math"

// Round2 rounds a monetary value to two decimal places. All persisted
// amounts in the ledger go through this before being written.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
