package domain

import "github.com/shopspring/decimal"

// Round2 applies a half-up rounding policy at two decimal places. Report
// fields are rounded exactly once, at emission: the day planner computes
// each route's figures in full float64 precision and rounds them here, and
// the horizon driver sums those rounded figures as decimals so the
// multi-day totals do not compound float error.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
