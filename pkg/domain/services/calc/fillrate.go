package calc

import "math"

// FillRate is the percentage of ordered that was invoiced, clamped to 100
// and rounded to two decimals. A zero or negative denominator yields 0.
func FillRate(invoiced, ordered float64) float64 {
	if ordered <= 0 {
		return 0
	}
	return Round2(math.Min(invoiced/ordered, 1) * 100)
}

// WeightedFillRateOrNil applies FillRate to monetary values but reports
// nil when there is no ordered value, separating "no data" from zero.
func WeightedFillRateOrNil(invoicedValue, orderedValue float64) *float64 {
	if orderedValue <= 0 {
		return nil
	}
	rate := FillRate(invoicedValue, orderedValue)
	return &rate
}

// RoundedMean returns the two-decimal mean of the samples or nil when empty
func RoundedMean(samples []int) *float64 {
	mean, ok := Mean(samples)
	if !ok {
		return nil
	}
	rounded := Round2(mean)
	return &rounded
}
