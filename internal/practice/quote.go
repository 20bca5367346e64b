package practice

import "math"

// Base yearly rates per line of business.
var baseRates = map[string]float64{
	"Auto":   1200,
	"Home":   800,
	"Health": 500,
	"Life":   300,
}

// unknownLOBRate applies when the submitted line of business is not in
// the table; the wizard accepts free-form input.
const unknownLOBRate = 1000

// Premium computes the quoted premium for a line of business and age,
// rounded to two decimal places. Ages over 50 pay a 25% surcharge,
// ages under 25 a 15% surcharge.
func Premium(lob string, age int) float64 {
	premium, ok := baseRates[lob]
	if !ok {
		premium = unknownLOBRate
	}
	switch {
	case age > 50:
		premium *= 1.25
	case age < 25:
		premium *= 1.15
	}
	return math.Round(premium*100) / 100
}
