package entities

import "math"

const DefaultCurrency = "eur"

// MaxAmountCents caps any single price or charge (1,000,000.00).
const MaxAmountCents int64 = 100_000_000

// ToCents converts a major-unit amount (80.00) to minor units (8000).
// Values outside the int64 range saturate; NaN converts to 0.
func ToCents(v float64) int64 {
	c := math.Round(v * 100)
	switch {
	case math.IsNaN(c):
		return 0
	case c >= math.MaxInt64:
		return math.MaxInt64
	case c <= math.MinInt64:
		return math.MinInt64
	}
	return int64(c)
}

func FromCents(c int64) float64 {
	return float64(c) / 100
}

// Commission returns bps/10000 of amount, rounded half-up to the cent.
func Commission(amountCents int64, bps int64) int64 {
	if amountCents <= 0 || bps <= 0 {
		return 0
	}
	return (amountCents*bps + 5000) / 10000
}
