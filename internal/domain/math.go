package domain

import "github.com/shopspring/decimal"

// displayPrecision is the number of fractional digits shown for token
// amounts. Crypto amounts need the full 8 digits; truncating is a display
// defect.
const displayPrecision = 8

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeMultiply multiplies two string values, returning zero if either is
// invalid.
func SafeMultiply(a, b string) decimal.Decimal {
	return SafeParse(a).Mul(SafeParse(b))
}

// SafeSum adds two decimals.
func SafeSum(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// FormatAmount renders a token amount with exactly 8 fractional digits,
// regardless of the amount's native precision.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(displayPrecision)
}
