package swap

import "regexp"

// amountPattern accepts the empty string, an optional integer part, at most
// one decimal point and an optional fractional part. Signs, exponents and a
// second separator are rejected.
var amountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// IsValidAmountInput reports whether a free-text amount entry is acceptable.
func IsValidAmountInput(s string) bool {
	return amountPattern.MatchString(s)
}

// AcceptAmount applies the input-masking contract: if the proposed entry is
// valid it becomes the new state, otherwise the prior state is returned
// unchanged. Rejection is silent; there is no error to surface.
func AcceptAmount(current, proposed string) string {
	if IsValidAmountInput(proposed) {
		return proposed
	}
	return current
}
