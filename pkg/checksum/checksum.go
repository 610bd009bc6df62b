package checksum

import "errors"

// ErrContractViolation is returned when Mod11 is called with input it is not
// defined for. It signals a programming error in the caller, not a failed check.
var ErrContractViolation = errors.New("checksum: mod11 requires at least two ASCII digits")

// doubled maps a digit to the digit sum of twice its value.
var doubled = [10]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}

// Mod10 reports whether digits passes the Luhn check.
// Empty input, non-digit characters and an all-zero sum are invalid.
func Mod10(digits string) bool {
	if digits == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d = doubled[d]
		}
		sum += d
		double = !double
	}

	return sum != 0 && sum%10 == 0
}

// Mod11 reports whether the last digit of digits is the modulus 11 check digit
// of the digits before it.
//
// Weights run 2, 3, ..., 10, 1 and repeat, starting from the digit left of
// the check digit. A computed check digit of 10 can never match.
func Mod11(digits string) (bool, error) {
	if len(digits) < 2 || !isDigits(digits) {
		return false, ErrContractViolation
	}

	sum := 0
	weight := 2
	for i := len(digits) - 2; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		if weight < 10 {
			weight++
		} else {
			weight = 1
		}
	}

	expected := 11 - sum%11
	switch expected {
	case 11:
		expected = 0
	case 10:
		return false, nil
	}

	return int(digits[len(digits)-1]-'0') == expected, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
