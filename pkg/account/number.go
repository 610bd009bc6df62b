package account

import (
	"strconv"
	"strings"
)

// AccountNumber is the bank-internal part of a bank account number. Leading
// zeros are significant and kept.
type AccountNumber struct {
	digits string
}

// ParseAccountNumber accepts two or more ASCII digits.
func ParseAccountNumber(s string) (AccountNumber, error) {
	if len(s) < 2 {
		return AccountNumber{}, newError(ErrInvalidAccountNumber, s, "fewer than two digits", nil)
	}
	if !allDigits(s) {
		return AccountNumber{}, newError(ErrInvalidAccountNumber, s, "not a digit string", nil)
	}
	return AccountNumber{digits: s}, nil
}

// NewAccountNumber builds an account number from its integer form.
func NewAccountNumber(n int64) (AccountNumber, error) {
	if n < 0 {
		return AccountNumber{}, newError(ErrInvalidAccountNumber, strconv.FormatInt(n, 10), "negative", nil)
	}
	return ParseAccountNumber(strconv.FormatInt(n, 10))
}

// Len returns the number of digits.
func (a AccountNumber) Len() int {
	return len(a.digits)
}

// IsZero reports whether a is the zero value.
func (a AccountNumber) IsZero() bool {
	return a.digits == ""
}

func (a AccountNumber) String() string {
	return a.digits
}

// Padded left-pads the digits with zeros to width. Longer numbers are
// returned unchanged.
func (a AccountNumber) Padded(width int) string {
	if len(a.digits) >= width {
		return a.digits
	}
	return strings.Repeat("0", width-len(a.digits)) + a.digits
}
