package account

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"github.com/bft-labs/bankdomain/pkg/checksum"
)

// ClearingNumber identifies a bank branch. Main is always four digits; some
// Swedbank branches add a fifth sorting digit covered by a Luhn check.
type ClearingNumber struct {
	main       uint16
	sorting    uint8
	hasSorting bool
}

// NewClearingNumber builds a clearing number from its integer form. Values
// of 10000 and above carry a sorting digit in the last position.
func NewClearingNumber(n int) (ClearingNumber, error) {
	input := strconv.Itoa(n)
	if n < 1000 {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, input, "below 1000", nil)
	}

	main, sorting, hasSorting := n, 0, false
	if n >= 10000 {
		main, sorting, hasSorting = n/10, n%10, true
	}
	if main > 9999 {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, input, "more than five digits", nil)
	}

	m, err := safecast.Conv[uint16](main)
	if err != nil {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, input, "", err)
	}
	s, err := safecast.Conv[uint8](sorting)
	if err != nil {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, input, "", err)
	}

	c := ClearingNumber{main: m, sorting: s, hasSorting: hasSorting}
	if hasSorting && !checksum.Mod10(c.String()) {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, input, "sorting digit check failed", nil)
	}
	return c, nil
}

// ParseClearingNumber parses four or five ASCII digits.
func ParseClearingNumber(s string) (ClearingNumber, error) {
	if (len(s) != 4 && len(s) != 5) || !allDigits(s) {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, s, "want four or five digits", nil)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, s, "", err)
	}
	c, err := NewClearingNumber(n)
	if err != nil {
		return ClearingNumber{}, err
	}
	// "01234" would otherwise read as the four digit 1234.
	if len(s) == 5 && !c.hasSorting {
		return ClearingNumber{}, newError(ErrInvalidClearingNumber, s, "leading zero", nil)
	}
	return c, nil
}

// Main returns the four digit part.
func (c ClearingNumber) Main() int {
	return int(c.main)
}

// SortingDigit returns the fifth digit, if present.
func (c ClearingNumber) SortingDigit() (int, bool) {
	return int(c.sorting), c.hasSorting
}

// HasSortingDigit reports whether the number has five digits.
func (c ClearingNumber) HasSortingDigit() bool {
	return c.hasSorting
}

// Value returns the integer form, sorting digit included.
func (c ClearingNumber) Value() int {
	if c.hasSorting {
		return int(c.main)*10 + int(c.sorting)
	}
	return int(c.main)
}

// IsZero reports whether c is the zero value.
func (c ClearingNumber) IsZero() bool {
	return c.main == 0
}

// String returns the digits without separators, e.g. "81299".
func (c ClearingNumber) String() string {
	if c.hasSorting {
		return fmt.Sprintf("%04d%d", c.main, c.sorting)
	}
	return fmt.Sprintf("%04d", c.main)
}

// Pretty separates the sorting digit with a dash, e.g. "8129-9".
func (c ClearingNumber) Pretty() string {
	if c.hasSorting {
		return fmt.Sprintf("%04d-%d", c.main, c.sorting)
	}
	return fmt.Sprintf("%04d", c.main)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
