package account

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Every error returned by this package matches
// exactly one of them with errors.Is.
var (
	// ErrMalformedInput is returned for input with too few digits to hold a
	// clearing number and an account number.
	ErrMalformedInput = errors.New("account: malformed input")

	// ErrInvalidClearingNumber is returned for clearing numbers outside
	// 1000-9999 or with a failing sorting digit.
	ErrInvalidClearingNumber = errors.New("account: invalid clearing number")

	// ErrInvalidAccountNumber is returned for account numbers with fewer than
	// two digits or with non-digit characters.
	ErrInvalidAccountNumber = errors.New("account: invalid account number")

	// ErrUnknownScheme is returned when no catalog range contains the
	// clearing number.
	ErrUnknownScheme = errors.New("account: unknown clearing number")

	// ErrChecksum is returned when the scheme's checksum rejects the number.
	ErrChecksum = errors.New("account: checksum mismatch")

	// ErrContractViolation is returned when a scheme builds checksum input the
	// algorithm is not defined for.
	ErrContractViolation = errors.New("account: checksum contract violation")
)

// ValidationError describes why an input was rejected.
type ValidationError struct {
	// Kind is one of the sentinel errors above.
	Kind   error
	Input  string
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func newError(kind error, input, reason string, cause error) *ValidationError {
	return &ValidationError{Kind: kind, Input: input, Reason: reason, Err: cause}
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%v %q", e.Kind, e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns a short label for the kind of err: "valid" for nil, one of
// "malformed_input", "invalid_clearing_number", "invalid_account_number",
// "unknown_scheme", "checksum", "contract_violation", or "error" otherwise.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrInvalidClearingNumber):
		return "invalid_clearing_number"
	case errors.Is(err, ErrInvalidAccountNumber):
		return "invalid_account_number"
	case errors.Is(err, ErrUnknownScheme):
		return "unknown_scheme"
	case errors.Is(err, ErrChecksum):
		return "checksum"
	case errors.Is(err, ErrContractViolation):
		return "contract_violation"
	default:
		return "error"
	}
}
