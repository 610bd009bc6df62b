// Package bankdomain parses, validates and formats Swedish bank account
// numbers against the embedded clearing number catalog.
//
// Example usage:
//
//	acct, err := bankdomain.Parse("8129-9, 043 386 711-6")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(acct.BankName(), bankdomain.Format(acct, bankdomain.StylePretty))
//
// Use pkg/bankdomain for a long running service with a replaceable catalog.
package bankdomain

import (
	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/catalog"
)

// BankAccountNumber is a validated clearing and account number pair.
type BankAccountNumber = account.BankAccountNumber

// ValidationError carries the failure kind and the offending input.
// Use errors.Is with the Err* values to classify it.
type ValidationError = account.ValidationError

// Style selects an output layout.
type Style = account.Style

// Catalog is the immutable bank and clearing range table.
type Catalog = catalog.Catalog

// Output styles accepted by Format.
const (
	StyleDefault = account.StyleDefault
	StylePretty  = account.StylePretty
)

// Failure kinds returned by Parse and ParseNumbers. Match them with errors.Is.
var (
	ErrMalformedInput        = account.ErrMalformedInput
	ErrInvalidClearingNumber = account.ErrInvalidClearingNumber
	ErrInvalidAccountNumber  = account.ErrInvalidAccountNumber
	ErrUnknownScheme         = account.ErrUnknownScheme
	ErrChecksum              = account.ErrChecksum
	ErrContractViolation     = account.ErrContractViolation
)

// Parse reads free form text such as "8129-9,043 386 711-6".
func Parse(text string) (BankAccountNumber, error) {
	return account.Parse(catalog.Default(), text)
}

// ParseNumbers validates an account given as numeric clearing and account
// parts. Leading zeros of the account part are lost in this form.
func ParseNumbers(clearing int, acct int64) (BankAccountNumber, error) {
	return account.ParseNumbers(catalog.Default(), clearing, acct)
}

// IsValid reports whether text is a valid account number.
func IsValid(text string) bool {
	return account.IsValid(catalog.Default(), text)
}

// Format renders b in style. The zero value renders as "".
func Format(b BankAccountNumber, style Style) string {
	return account.Format(b, style)
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	return catalog.Default()
}
