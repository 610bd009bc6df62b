// Package account parses, validates and formats Swedish bank account
// numbers.
//
// A [BankAccountNumber] combines a [ClearingNumber] and an [AccountNumber]
// with the bank and scheme the clearing number resolves to in a
// [catalog.Catalog]. Values are only handed out after the scheme's checksum
// has passed, so holding one means the number is valid.
//
// # Parsing
//
//	b, err := account.Parse(nil, "8129-9,043 386 711-6")
//	if errors.Is(err, account.ErrChecksum) {
//		// typo in the number
//	}
//
// A nil catalog means [catalog.Default]. Every failure is a
// [*ValidationError] that matches one of the sentinel errors through
// [errors.Is].
//
// # Formatting
//
// [Format] renders either the canonical default form or the bank's own
// pretty layout:
//
//	account.Format(b, account.StylePretty)  // 8129-9,043 386 711-6
//	account.Format(b, account.StyleDefault) // 8129900433867116
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package account
