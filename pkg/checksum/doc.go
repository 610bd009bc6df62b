// Package checksum implements the weighted-digit checks used by Swedish
// clearing and account numbers.
//
// # Algorithms
//
//   - [Mod10]: Luhn check. Every second digit from the right is doubled
//     and digit-summed before adding.
//   - [Mod11]: the last digit is a check digit over the remaining digits,
//     weighted 2..10 then 1 from the right.
//
// Both functions are pure and safe for concurrent use.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package checksum
