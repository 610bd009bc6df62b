// Package catalog holds the reference data that maps Swedish clearing
// numbers to banks and account number schemes.
//
// A [Catalog] is an ordered list of [Bank] values. Each bank declares one or
// more [Scheme] values, and each scheme owns the closed clearing number
// [Range] values it applies to. [Catalog.Resolve] walks banks in catalog
// order and schemes in declaration order; the first range containing the
// clearing number wins.
//
// # Sources
//
// Catalogs are built from the Bankgirot reference table, a semicolon
// separated file with the header
//
//	Clearingnummer;Deltagare;BIC;Kontonummerlängd;Typ;Anmärkning
//
// A copy of the table is embedded in the package and served by [Default].
// [ParseCSV] reads other copies, [ReadBinary] and [WriteBinary] handle the
// compiled msgpack form, and [LoadFile] picks the reader by file extension.
//
// # Concurrency
//
// A Catalog is read-only once built and safe for concurrent use. [Store]
// holds the current catalog behind an atomic pointer so that a reload can
// swap in a fresh snapshot while readers keep using the previous one.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package catalog
