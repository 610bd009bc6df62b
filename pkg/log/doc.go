// Package log is the logging abstraction used across bankdomain.
//
// Library packages accept a [Logger] and default to [NoopLogger], so they
// stay silent unless the caller opts in. The CLI and long-running hosts wire
// the zerolog adapter:
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//
// Any other logging library can be plugged in by implementing the four
// level methods of [Logger].
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
