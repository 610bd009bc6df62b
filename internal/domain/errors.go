package domain

import "errors"

// Errors returned by the service host. Check them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("bankdomain: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("bankdomain: not running")

	// ErrShutdownTimeout is returned when in-flight work outlives the shutdown timeout.
	ErrShutdownTimeout = errors.New("bankdomain: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("bankdomain: invalid configuration")
)
