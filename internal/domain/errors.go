package domain

import "errors"

// Domain errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidProxyRule is returned when a rule has a malformed prefix or target.
	ErrInvalidProxyRule = errors.New("chatshell: invalid proxy rule")

	// ErrDuplicatePrefix is returned when two rules declare the same prefix.
	ErrDuplicatePrefix = errors.New("chatshell: duplicate proxy prefix")

	// ErrOverlappingPrefix is returned when one prefix is a string prefix of another.
	ErrOverlappingPrefix = errors.New("chatshell: overlapping proxy prefixes")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("chatshell: invalid configuration")

	// ErrAlreadyRunning is returned when Start() is called on a running server.
	ErrAlreadyRunning = errors.New("chatshell: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped server.
	ErrNotRunning = errors.New("chatshell: not running")

	// ErrUnsafeOutDir is returned when the build output directory would
	// contain the working directory.
	ErrUnsafeOutDir = errors.New("chatshell: unsafe output directory")
)
