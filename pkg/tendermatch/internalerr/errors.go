package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrInvalidInput marks unreadable or empty document text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoProvider marks a pipeline run with no text-generation provider configured.
	ErrNoProvider = errors.New("no provider configured")
	// ErrProvider marks exhaustion of the configured provider chain.
	ErrProvider = errors.New("provider failed")
	// ErrValidation marks provider output that failed schema checks with no safe default.
	ErrValidation = errors.New("invalid provider output")
)
