package engine

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrUnavailable indicates the engine server could not be reached.
	ErrUnavailable = errors.New("engine: server unavailable")

	// ErrRequestFailed indicates the engine returned a non-200 response.
	ErrRequestFailed = errors.New("engine: request failed")

	// ErrEmptyCompletion indicates the engine returned no content.
	ErrEmptyCompletion = errors.New("engine: empty completion")
)
