package assist

import "errors"

// Sentinel errors for pipeline operations.
var (
	// ErrNotReady indicates no vocabulary snapshot has been built yet.
	ErrNotReady = errors.New("assist: vocabulary not ready, refresh required")

	// ErrExtractionFailed indicates no command could be recovered from
	// the engine output.
	ErrExtractionFailed = errors.New("assist: could not extract command from engine output")
)
