package hub

import "errors"

// Sentinel errors for hub operations.
//
// These can be checked with errors.Is():
//
//	if errors.Is(err, hub.ErrAuthFailed) {
//	    // token rejected; re-check configuration
//	}
var (
	// ErrNotConnected indicates the client has no active connection.
	ErrNotConnected = errors.New("hub: not connected")

	// ErrAuthFailed indicates the hub rejected the access token.
	ErrAuthFailed = errors.New("hub: authentication failed")

	// ErrCommandFailed indicates the hub returned success=false for a command.
	ErrCommandFailed = errors.New("hub: command failed")

	// ErrTimeout indicates a command did not receive a response in time.
	ErrTimeout = errors.New("hub: command timed out")

	// ErrClosed indicates the connection was closed while waiting for a response.
	ErrClosed = errors.New("hub: connection closed")
)
