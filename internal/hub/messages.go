package hub

import "encoding/json"

// WebSocket API message types.
const (
	msgTypeAuthRequired = "auth_required"
	msgTypeAuth         = "auth"
	msgTypeAuthOK       = "auth_ok"
	msgTypeAuthInvalid  = "auth_invalid"
	msgTypeResult       = "result"
)

// Commands used to assemble a discovery dump.
const (
	cmdGetStates          = "get_states"
	cmdEntityRegistryList = "config/entity_registry/list"
	cmdDeviceRegistryList = "config/device_registry/list"
	cmdAreaRegistryList   = "config/area_registry/list"
)

// authMessage is the client half of the auth handshake.
type authMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

// commandMessage is an id-correlated request.
type commandMessage struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// serverMessage is the envelope for everything the hub sends. Result is kept
// raw so each command can decode its own payload shape.
type serverMessage struct {
	ID      int             `json:"id"`
	Type    string          `json:"type"`
	Success *bool           `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *serverError    `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// serverError is the error payload on a failed command result.
type serverError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
