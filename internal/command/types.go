package command

import (
	"encoding/json"
	"strings"
)

// Command is the validated structured command surfaced to the dispatcher.
// Device and Action are always non-empty; Location and Value are nil when
// the utterance did not specify them.
type Command struct {
	Device   string  `json:"device"`
	Location *string `json:"location,omitempty"`
	Action   string  `json:"action"`
	Value    *string `json:"value,omitempty"`
}

// fromRecord builds a Command from a decoded JSON object, enforcing the
// schema: device and action required non-empty strings, location and value
// optional strings (null and absent are equivalent). Returns nil when the
// record does not satisfy the schema.
func fromRecord(record map[string]any) *Command {
	device, ok := requiredField(record, "device")
	if !ok {
		return nil
	}
	action, ok := requiredField(record, "action")
	if !ok {
		return nil
	}

	cmd := &Command{Device: device, Action: action}
	cmd.Location = optionalField(record, "location")
	cmd.Value = optionalField(record, "value")
	return cmd
}

// requiredField fetches a mandatory string field. Empty, missing, literal
// "null", and non-string values all fail.
func requiredField(record map[string]any, key string) (string, bool) {
	raw, ok := record[key]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return "", false
	}
	return s, true
}

// optionalField fetches an optional field. Absent, null, empty, and literal
// "null" map to nil; numbers are kept by their JSON text (the engine
// sometimes emits {"value": 72} instead of {"value": "72"}).
func optionalField(record map[string]any, key string) *string {
	raw, ok := record[key]
	if !ok || raw == nil {
		return nil
	}

	var s string
	switch val := raw.(type) {
	case string:
		s = strings.TrimSpace(val)
	case float64:
		b, _ := json.Marshal(val)
		s = string(b)
	default:
		return nil
	}

	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}
