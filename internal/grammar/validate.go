package grammar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAllowed is the sentinel wrapped by every validation failure.
//
//	if errors.Is(err, grammar.ErrNotAllowed) { ... }
var ErrNotAllowed = errors.New("grammar: value not allowed")

// heuristicVocabularies drives the non-JSON fallback scan: words that look
// like they belong to a rule. A word is flagged only when it appears here
// for a rule but is absent from that rule's actual allowed values, so the
// scan can never reject vocabulary the grammar genuinely permits.
var heuristicVocabularies = map[string][]string{
	"device": {
		"lights", "thermostat", "fan", "blinds", "tv", "music",
		"alarm", "switch", "scene", "automation",
	},
	"location": {
		"kitchen", "bedroom", "bathroom", "office", "garage", "hallway",
		"garden", "basement", "attic", "laundry",
	},
	// Single-word actions only: validateWords splits on non-alphanumerics,
	// so multi-word actions ("turn on", "volume up") can never match a
	// scanned word and would be dead entries here.
	"action": {
		"toggle", "open", "close", "play", "pause", "stop",
		"mute", "arm", "disarm", "trigger", "press",
	},
}

// Validate checks raw engine output against a parsed grammar. A nil return
// means valid. An empty grammar means "no constraints" and always passes.
//
// Structured output (a JSON object) is validated field by field against the
// same-named rules; unstructured output falls back to a per-word heuristic
// scan.
func Validate(output string, g Parsed) error {
	if len(g) == 0 {
		return nil
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &record); err == nil {
		return validateRecord(record, g)
	}
	return validateWords(output, g)
}

// validateRecord checks each present field against its rule, if one exists.
func validateRecord(record map[string]any, g Parsed) error {
	for field, raw := range record {
		allowed, ok := g[field]
		if !ok {
			continue
		}
		value, ok := stringValue(raw)
		if !ok {
			continue // null and non-scalar values are not rule-bound
		}
		if !contains(allowed, value) {
			return fmt.Errorf("%w: field %q has value %q", ErrNotAllowed, field, value)
		}
	}
	return nil
}

// validateWords is the fallback scan for output that is not a JSON record.
func validateWords(output string, g Parsed) error {
	words := strings.FieldsFunc(strings.ToLower(output), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	for _, word := range words {
		for rule, heuristic := range heuristicVocabularies {
			allowed, ok := g[rule]
			if !ok {
				continue
			}
			if contains(heuristic, word) && !contains(allowed, word) {
				return fmt.Errorf("%w: word %q looks like a %s but is not permitted", ErrNotAllowed, word, rule)
			}
		}
	}
	return nil
}

// stringValue renders a scalar JSON value for comparison against rule
// literals. Numbers compare by their JSON text.
func stringValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		b, _ := json.Marshal(val)
		return string(b), true
	case bool:
		if val {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
