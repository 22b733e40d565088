package command

import (
	"encoding/json"
	"regexp"
	"strings"
)

// responseMarker delimits the generated output from any echoed prompt. When
// present, everything up to and including the last marker is discarded.
const responseMarker = "Assistant:"

// fieldPatterns are the strategy-B scrapers: one pattern per schema field,
// capturing either a quoted value or a bare null. Applied only after every
// balanced-brace candidate has failed JSON parsing; non-greedy within the
// quotes so a missing close quote cannot swallow the rest of the text.
var fieldPatterns = map[string]*regexp.Regexp{
	"device":   regexp.MustCompile(`(?i)"device"\s*:\s*(?:"((?:[^"\\]|\\.)*)"|(null))`),
	"location": regexp.MustCompile(`(?i)"location"\s*:\s*(?:"((?:[^"\\]|\\.)*)"|(null))`),
	"action":   regexp.MustCompile(`(?i)"action"\s*:\s*(?:"((?:[^"\\]|\\.)*)"|(null))`),
	"value":    regexp.MustCompile(`(?i)"value"\s*:\s*(?:"((?:[^"\\]|\\.)*)"|(null)|(-?[0-9]+(?:\.[0-9]+)?))`),
}

// Extract recovers a structured command from raw engine output, or nil when
// none can be recovered.
func Extract(raw string) *Command {
	text := stripMarker(raw)

	// Strategy A: every balanced-brace substring, in order of appearance,
	// first one that parses and validates wins.
	for _, candidate := range braceCandidates(text) {
		var record map[string]any
		if err := json.Unmarshal([]byte(candidate), &record); err != nil {
			continue
		}
		if cmd := fromRecord(record); cmd != nil {
			return cmd
		}
	}

	// Strategy B: per-field scraping of the raw text.
	return extractFields(text)
}

// stripMarker discards everything up to and including the last response
// marker, so an echoed prompt can never be mistaken for output.
func stripMarker(text string) string {
	if i := strings.LastIndex(text, responseMarker); i >= 0 {
		return text[i+len(responseMarker):]
	}
	return text
}

// braceCandidates returns every substring bounded by balanced braces, in
// order of the opening brace. Quoted strings are honoured so a brace inside
// a value cannot unbalance the scan. Nested objects are separate candidates.
func braceCandidates(text string) []string {
	var candidates []string

	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		if end := matchBrace(text, start); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}
	return candidates
}

// matchBrace finds the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip escaped char
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// extractFields recovers the schema fields independently by regex. Device
// and action must be present and non-null; the result is still run through
// the schema so strategy B can never return something strategy A would have
// rejected.
func extractFields(text string) *Command {
	record := make(map[string]any, len(fieldPatterns))
	for field, pattern := range fieldPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch {
		case m[1] != "":
			record[field] = unescapeJSON(m[1])
		case len(m) > 3 && m[3] != "": // bare numeric value
			record[field] = m[3]
		default:
			record[field] = nil
		}
	}
	return fromRecord(record)
}

// unescapeJSON resolves backslash escapes in a scraped quoted value.
func unescapeJSON(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var decoded string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &decoded); err != nil {
		return s
	}
	return decoded
}
