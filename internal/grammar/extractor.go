package grammar

import (
	"regexp"
	"strings"
	"sync"
)

// Parsed is the rule-name → allowed-values table recovered from grammar
// text. Only rules that contributed at least one quoted literal appear;
// pure composition rules are omitted.
type Parsed map[string][]string

// ruleRegex matches one line-oriented rule definition: a non-terminal name,
// the ::= operator, then the body up to end of line.
var ruleRegex = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9_-]*)\s*::=\s*(.*)$`)

// literalRegex matches one double-quoted literal, honouring backslash
// escapes inside it.
var literalRegex = regexp.MustCompile(`"((?:\\.|[^"\\])*)"`)

// Extractor parses grammar text and caches the result per grammar source.
// The cache lives for the lifetime of the Extractor and is invalidated only
// by Reload, never automatically.
//
// Thread Safety: all methods are safe for concurrent use.
type Extractor struct {
	mu    sync.RWMutex
	cache map[string]Parsed
}

// NewExtractor creates an Extractor with an empty cache. Construct one per
// consumer that needs isolated cache state (tests in particular).
func NewExtractor() *Extractor {
	return &Extractor{cache: make(map[string]Parsed)}
}

// Parse recovers the rule → literals table from grammar text. Repeated calls
// with the same text return the cached result without re-parsing.
func (x *Extractor) Parse(text string) Parsed {
	x.mu.RLock()
	cached, ok := x.cache[text]
	x.mu.RUnlock()
	if ok {
		return cached
	}
	return x.Reload(text)
}

// Reload re-parses grammar text unconditionally and replaces the cache
// entry. Use after the grammar for a given source has been regenerated.
func (x *Extractor) Reload(text string) Parsed {
	parsed := parse(text)
	x.mu.Lock()
	x.cache[text] = parsed
	x.mu.Unlock()
	return parsed
}

// parse is the deterministic, cache-free parser.
func parse(text string) Parsed {
	parsed := make(Parsed)

	for _, line := range strings.Split(text, "\n") {
		// Rule bodies end at end-of-line or a comment marker.
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}

		m := ruleRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, body := m[1], m[2]

		values := extractLiterals(body)
		if len(values) > 0 {
			parsed[name] = values
		}
	}
	return parsed
}

// extractLiterals pulls every double-quoted literal out of a rule body,
// preserving first-seen order and dropping duplicates.
func extractLiterals(body string) []string {
	var values []string
	seen := make(map[string]bool)

	for _, m := range literalRegex.FindAllStringSubmatch(body, -1) {
		v := unescape(m[1])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// unescape resolves the backslash escapes GBNF uses inside quoted literals.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default: // \" \\ and anything unknown pass through literally
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
