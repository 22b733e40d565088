package command

import "strings"

// defaultLocationSynonyms expands colloquial whole-house phrasings onto the
// vocabulary's location sentinels. The first expansion entry is the one a
// normalized command carries; the rest document equivalent targets for the
// dispatcher. Configuration data, kept apart from the matching logic.
var defaultLocationSynonyms = map[string][]string{
	"all rooms":    {"all", "everywhere"},
	"every room":   {"all", "everywhere"},
	"house":        {"all", "everywhere"},
	"whole house":  {"all", "everywhere"},
	"entire house": {"all", "everywhere"},
	"anywhere":     {"everywhere", "all"},
}

// Normalizer normalizes the location field of extracted commands against
// one discovery cycle's vocabulary. Construct a fresh Normalizer per cycle;
// instances are immutable and safe for concurrent use.
type Normalizer struct {
	locations []string
	synonyms  map[string][]string
}

// NewNormalizer creates a Normalizer for the given known locations.
func NewNormalizer(locations []string) *Normalizer {
	return &Normalizer{
		locations: locations,
		synonyms:  defaultLocationSynonyms,
	}
}

// NormalizeLocation maps a raw location token onto the vocabulary:
// a case-insensitive match returns the canonically-cased member, a synonym
// returns its first expansion, and anything else passes through unchanged.
func (n *Normalizer) NormalizeLocation(raw string) string {
	trimmed := strings.TrimSpace(raw)

	for _, loc := range n.locations {
		if strings.EqualFold(trimmed, loc) {
			return loc
		}
	}
	if expansion, ok := n.synonyms[strings.ToLower(trimmed)]; ok && len(expansion) > 0 {
		return expansion[0]
	}
	return raw
}

// Process extracts a command from raw engine output and normalizes its
// location field. Device, action, and value are passed through untouched.
// Returns nil when no command can be recovered; callers must treat nil as
// "command unrecognized", not as a system error.
func (n *Normalizer) Process(raw string) *Command {
	cmd := Extract(raw)
	if cmd == nil {
		return nil
	}
	if cmd.Location != nil {
		normalized := n.NormalizeLocation(*cmd.Location)
		cmd.Location = &normalized
	}
	return cmd
}
