package classify

import (
	"sort"
	"strings"

	"github.com/nerrad567/gray-logic-voice/internal/hub"
)

// Classify maps one discovered entity (plus its hub domain) to a canonical
// device type. The second return is false when the entity should not surface
// in the vocabulary at all: unsupported domain, or a generic switch with no
// light indicator. Exclusion is a valid outcome, never an error.
func Classify(e hub.Entity, domain string) (DeviceType, bool) {
	if dt, ok := staticDomainTypes[domain]; ok {
		return dt, true
	}

	switch domain {
	case DomainMediaPlayer:
		if matchesAny(e, tvIndicators) {
			return DeviceTypeTV, true
		}
		if matchesAny(e, musicIndicators) {
			return DeviceTypeMusic, true
		}
		// Unrecognized media players are assumed to be audio devices.
		return DeviceTypeMusic, true

	case DomainSwitch:
		if matchesAny(e, switchLightIndicators) {
			return DeviceTypeLights, true
		}
		// Generic relays (pumps, sockets, valves) are not voice-surfaced.
		return "", false

	case DomainCover:
		if matchesAny(e, coverSwitchIndicators) {
			return DeviceTypeSwitch, true
		}
		return DeviceTypeBlinds, true

	case DomainInputButton:
		// Scene-named or not ("good night", "morning mode", ...), every
		// input button acts as a scene trigger.
		return DeviceTypeScene, true
	}

	return "", false
}

// matchesAny reports whether any keyword appears, case-insensitively, in the
// entity id, friendly name, or device class. Keywords are tried in order so
// the tables' precedence is preserved.
func matchesAny(e hub.Entity, keywords []string) bool {
	haystacks := []string{
		strings.ToLower(e.EntityID),
		strings.ToLower(e.FriendlyName()),
		strings.ToLower(e.DeviceClass()),
	}
	for _, kw := range keywords {
		for _, h := range haystacks {
			if h != "" && strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}

// ActionsFor returns the deduplicated action list for a device type: the
// union of the action lists of every hub domain that can produce that type.
// First-seen order is preserved (light actions before inherited switch
// actions for lights, and so on).
func ActionsFor(dt DeviceType) []string {
	seen := make(map[string]bool)
	var actions []string
	for _, domain := range typeDomains[dt] {
		for _, a := range domainActions[domain] {
			if !seen[a] {
				seen[a] = true
				actions = append(actions, a)
			}
		}
	}
	return actions
}

// AllActions returns the sorted, deduplicated union of every supported
// domain's actions. This is the vocabulary-wide action list.
func AllActions() []string {
	seen := make(map[string]bool)
	var actions []string
	for _, list := range domainActions {
		for _, a := range list {
			if !seen[a] {
				seen[a] = true
				actions = append(actions, a)
			}
		}
	}
	sort.Strings(actions)
	return actions
}

// SupportedDomains returns the set of hub domains the classifier understands.
// Used as a cheap pre-filter before classification is attempted.
func SupportedDomains() map[string]bool {
	domains := make(map[string]bool, len(staticDomainTypes)+4)
	for d := range staticDomainTypes {
		domains[d] = true
	}
	domains[DomainMediaPlayer] = true
	domains[DomainSwitch] = true
	domains[DomainCover] = true
	domains[DomainInputButton] = true
	return domains
}
