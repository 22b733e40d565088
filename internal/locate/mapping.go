package locate

import (
	"github.com/nerrad567/gray-logic-voice/internal/classify"
	"github.com/nerrad567/gray-logic-voice/internal/hub"
)

// Sentinel location values that never identify a real room. They are valid
// in spoken commands ("turn off everything, everywhere") but are excluded
// from the per-room entity index.
const (
	LocationAll        = "all"
	LocationEverywhere = "everywhere"
	LocationUnknown    = "unknown"
)

// IsRoom reports whether loc names an actual room rather than a sentinel or
// nothing at all.
func IsRoom(loc string) bool {
	switch loc {
	case "", LocationAll, LocationEverywhere, LocationUnknown:
		return false
	}
	return true
}

// BuildLocationMapping classifies and locates every entity and indexes the
// survivors as location → device type → entity ids. Entities the classifier
// excludes, entities from unsupported domains, and entities without a real
// room are skipped.
func BuildLocationMapping(entities []hub.Entity, t Tables) map[string]map[classify.DeviceType][]string {
	supported := classify.SupportedDomains()
	mapping := make(map[string]map[classify.DeviceType][]string)

	for _, e := range entities {
		domain := e.Domain()
		if !supported[domain] {
			continue
		}
		dt, ok := classify.Classify(e, domain)
		if !ok {
			continue
		}
		loc := Resolve(e, t)
		if !IsRoom(loc) {
			continue
		}

		byType := mapping[loc]
		if byType == nil {
			byType = make(map[classify.DeviceType][]string)
			mapping[loc] = byType
		}
		byType[dt] = append(byType[dt], e.EntityID)
	}
	return mapping
}
