package locate

import (
	"strings"

	"github.com/nerrad567/gray-logic-voice/internal/hub"
)

// Tables are the registry lookup structures resolution runs against. They
// are built once per discovery dump and are read-only for a pipeline run.
type Tables struct {
	EntityArea   map[string]string // entity_id → area_id
	DeviceArea   map[string]string // device_id → area_id
	AreaNames    map[string]string // area_id → display name
	EntityDevice map[string]string // entity_id → owning device_id
	DeviceNames  map[string]string // device_id → registry device name
}

// BuildTables derives the lookup tables from a discovery dump. Duplicate
// keys are last-write-wins, matching how the hub itself resolves registry
// conflicts. A nil or partially-populated dump yields empty tables rather
// than an error; downstream resolution simply falls through to the
// name-parsing strategies.
func BuildTables(dump *hub.Dump) Tables {
	t := Tables{
		EntityArea:   make(map[string]string),
		DeviceArea:   make(map[string]string),
		AreaNames:    make(map[string]string),
		EntityDevice: make(map[string]string),
		DeviceNames:  make(map[string]string),
	}
	if dump == nil {
		return t
	}

	for _, entry := range dump.EntityRegistry {
		if entry.EntityID == "" {
			continue
		}
		if entry.AreaID != "" {
			t.EntityArea[entry.EntityID] = entry.AreaID
		}
		if entry.DeviceID != "" {
			t.EntityDevice[entry.EntityID] = entry.DeviceID
		}
	}
	for _, dev := range dump.DeviceRegistry {
		if dev.ID == "" {
			continue
		}
		if dev.AreaID != "" {
			t.DeviceArea[dev.ID] = dev.AreaID
		}
		if name := dev.DisplayName(); name != "" {
			t.DeviceNames[dev.ID] = name
		}
	}
	for _, area := range dump.Areas {
		if area.AreaID != "" {
			t.AreaNames[area.AreaID] = area.Name
		}
	}
	return t
}

// strategy is one step of the fallback chain: a pure function that either
// produces a canonical location or "".
type strategy struct {
	name string
	fn   func(e hub.Entity, t Tables) string
}

// strategies is the fallback chain in strict priority order. Registry
// assignments always beat name heuristics.
var strategies = []strategy{
	{"entity_area", resolveEntityArea},
	{"device_area", resolveDeviceArea},
	{"entity_id_parse", resolveEntityIDParse},
	{"friendly_name_parse", resolveFriendlyNameParse},
	{"device_info_parse", resolveDeviceInfoParse},
}

// Resolve returns the entity's canonical location, or "" if no strategy
// succeeds. "" is a valid outcome, not an error.
func Resolve(e hub.Entity, t Tables) string {
	loc, _ := ResolveWithStrategy(e, t)
	return loc
}

// ResolveWithStrategy additionally names the strategy that produced the
// location, for debug logging and the command audit trail.
func ResolveWithStrategy(e hub.Entity, t Tables) (location, strategyName string) {
	for _, s := range strategies {
		if loc := s.fn(e, t); loc != "" {
			return loc, s.name
		}
	}
	return "", ""
}

// resolveEntityArea: the entity registry assigns the entity to an area
// directly.
func resolveEntityArea(e hub.Entity, t Tables) string {
	areaID := t.EntityArea[e.EntityID]
	if areaID == "" {
		return ""
	}
	name := t.AreaNames[areaID]
	if name == "" {
		return ""
	}
	return Normalize(name)
}

// resolveDeviceArea: the entity's owning device is assigned to an area.
func resolveDeviceArea(e hub.Entity, t Tables) string {
	deviceID := t.EntityDevice[e.EntityID]
	if deviceID == "" {
		return ""
	}
	areaID := t.DeviceArea[deviceID]
	if areaID == "" {
		return ""
	}
	name := t.AreaNames[areaID]
	if name == "" {
		return ""
	}
	return Normalize(name)
}

// resolveEntityIDParse: room keywords in the entity id
// (light.bedroom_lamp → bedroom).
func resolveEntityIDParse(e hub.Entity, _ Tables) string {
	return matchRoomKeywords(e.EntityID)
}

// resolveFriendlyNameParse: room keywords in the friendly name.
func resolveFriendlyNameParse(e hub.Entity, _ Tables) string {
	return matchRoomKeywords(e.FriendlyName())
}

// resolveDeviceInfoParse: room keywords in the registry's free-text device
// name, when the entity has an owning device.
func resolveDeviceInfoParse(e hub.Entity, t Tables) string {
	deviceID := t.EntityDevice[e.EntityID]
	if deviceID == "" {
		return ""
	}
	return matchRoomKeywords(t.DeviceNames[deviceID])
}

// matchRoomKeywords scans text for the first room keyword hit. Separators
// are flattened to spaces first so entity ids ("light.living_room_lamp")
// match keywords the same way friendly names do. Keywords match whole words
// only: "den" must not fire inside "garden".
func matchRoomKeywords(text string) string {
	if text == "" {
		return ""
	}
	haystack := strings.ToLower(text)
	haystack = strings.ReplaceAll(haystack, "_", " ")
	haystack = strings.ReplaceAll(haystack, "-", " ")
	haystack = strings.ReplaceAll(haystack, ".", " ")
	haystack = " " + haystack + " "

	for _, p := range roomKeywords {
		for _, kw := range p.keywords {
			if strings.Contains(haystack, " "+kw+" ") {
				return p.room
			}
		}
	}
	return ""
}
