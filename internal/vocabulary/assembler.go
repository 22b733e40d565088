package vocabulary

import (
	"sort"

	"github.com/nerrad567/gray-logic-voice/internal/classify"
	"github.com/nerrad567/gray-logic-voice/internal/hub"
	"github.com/nerrad567/gray-logic-voice/internal/locate"
)

// BuildMapping assembles the full vocabulary mapping from one discovery
// dump. Pure function: no side effects beyond the returned structure. A nil
// or malformed dump degrades to empty sub-structures.
func BuildMapping(dump *hub.Dump) *Mapping {
	tables := locate.BuildTables(dump)

	var entities []hub.Entity
	if dump != nil {
		entities = dump.States
	}

	entityMappings := locate.BuildLocationMapping(entities, tables)

	// Locations discovered through entity resolution, beyond the hub's own
	// area list.
	discovered := make([]string, 0, len(entityMappings))
	for loc := range entityMappings {
		discovered = append(discovered, loc)
	}
	sort.Strings(discovered)

	m := &Mapping{
		Vocabulary: Vocabulary{
			Devices:   classify.AllDeviceTypes(),
			Actions:   classify.AllActions(),
			Locations: buildLocations(dump, discovered),
		},
		DeviceActions:   buildDeviceActions(),
		DeviceLocations: buildDeviceLocations(entityMappings),
		EntityMappings:  entityMappings,
		ServiceMappings: serviceMappings,
	}
	return m
}

// buildLocations assembles the location vocabulary: the sentinels first,
// then every hub area display name (occupied or not), then every discovered
// location not already present.
func buildLocations(dump *hub.Dump, discovered []string) []string {
	locations := []string{locate.LocationAll, locate.LocationEverywhere}
	seen := map[string]bool{locate.LocationAll: true, locate.LocationEverywhere: true}

	if dump != nil {
		for _, area := range dump.Areas {
			loc := locate.Normalize(area.Name)
			if loc == "" || seen[loc] {
				continue
			}
			seen[loc] = true
			locations = append(locations, loc)
		}
	}
	for _, loc := range discovered {
		if !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
	}
	return locations
}

// buildDeviceActions indexes allowed actions for every device type,
// regardless of whether any entities of that type were discovered.
func buildDeviceActions() map[classify.DeviceType][]string {
	actions := make(map[classify.DeviceType][]string)
	for _, dt := range classify.AllDeviceTypes() {
		actions[dt] = classify.ActionsFor(dt)
	}
	return actions
}

// buildDeviceLocations indexes which device types are present per location.
// The sentinel locations accumulate the union of every type seen anywhere.
func buildDeviceLocations(entityMappings map[string]map[classify.DeviceType][]string) map[string][]classify.DeviceType {
	perLocation := make(map[string][]classify.DeviceType, len(entityMappings)+2)
	unionSeen := make(map[classify.DeviceType]bool)
	var union []classify.DeviceType

	locs := make([]string, 0, len(entityMappings))
	for loc := range entityMappings {
		locs = append(locs, loc)
	}
	sort.Strings(locs)

	for _, loc := range locs {
		byType := entityMappings[loc]
		types := make([]classify.DeviceType, 0, len(byType))
		for _, dt := range classify.AllDeviceTypes() {
			if _, ok := byType[dt]; ok {
				types = append(types, dt)
				if !unionSeen[dt] {
					unionSeen[dt] = true
					union = append(union, dt)
				}
			}
		}
		perLocation[loc] = types
	}

	perLocation[locate.LocationAll] = union
	perLocation[locate.LocationEverywhere] = union
	return perLocation
}
