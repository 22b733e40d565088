package vocabulary

import "github.com/nerrad567/gray-logic-voice/internal/classify"

// Vocabulary is the complete set of values the generation engine is allowed
// to emit. Every value in any structured command must appear in exactly one
// of these lists (plus the "all"/"everywhere" location sentinels, which are
// always present in Locations).
type Vocabulary struct {
	Devices   []classify.DeviceType `json:"devices"`
	Actions   []string              `json:"actions"`
	Locations []string              `json:"locations"`
}

// Mapping is the full assembler output for one discovery cycle. Built once
// per cycle and never mutated afterwards; concurrent readers need no
// locking.
type Mapping struct {
	Vocabulary Vocabulary `json:"vocabulary"`

	// DeviceActions indexes the allowed actions per device type. Populated
	// for every type, entities or not.
	DeviceActions map[classify.DeviceType][]string `json:"device_actions"`

	// DeviceLocations indexes the device types actually present per
	// location. The "all" and "everywhere" sentinels carry the union of
	// every type seen anywhere.
	DeviceLocations map[string][]classify.DeviceType `json:"device_locations"`

	// EntityMappings indexes real entity ids as location → type → ids.
	// An entry exists only if at least one entity was classified as that
	// type and located in that room.
	EntityMappings map[string]map[classify.DeviceType][]string `json:"entity_mappings"`

	// ServiceMappings maps each natural-language action to the hub service
	// calls that can realize it. Fixed table, not derived from discovery.
	ServiceMappings map[string][]string `json:"service_mappings"`
}
