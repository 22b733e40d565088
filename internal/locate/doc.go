// Package locate infers which room an entity physically lives in.
//
// Resolution is a strict-priority fallback chain over registry data and name
// heuristics; the first strategy to produce a location wins and no merging or
// voting happens across strategies:
//
//  1. entity_area: the entity's own area assignment
//  2. device_area: the owning device's area assignment
//  3. entity_id_parse: room keywords in the entity id
//  4. friendly_name_parse: room keywords in the friendly name
//  5. device_info_parse: room keywords in the registry device name
//
// An entity with no resolvable location is a normal outcome, reported as "".
//
// All area names pass through Normalize, which folds regional variants
// ("family room", "sitting room") onto one canonical form. Unrecognized names
// survive normalization unchanged and become de-facto canonical locations.
//
// The room keyword and variant tables are configuration data, kept apart
// from the matching algorithm.
package locate
