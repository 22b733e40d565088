package hub

import "strings"

// Entity is one controllable or observable unit reported by the hub,
// identified by "domain.object_id" (e.g. "light.bedroom_lamp").
//
// Entities are read-only input: the pipeline never mutates them.
type Entity struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Domain returns the entity id prefix before the first dot
// (e.g. "light" for "light.bedroom_lamp"). Empty if the id is malformed.
func (e Entity) Domain() string {
	domain, _, ok := strings.Cut(e.EntityID, ".")
	if !ok {
		return ""
	}
	return domain
}

// FriendlyName returns the friendly_name attribute, or "" if absent.
func (e Entity) FriendlyName() string {
	return e.stringAttribute("friendly_name")
}

// DeviceClass returns the device_class attribute, or "" if absent.
func (e Entity) DeviceClass() string {
	return e.stringAttribute("device_class")
}

func (e Entity) stringAttribute(key string) string {
	v, ok := e.Attributes[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RegistryEntry is one entity registry record: the link from an entity to
// its owning device and, when assigned, directly to an area.
type RegistryEntry struct {
	EntityID string `json:"entity_id"`
	DeviceID string `json:"device_id"`
	AreaID   string `json:"area_id"`
}

// DeviceEntry is one device registry record. Name is the integration-given
// name; NameByUser, when set, is the user's override and takes precedence.
type DeviceEntry struct {
	ID         string `json:"id"`
	AreaID     string `json:"area_id"`
	Name       string `json:"name"`
	NameByUser string `json:"name_by_user"`
}

// DisplayName returns the user-given device name if set, else the
// integration-given name.
func (d DeviceEntry) DisplayName() string {
	if d.NameByUser != "" {
		return d.NameByUser
	}
	return d.Name
}

// Area is one area registry record.
type Area struct {
	AreaID string `json:"area_id"`
	Name   string `json:"name"`
}

// Dump is one snapshot of everything the hub knows: all entity states plus
// the three registries. It is assembled by FetchDump and never mutated
// afterwards; one pipeline run consumes exactly one Dump.
type Dump struct {
	States         []Entity        `json:"states"`
	EntityRegistry []RegistryEntry `json:"entity_registry"`
	DeviceRegistry []DeviceEntry   `json:"device_registry"`
	Areas          []Area          `json:"areas"`
}
