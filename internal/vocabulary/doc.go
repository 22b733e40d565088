// Package vocabulary assembles the permitted command vocabulary from one
// discovery dump.
//
// BuildMapping drives the classifier and location resolver over every
// entity and produces the full Mapping: the vocabulary itself (device types,
// actions, locations), the per-room entity index, the per-type action index,
// and the static action → hub service call table.
//
// The device type list is always the full enumeration and the action list is
// always the full domain union, regardless of what was discovered, so the
// generation grammar stays stable across discovery cycles. Only locations
// grow with discovery.
//
// BuildMapping is a pure function of its input plus the fixed tables, and it
// degrades: a malformed or empty dump produces empty sub-structures, never
// an error. One corrupt area entry must not abort assembly of the rest.
package vocabulary
