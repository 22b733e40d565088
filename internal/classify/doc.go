// Package classify maps raw hub entities onto the small canonical set of
// device types the voice vocabulary is built from.
//
// Most hub domains map straight through a static table (light → lights,
// climate → thermostat). Four domains are ambiguous and are disambiguated by
// ordered keyword matching over the entity id, friendly name, and device
// class: media_player (tv vs music), switch (relays driving lights vs generic
// relays), cover (garage doors vs blinds), and input_button (scene triggers).
//
// Exclusion is a normal outcome, not an error: a generic switch or an
// unsupported domain simply never surfaces in the vocabulary.
//
// The keyword tables in tables.go are configuration data. Tuning which words
// make a media_player a TV must not require touching the matching logic.
package classify
