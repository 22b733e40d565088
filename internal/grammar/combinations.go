package grammar

import "strings"

// Combination is one location/device pair a grammar can express.
type Combination struct {
	Location string `json:"location"`
	Device   string `json:"device"`
}

// defaultLocation is used for compound device values with no location part.
const defaultLocation = "default"

// Combinations enumerates the location/device pairs a parsed grammar can
// express. With separate location and device rules it is their cross
// product. With only a compound device rule ("bedroom lights"), each value
// splits on its last space into location and device type; values with no
// space get the literal "default" location.
func Combinations(g Parsed) []Combination {
	devices, hasDevices := g["device"]
	if !hasDevices {
		return nil
	}

	if locations, ok := g["location"]; ok {
		combos := make([]Combination, 0, len(locations)*len(devices))
		for _, loc := range locations {
			for _, dev := range devices {
				combos = append(combos, Combination{Location: loc, Device: dev})
			}
		}
		return combos
	}

	combos := make([]Combination, 0, len(devices))
	for _, dev := range devices {
		if i := strings.LastIndex(dev, " "); i >= 0 {
			combos = append(combos, Combination{Location: dev[:i], Device: dev[i+1:]})
		} else {
			combos = append(combos, Combination{Location: defaultLocation, Device: dev})
		}
	}
	return combos
}
