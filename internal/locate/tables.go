package locate

// roomPattern associates a canonical room name with the keywords that imply
// it. Patterns are tried in slice order and keywords in list order, so both
// orderings are part of the heuristic's behavior.
type roomPattern struct {
	room     string
	keywords []string
}

// roomKeywords drives the name-parsing strategies (entity id, friendly name,
// device name). Whole-word match, case-insensitive, first hit wins.
var roomKeywords = []roomPattern{
	{"bedroom", []string{"bedroom", "master", "guest", "kids", "child", "sleep"}},
	{"living room", []string{"living", "lounge", "family", "sitting", "den"}},
	{"kitchen", []string{"kitchen", "cook"}},
	{"bathroom", []string{"bathroom", "bath", "shower", "toilet", "ensuite", "washroom"}},
	{"office", []string{"office", "study"}},
	{"dining room", []string{"dining", "dinner"}},
	{"hallway", []string{"hallway", "hall", "corridor", "entrance", "entry", "foyer", "landing"}},
	{"garage", []string{"garage", "carport"}},
	{"laundry", []string{"laundry", "utility", "mudroom"}},
	{"garden", []string{"garden", "yard", "patio", "terrace", "balcony", "outdoor", "outside"}},
	{"basement", []string{"basement", "cellar"}},
	{"attic", []string{"attic", "loft"}},
}

// areaVariants folds alternative phrasings of a room onto its canonical
// form. Keys must already be lowercased with separators replaced by spaces;
// values must not themselves appear as keys (Normalize is idempotent).
var areaVariants = map[string]string{
	"family room":  "living room",
	"sitting room": "living room",
	"tv room":      "living room",
	"front room":   "living room",
	"lounge":       "living room",
	"den":          "living room",
	"utility room": "laundry",
	"laundry room": "laundry",
	"mudroom":      "laundry",
	"entryway":     "hallway",
	"entrance":     "hallway",
	"foyer":        "hallway",
	"hall":         "hallway",
	"wc":           "bathroom",
	"washroom":     "bathroom",
	"restroom":     "bathroom",
	"study":        "office",
}
