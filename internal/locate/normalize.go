package locate

import "strings"

// Normalize converts a raw area name to its canonical lowercase form:
// lowercase, separators replaced by spaces, known variants folded onto one
// canonical room name. Unrecognized names pass through unchanged and act as
// new canonical locations. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), " ")

	if canonical, ok := areaVariants[s]; ok {
		return canonical
	}
	return s
}
