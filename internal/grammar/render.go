package grammar

import (
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-voice/internal/vocabulary"
)

// Render serializes a vocabulary mapping into GBNF grammar text. The root
// rule forces a JSON object with mandatory device/action fields and optional
// location/value fields; the device, action, and location rules enumerate
// the vocabulary so the engine can only ever emit permitted values.
//
// Render and Extractor round-trip: parsing rendered text recovers exactly
// the vocabulary lists under the "device", "action", and "location" rules.
func Render(m *vocabulary.Mapping) string {
	var b strings.Builder

	b.WriteString("# Generated from the current discovery cycle. Do not edit.\n")
	b.WriteString(`root ::= "{" space devicekv "," space actionkv ("," space locationkv)? ("," space valuekv)? space "}"` + "\n")
	b.WriteString(`devicekv ::= "\"device\":" space "\"" device "\""` + "\n")
	b.WriteString(`actionkv ::= "\"action\":" space "\"" action "\""` + "\n")
	b.WriteString(`locationkv ::= "\"location\":" space ("\"" location "\"" | "null")` + "\n")
	b.WriteString(`valuekv ::= "\"value\":" space ("\"" valuetext "\"" | "null")` + "\n")

	devices := make([]string, 0, len(m.Vocabulary.Devices))
	for _, dt := range m.Vocabulary.Devices {
		devices = append(devices, string(dt))
	}
	writeAlternation(&b, "device", devices)
	writeAlternation(&b, "action", m.Vocabulary.Actions)
	writeAlternation(&b, "location", m.Vocabulary.Locations)

	b.WriteString("valuetext ::= [a-zA-Z0-9 .%-]+\n")
	b.WriteString(`space ::= " "?` + "\n")
	return b.String()
}

// writeAlternation emits one rule as an alternation of quoted literals.
func writeAlternation(b *strings.Builder, name string, values []string) {
	b.WriteString(name)
	b.WriteString(" ::= ")
	for i, v := range values {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(b, "%q", v)
	}
	b.WriteString("\n")
}
