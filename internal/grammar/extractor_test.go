package grammar

import (
	"reflect"
	"testing"
)

const sampleGrammar = `
# Smart home command grammar
root ::= "{" space devicekv "," space actionkv space "}"
device ::= "lights" | "thermostat" | "tv"
action ::= "turn on" | "turn off" | "set"   # trailing comment
location ::= "kitchen" | "bedroom" | "kitchen"
composition ::= device | action
space ::= " "?
`

func TestParseRules(t *testing.T) {
	x := NewExtractor()
	g := x.Parse(sampleGrammar)

	if got := g["device"]; !reflect.DeepEqual(got, []string{"lights", "thermostat", "tv"}) {
		t.Errorf("device = %v", got)
	}
	if got := g["action"]; !reflect.DeepEqual(got, []string{"turn on", "turn off", "set"}) {
		t.Errorf("action (comment not stripped?) = %v", got)
	}
	// Duplicates removed, first-seen order preserved.
	if got := g["location"]; !reflect.DeepEqual(got, []string{"kitchen", "bedroom"}) {
		t.Errorf("location = %v", got)
	}
	// Pure composition rules contribute nothing.
	if _, ok := g["composition"]; ok {
		t.Error("literal-free rule should be omitted")
	}
}

func TestParseEscapedLiterals(t *testing.T) {
	x := NewExtractor()
	g := x.Parse(`devicekv ::= "\"device\":" space`)

	if got := g["devicekv"]; !reflect.DeepEqual(got, []string{`"device":`}) {
		t.Errorf("devicekv = %v", got)
	}
}

func TestParseGarbage(t *testing.T) {
	x := NewExtractor()
	for _, text := range []string{"", "not a grammar at all", "::= broken", "rule ::"} {
		if g := x.Parse(text); len(g) != 0 {
			t.Errorf("Parse(%q) = %v, want empty", text, g)
		}
	}
}

func TestParseCaching(t *testing.T) {
	x := NewExtractor()
	first := x.Parse(sampleGrammar)
	second := x.Parse(sampleGrammar)

	// Same map instance: the second call served from cache.
	if &first["device"][0] != &second["device"][0] {
		t.Error("repeated Parse should return the cached result")
	}

	reloaded := x.Reload(sampleGrammar)
	if !reflect.DeepEqual(first, reloaded) {
		t.Error("Reload changed the parse of identical text")
	}
}

func TestExtractorIsolation(t *testing.T) {
	a := NewExtractor()
	b := NewExtractor()
	a.Parse(sampleGrammar)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.cache) != 0 {
		t.Error("extractors must not share cache state")
	}
}
