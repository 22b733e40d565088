package grammar

import (
	"reflect"
	"testing"

	"github.com/nerrad567/gray-logic-voice/internal/hub"
	"github.com/nerrad567/gray-logic-voice/internal/vocabulary"
)

func TestRenderRoundTrip(t *testing.T) {
	m := vocabulary.BuildMapping(&hub.Dump{
		States: []hub.Entity{
			{EntityID: "light.kitchen_main", State: "on", Attributes: map[string]any{"friendly_name": "Kitchen Main"}},
		},
		Areas: []hub.Area{{AreaID: "a1", Name: "Kitchen"}},
	})

	text := Render(m)
	g := NewExtractor().Parse(text)

	wantDevices := make([]string, 0, len(m.Vocabulary.Devices))
	for _, dt := range m.Vocabulary.Devices {
		wantDevices = append(wantDevices, string(dt))
	}
	if !reflect.DeepEqual(g["device"], wantDevices) {
		t.Errorf("device rule = %v, want %v", g["device"], wantDevices)
	}
	if !reflect.DeepEqual(g["action"], m.Vocabulary.Actions) {
		t.Errorf("action rule = %v, want %v", g["action"], m.Vocabulary.Actions)
	}
	if !reflect.DeepEqual(g["location"], m.Vocabulary.Locations) {
		t.Errorf("location rule = %v, want %v", g["location"], m.Vocabulary.Locations)
	}
}

func TestRenderedGrammarValidates(t *testing.T) {
	m := vocabulary.BuildMapping(&hub.Dump{
		Areas: []hub.Area{{AreaID: "a1", Name: "Kitchen"}},
	})
	g := NewExtractor().Parse(Render(m))

	if err := Validate(`{"device":"lights","action":"turn on","location":"kitchen"}`, g); err != nil {
		t.Errorf("command within vocabulary rejected: %v", err)
	}
	if err := Validate(`{"device":"lights","action":"turn on","location":"narnia"}`, g); err == nil {
		t.Error("location outside vocabulary accepted")
	}
}
