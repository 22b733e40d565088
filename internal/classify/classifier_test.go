package classify

import (
	"testing"

	"github.com/nerrad567/gray-logic-voice/internal/hub"
)

func entity(id, friendlyName, deviceClass string) hub.Entity {
	attrs := map[string]any{}
	if friendlyName != "" {
		attrs["friendly_name"] = friendlyName
	}
	if deviceClass != "" {
		attrs["device_class"] = deviceClass
	}
	return hub.Entity{EntityID: id, State: "on", Attributes: attrs}
}

func TestClassifyStaticDomains(t *testing.T) {
	tests := []struct {
		entityID string
		domain   string
		want     DeviceType
	}{
		{"light.bedroom_lamp", "light", DeviceTypeLights},
		{"climate.hallway", "climate", DeviceTypeThermostat},
		{"fan.office_ceiling", "fan", DeviceTypeFan},
		{"alarm_control_panel.home", "alarm_control_panel", DeviceTypeAlarm},
		{"scene.movie_night", "scene", DeviceTypeScene},
		{"automation.morning_routine", "automation", DeviceTypeAutomation},
	}

	for _, tt := range tests {
		t.Run(tt.entityID, func(t *testing.T) {
			got, ok := Classify(entity(tt.entityID, "", ""), tt.domain)
			if !ok {
				t.Fatalf("Classify(%s) excluded, want %s", tt.entityID, tt.want)
			}
			if got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.entityID, got, tt.want)
			}
		})
	}
}

func TestClassifyMediaPlayer(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		friendly string
		class    string
		want     DeviceType
	}{
		{"tv in entity id", "media_player.living_room_tv", "", "", DeviceTypeTV},
		{"television in friendly name", "media_player.lounge", "Lounge Television", "", DeviceTypeTV},
		{"display device class", "media_player.panel", "Panel", "display", DeviceTypeTV},
		{"speaker", "media_player.kitchen_speaker", "", "", DeviceTypeMusic},
		{"receiver in friendly name", "media_player.av", "AV Receiver", "", DeviceTypeMusic},
		{"no indicator defaults to music", "media_player.cast_device", "Cast Device", "", DeviceTypeMusic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(entity(tt.entityID, tt.friendly, tt.class), DomainMediaPlayer)
			if !ok {
				t.Fatal("media_player should never be excluded")
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifySwitch(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		friendly string
		want     DeviceType
		wantOK   bool
	}{
		{"lamp switch", "switch.bedside_lamp", "Bedside Lamp", DeviceTypeLights, true},
		{"ceiling relay", "switch.ceiling_relay_2", "", DeviceTypeLights, true},
		{"generic relay excluded", "switch.pool_pump", "Pool Pump", "", false},
		{"garage opener excluded", "switch.garage_door_opener", "Garage Door Opener", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(entity(tt.entityID, tt.friendly, ""), DomainSwitch)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyCover(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
		want     DeviceType
	}{
		{"garage is a generic controllable", "cover.garage_main", DeviceTypeSwitch},
		{"gate is a generic controllable", "cover.driveway_gate", DeviceTypeSwitch},
		{"plain cover is blinds", "cover.bedroom_window", DeviceTypeBlinds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(entity(tt.entityID, "", ""), DomainCover)
			if !ok {
				t.Fatal("cover should never be excluded")
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyInputButton(t *testing.T) {
	got, ok := Classify(entity("input_button.good_night", "Good Night", ""), DomainInputButton)
	if !ok || got != DeviceTypeScene {
		t.Errorf("got (%s, %v), want (scene, true)", got, ok)
	}

	// Buttons with no scene-like naming are still scene triggers.
	got, ok = Classify(entity("input_button.doorbell_chime", "Doorbell Chime", ""), DomainInputButton)
	if !ok || got != DeviceTypeScene {
		t.Errorf("got (%s, %v), want (scene, true)", got, ok)
	}
}

func TestClassifyUnsupportedDomain(t *testing.T) {
	if _, ok := Classify(entity("sensor.outdoor_temp", "", ""), "sensor"); ok {
		t.Error("sensor domain should be excluded")
	}
	if _, ok := Classify(entity("person.darren", "", ""), "person"); ok {
		t.Error("person domain should be excluded")
	}
}

func TestActionsForNeverEmpty(t *testing.T) {
	for _, dt := range AllDeviceTypes() {
		if len(ActionsFor(dt)) == 0 {
			t.Errorf("ActionsFor(%s) is empty", dt)
		}
	}
}

func TestActionsForInheritance(t *testing.T) {
	contains := func(list []string, want string) bool {
		for _, a := range list {
			if a == want {
				return true
			}
		}
		return false
	}

	// tv and music inherit media_player actions.
	for _, dt := range []DeviceType{DeviceTypeTV, DeviceTypeMusic} {
		if !contains(ActionsFor(dt), "volume up") {
			t.Errorf("ActionsFor(%s) missing media_player action", dt)
		}
	}

	// scene inherits input_button's press.
	if !contains(ActionsFor(DeviceTypeScene), "press") {
		t.Error("ActionsFor(scene) missing input_button action")
	}

	// lights union light and switch domain actions.
	if !contains(ActionsFor(DeviceTypeLights), "set brightness") {
		t.Error("ActionsFor(lights) missing light action")
	}

	// the generic-controllable type carries cover actions.
	if !contains(ActionsFor(DeviceTypeSwitch), "open") {
		t.Error("ActionsFor(switch) missing cover action")
	}
}

func TestSupportedDomains(t *testing.T) {
	domains := SupportedDomains()

	for _, d := range []string{"light", "climate", "fan", "cover", "media_player", "switch", "alarm_control_panel", "scene", "automation", "input_button"} {
		if !domains[d] {
			t.Errorf("SupportedDomains missing %q", d)
		}
	}
	if domains["sensor"] {
		t.Error("sensor should not be a supported domain")
	}
}

func TestAllActionsSortedUnique(t *testing.T) {
	actions := AllActions()
	if len(actions) == 0 {
		t.Fatal("AllActions returned nothing")
	}
	seen := make(map[string]bool)
	for i, a := range actions {
		if seen[a] {
			t.Errorf("duplicate action %q", a)
		}
		seen[a] = true
		if i > 0 && actions[i-1] > a {
			t.Errorf("actions not sorted: %q before %q", actions[i-1], a)
		}
	}
}
