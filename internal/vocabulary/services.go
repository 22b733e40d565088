package vocabulary

// serviceMappings is the hand-authored table from natural-language action to
// candidate hub service calls. The dispatcher uses it to pick the concrete
// call for a resolved entity's domain; it is never derived from discovery
// data.
var serviceMappings = map[string][]string{
	"turn on": {
		"light.turn_on", "switch.turn_on", "fan.turn_on",
		"climate.set_hvac_mode", "cover.open_cover",
		"media_player.turn_on", "scene.turn_on", "automation.turn_on",
	},
	"turn off": {
		"light.turn_off", "switch.turn_off", "fan.turn_off",
		"climate.turn_off", "cover.close_cover",
		"media_player.turn_off", "automation.turn_off",
	},
	"toggle": {
		"light.toggle", "switch.toggle", "fan.toggle", "automation.toggle",
	},
	"set":            {"climate.set_temperature", "climate.set_hvac_mode"},
	"increase":       {"climate.set_temperature", "fan.increase_speed"},
	"decrease":       {"climate.set_temperature", "fan.decrease_speed"},
	"set brightness": {"light.turn_on"},
	"open":           {"cover.open_cover"},
	"close":          {"cover.close_cover"},
	"stop":           {"cover.stop_cover", "media_player.media_stop"},
	"set position":   {"cover.set_cover_position"},
	"play":           {"media_player.media_play"},
	"pause":          {"media_player.media_pause"},
	"volume up":      {"media_player.volume_up"},
	"volume down":    {"media_player.volume_down"},
	"mute":           {"media_player.volume_mute"},
	"arm":            {"alarm_control_panel.alarm_arm_away", "alarm_control_panel.alarm_arm_home"},
	"disarm":         {"alarm_control_panel.alarm_disarm"},
	"trigger":        {"automation.trigger"},
	"press":          {"input_button.press"},
}

// ServiceCallsFor returns the hub service calls that can realize an action,
// or nil for an unknown action.
func ServiceCallsFor(action string) []string {
	return serviceMappings[action]
}
