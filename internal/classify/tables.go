package classify

// Hub domain identifiers the classifier understands.
const (
	DomainLight       = "light"
	DomainClimate     = "climate"
	DomainFan         = "fan"
	DomainCover       = "cover"
	DomainMediaPlayer = "media_player"
	DomainSwitch      = "switch"
	DomainAlarmPanel  = "alarm_control_panel"
	DomainScene       = "scene"
	DomainAutomation  = "automation"
	DomainInputButton = "input_button"
)

// staticDomainTypes maps unambiguous hub domains straight to a device type.
// Domains needing heuristics (media_player, switch, cover, input_button) are
// deliberately absent; see the indicator tables below.
var staticDomainTypes = map[string]DeviceType{
	DomainLight:      DeviceTypeLights,
	DomainClimate:    DeviceTypeThermostat,
	DomainFan:        DeviceTypeFan,
	DomainAlarmPanel: DeviceTypeAlarm,
	DomainScene:      DeviceTypeScene,
	DomainAutomation: DeviceTypeAutomation,
}

// Indicator keyword tables for the four ambiguous domains. Matching is
// case-insensitive substring over entity id, friendly name, and device class,
// in that keyword order, first match wins.
var (
	// tvIndicators promote a media_player to a TV.
	tvIndicators = []string{"tv", "television", "display", "monitor", "screen"}

	// musicIndicators promote a media_player to a music player. Anything
	// matching neither table defaults to music as well.
	musicIndicators = []string{"speaker", "audio", "sound", "music", "amp", "receiver"}

	// switchLightIndicators promote a switch entity to lights. A switch
	// matching none of these is a generic relay and is excluded entirely.
	switchLightIndicators = []string{"light", "lamp", "bulb", "ceiling", "wall", "floor"}

	// coverSwitchIndicators demote a cover to a generic controllable
	// (garage doors and gates are not blinds). Anything else stays blinds.
	coverSwitchIndicators = []string{"garage", "door", "gate", "shutter"}
)

// domainActions lists the natural-language actions each hub domain supports.
// These feed both the vocabulary action list and the per-type action index.
var domainActions = map[string][]string{
	DomainLight:       {"turn on", "turn off", "toggle", "set brightness"},
	DomainSwitch:      {"turn on", "turn off", "toggle"},
	DomainClimate:     {"turn on", "turn off", "set", "increase", "decrease"},
	DomainFan:         {"turn on", "turn off", "toggle", "increase", "decrease"},
	DomainCover:       {"open", "close", "stop", "set position"},
	DomainMediaPlayer: {"turn on", "turn off", "play", "pause", "stop", "volume up", "volume down", "mute"},
	DomainAlarmPanel:  {"arm", "disarm"},
	DomainScene:       {"turn on"},
	DomainAutomation:  {"turn on", "turn off", "toggle", "trigger"},
	DomainInputButton: {"press"},
}

// typeDomains lists, per device type, every hub domain whose entities can be
// classified as that type. ActionsFor unions the domains' action lists, which
// is how tv/music inherit media_player actions and scene inherits
// input_button's.
var typeDomains = map[DeviceType][]string{
	DeviceTypeLights:     {DomainLight, DomainSwitch},
	DeviceTypeThermostat: {DomainClimate},
	DeviceTypeFan:        {DomainFan},
	DeviceTypeBlinds:     {DomainCover},
	DeviceTypeTV:         {DomainMediaPlayer},
	DeviceTypeMusic:      {DomainMediaPlayer},
	DeviceTypeAlarm:      {DomainAlarmPanel},
	DeviceTypeSwitch:     {DomainSwitch, DomainCover},
	DeviceTypeScene:      {DomainScene, DomainInputButton},
	DeviceTypeAutomation: {DomainAutomation},
}
