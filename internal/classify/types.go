package classify

// DeviceType is the user-facing device category replacing raw hub domains.
// The set is closed: the generation grammar enumerates it, so every value the
// engine can emit must exist here.
type DeviceType string //nolint:revive // classify.DeviceType is clearer than classify.Type in calling code

// DeviceType constants.
const (
	DeviceTypeLights     DeviceType = "lights"
	DeviceTypeThermostat DeviceType = "thermostat"
	DeviceTypeFan        DeviceType = "fan"
	DeviceTypeBlinds     DeviceType = "blinds"
	DeviceTypeTV         DeviceType = "tv"
	DeviceTypeMusic      DeviceType = "music"
	DeviceTypeAlarm      DeviceType = "alarm"
	DeviceTypeSwitch     DeviceType = "switch"
	DeviceTypeScene      DeviceType = "scene"
	DeviceTypeAutomation DeviceType = "automation"
)

// AllDeviceTypes returns every valid device type, in stable order.
// The vocabulary lists all of them on every discovery cycle, even types with
// no entities, so the generation grammar stays stable across cycles.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{
		DeviceTypeLights, DeviceTypeThermostat, DeviceTypeFan, DeviceTypeBlinds,
		DeviceTypeTV, DeviceTypeMusic, DeviceTypeAlarm, DeviceTypeSwitch,
		DeviceTypeScene, DeviceTypeAutomation,
	}
}

// Valid reports whether dt is one of the known device types.
func (dt DeviceType) Valid() bool {
	switch dt {
	case DeviceTypeLights, DeviceTypeThermostat, DeviceTypeFan, DeviceTypeBlinds,
		DeviceTypeTV, DeviceTypeMusic, DeviceTypeAlarm, DeviceTypeSwitch,
		DeviceTypeScene, DeviceTypeAutomation:
		return true
	}
	return false
}
