package smc

// Various SMC keys for amd64 (Intel 64). Charging control keys are not
// verified on Classic Intel MacBooks; readouts use the same sensor keys as
// Apple Silicon.
const (
	ACPowerKey            = "AC-W"
	ChargingKey1          = "CH0B"
	ChargingKey2          = "CH0C"
	AdapterKey1           = "CH0K"
	AdapterKey2           = "CH0K"
	BatteryChargeKey      = "BBIF"
	BatteryTemperatureKey = "TB0T"
	CycleCountKey         = "B0CT"
	DCInCurrentKey        = "ID0R"
	DCInVoltageKey        = "VD0R"
	BatteryCurrentKey     = "B0AC"
	BatteryVoltageKey     = "B0AV"
)
