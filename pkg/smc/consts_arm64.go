package smc

// Various SMC keys for arm64 (Apple Silicon)
const (
	ACPowerKey            = "AC-W"
	ChargingKey1          = "CH0B"
	ChargingKey2          = "CH0C"
	AdapterKey1           = "CH0I"
	AdapterKey2           = "CH0J"
	BatteryChargeKey      = "BUIC"
	BatteryTemperatureKey = "TB0T"
	CycleCountKey         = "B0CT"
	DCInCurrentKey        = "ID0R"
	DCInVoltageKey        = "VD0R"
	BatteryCurrentKey     = "B0AC"
	BatteryVoltageKey     = "B0AV"
)
