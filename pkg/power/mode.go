package power

// AppChargingMode is the rich charging mode the daemon operates in. The
// charge-control loop derives it from the configured limit and the current
// battery state, and it drives the SMC charging actions.
type AppChargingMode string

const (
	// ModeInitial is the state before the first control decision is made.
	ModeInitial AppChargingMode = "initial"
	// ModeInhibit holds back charging because the limit has been reached.
	ModeInhibit AppChargingMode = "inhibit"
	// ModeCharging charges normally towards the limit.
	ModeCharging AppChargingMode = "charging"
	// ModeForceCharge charges regardless of the limit (user override).
	ModeForceCharge AppChargingMode = "forceCharge"
	// ModeForceDischarge drains the battery by cutting the adapter.
	ModeForceDischarge AppChargingMode = "forceDischarge"
	// ModeChargerNotConnected means no charger is attached, so there is
	// nothing to control.
	ModeChargerNotConnected AppChargingMode = "chargerNotConnected"
)

// AllAppChargingModes lists every mode. Tests use it to keep Classify total
// when modes are added.
var AllAppChargingModes = []AppChargingMode{
	ModeInitial,
	ModeInhibit,
	ModeCharging,
	ModeForceCharge,
	ModeForceDischarge,
	ModeChargerNotConnected,
}

// Classification is the 3-way coarse bucket derived from AppChargingMode,
// used for history rendering and the status label.
type Classification string

const (
	// Inhibiting: no mode set yet, or charge is actively being held back.
	Inhibiting Classification = "inhibiting"
	// ClassCharging: the battery is being charged, forced or not.
	ClassCharging Classification = "charging"
	// Discharging: forced discharge, or no charger attached.
	Discharging Classification = "discharging"
)

// Classify maps an app charging mode to its classification. The mapping is
// total: every mode maps to exactly one classification. Unknown values fall
// back to Inhibiting, the "no mode set" bucket.
func (m AppChargingMode) Classify() Classification {
	switch m {
	case ModeInitial, ModeInhibit:
		return Inhibiting
	case ModeCharging, ModeForceCharge:
		return ClassCharging
	case ModeForceDischarge, ModeChargerNotConnected:
		return Discharging
	default:
		return Inhibiting
	}
}
