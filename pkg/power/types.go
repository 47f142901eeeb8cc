package power

import (
	"time"

	"github.com/google/uuid"
)

// UnknownMinutes is the sentinel used for time estimates the OS cannot
// provide (e.g. time-to-full while discharging).
const UnknownMinutes = -1

// Snapshot is one point-in-time reading of the battery and power state.
// A new snapshot wholly replaces the previous one in consumer state;
// snapshots have no identity beyond value equality.
type Snapshot struct {
	// BatteryLevel is the charge percentage, 0-100.
	BatteryLevel int `json:"batteryLevel"`
	// IsCharging reports whether the battery is actively charging.
	IsCharging bool `json:"isCharging"`
	// PowerSource identifies the active power source, e.g. "AC Power".
	PowerSource string `json:"powerSource"`
	// TimeToEmpty is the estimated minutes until empty, or UnknownMinutes.
	TimeToEmpty int `json:"timeToEmpty"`
	// TimeToFull is the estimated minutes until full, or UnknownMinutes.
	TimeToFull int `json:"timeToFull"`
	// CycleCount is the battery charge cycle count.
	CycleCount int `json:"cycleCount"`
	// Health is the maximum-capacity percentage reported by the battery
	// diagnostic, e.g. "93%". Nil when the diagnostic is unavailable.
	Health *string `json:"health,omitempty"`
	// Temperature is the battery temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`
	// ChargerConnected reports whether a charger is physically attached.
	ChargerConnected bool `json:"chargerConnected"`
	// OptimizedChargingEngaged reports whether the OS optimized-charging
	// feature is currently holding back charge.
	OptimizedChargingEngaged bool `json:"optimizedChargingEngaged"`
}

// DistributionInfo is one reading of the power-distribution channel reported
// by the privileged helper. It is opaque to consumers beyond value equality,
// which the poller uses for change suppression.
type DistributionInfo struct {
	ACPower      float64 `json:"acPower"`
	BatteryPower float64 `json:"batteryPower"`
	SystemPower  float64 `json:"systemPower"`
}

// StatePoint is a persisted snapshot: a point on the battery-level timeline
// with a stable identifier, the app charging mode in effect when it was
// recorded, and the charger state.
//
// Points returned by a range query are ordered by Timestamp ascending, and
// identifiers are unique within a query window.
type StatePoint struct {
	ID               uuid.UUID       `json:"id"`
	Timestamp        time.Time       `json:"timestamp"`
	BatteryLevel     int             `json:"batteryLevel"`
	Mode             AppChargingMode `json:"mode"`
	ChargerConnected bool            `json:"chargerConnected"`
}

// Classification returns the coarse charging classification of the mode this
// point was recorded under.
func (p StatePoint) Classification() Classification {
	return p.Mode.Classify()
}
