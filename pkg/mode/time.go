// Package mode derives user-facing descriptors (time estimates, temperature
// text, charging-state label) from snapshots and classifications.
package mode

import (
	"github.com/kusaanko/BatFi/pkg/power"
)

// TimeInfo is what the time-remaining display needs from a snapshot.
type TimeInfo struct {
	Charging    bool
	TimeToEmpty int
	TimeToFull  int
	Percentage  int
}

// TimeFromSnapshot extracts the time display values from s, or returns nil
// when no snapshot is available yet.
func TimeFromSnapshot(s *power.Snapshot) *TimeInfo {
	if s == nil {
		return nil
	}
	return &TimeInfo{
		Charging:    s.IsCharging,
		TimeToEmpty: s.TimeToEmpty,
		TimeToFull:  s.TimeToFull,
		Percentage:  s.BatteryLevel,
	}
}
