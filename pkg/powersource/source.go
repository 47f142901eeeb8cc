// Package powersource reads full battery/power snapshots from the OS.
//
// The OS exposes the state as a collection of independently failing
// per-field reads. ReadSnapshot aggregates them all-or-nothing: if any
// required field cannot be read, the whole snapshot fails with
// ErrRequiredDataMissing. Battery health is the only optional field.
package powersource

import (
	"context"
	"errors"
)

// ErrRequiredDataMissing indicates one or more mandatory power fields could
// not be read. It is recoverable: consumers log it and keep their previous
// snapshot.
var ErrRequiredDataMissing = errors.New("required power data missing")

// Source provides one synchronous read per snapshot field. Reads may block
// on OS calls, so they must run on a worker goroutine, never on a
// latency-sensitive callback path.
type Source interface {
	// BatteryLevel returns the charge percentage, 0-100.
	BatteryLevel() (int, error)
	// IsCharging reports whether the battery is actively charging.
	IsCharging() (bool, error)
	// PowerSource identifies the active power source.
	PowerSource() (string, error)
	// TimeToEmpty returns estimated minutes until empty, or
	// power.UnknownMinutes.
	TimeToEmpty() (int, error)
	// TimeToFull returns estimated minutes until full, or
	// power.UnknownMinutes.
	TimeToFull() (int, error)
	// OptimizedChargingEngaged reports whether the OS optimized-charging
	// feature is holding back charge.
	OptimizedChargingEngaged() (bool, error)
	// CycleCount returns the battery charge cycle count.
	CycleCount() (int, error)
	// Temperature returns the battery temperature in hundredths of a
	// degree Celsius.
	Temperature() (int, error)
	// ChargerConnected reports whether a charger is physically attached.
	ChargerConnected() (bool, error)
}

// HealthReader provides the battery maximum-capacity reading. It may launch
// a subprocess and wait for it, so it also belongs on a worker goroutine.
type HealthReader interface {
	// MaximumCapacity returns the maximum-capacity percentage (e.g. "93%")
	// and true, or false if the reading is unavailable or malformed.
	MaximumCapacity(ctx context.Context) (string, bool)
}
