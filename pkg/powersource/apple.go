package powersource

import (
	"errors"
	"fmt"

	"github.com/distatus/battery"

	"github.com/kusaanko/BatFi/pkg/power"
	"github.com/kusaanko/BatFi/pkg/smc"
)

// Power source identifiers as reported by the OS.
const (
	sourceAC      = "AC Power"
	sourceBattery = "Battery Power"
)

// AppleSource reads snapshot fields from the primary battery and the SMC.
// All Apple Silicon MacBooks have exactly one battery, so only the first
// battery is consulted.
type AppleSource struct {
	smc *smc.AppleSMC
}

var _ Source = (*AppleSource)(nil)

// NewAppleSource returns a Source backed by the OS battery registry and the
// given SMC connection. The connection must already be open.
func NewAppleSource(conn *smc.AppleSMC) *AppleSource {
	return &AppleSource{smc: conn}
}

func (s *AppleSource) primaryBattery() (*battery.Battery, error) {
	bat, err := battery.Get(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read battery: %w", err)
	}
	if bat.Full <= 0 {
		return nil, errors.New("battery reports zero full capacity")
	}
	return bat, nil
}

// BatteryLevel returns the charge percentage of the primary battery.
func (s *AppleSource) BatteryLevel() (int, error) {
	bat, err := s.primaryBattery()
	if err != nil {
		return 0, err
	}
	return int(bat.Current / bat.Full * 100), nil
}

// IsCharging reports whether the primary battery is charging.
func (s *AppleSource) IsCharging() (bool, error) {
	bat, err := s.primaryBattery()
	if err != nil {
		return false, err
	}
	return bat.State == battery.Charging, nil
}

// PowerSource returns the active power source identifier.
func (s *AppleSource) PowerSource() (string, error) {
	plugged, err := s.smc.IsPluggedIn()
	if err != nil {
		return "", err
	}
	if plugged {
		return sourceAC, nil
	}
	return sourceBattery, nil
}

// TimeToEmpty estimates minutes until the battery is empty. Known only
// while discharging.
func (s *AppleSource) TimeToEmpty() (int, error) {
	bat, err := s.primaryBattery()
	if err != nil {
		return 0, err
	}
	if bat.State != battery.Discharging || bat.ChargeRate <= 0 {
		return power.UnknownMinutes, nil
	}
	return int(bat.Current / bat.ChargeRate * 60), nil
}

// TimeToFull estimates minutes until the battery is full. Known only while
// charging.
func (s *AppleSource) TimeToFull() (int, error) {
	bat, err := s.primaryBattery()
	if err != nil {
		return 0, err
	}
	if bat.State != battery.Charging || bat.ChargeRate <= 0 {
		return power.UnknownMinutes, nil
	}
	return int((bat.Full - bat.Current) / bat.ChargeRate * 60), nil
}

// OptimizedChargingEngaged reports whether charge is currently being held
// back while a charger is attached. The OS does not expose the flag
// directly, so it is inferred: charger present, not charging, not full.
func (s *AppleSource) OptimizedChargingEngaged() (bool, error) {
	plugged, err := s.smc.IsPluggedIn()
	if err != nil {
		return false, err
	}
	if !plugged {
		return false, nil
	}
	bat, err := s.primaryBattery()
	if err != nil {
		return false, err
	}
	level := int(bat.Current / bat.Full * 100)
	return bat.State != battery.Charging && level < 100, nil
}

// CycleCount returns the battery charge cycle count from the SMC.
func (s *AppleSource) CycleCount() (int, error) {
	return s.smc.GetCycleCount()
}

// Temperature returns the battery temperature in hundredths of a degree
// Celsius from the SMC.
func (s *AppleSource) Temperature() (int, error) {
	return s.smc.GetBatteryTemperature()
}

// ChargerConnected reports whether a charger is physically attached.
func (s *AppleSource) ChargerConnected() (bool, error) {
	return s.smc.IsPluggedIn()
}
