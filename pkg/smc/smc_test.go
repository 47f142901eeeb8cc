package smc

import (
	"encoding/binary"
	"math"
	"testing"
)

func float32LE(f float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
	return b
}

func int16LE(v int16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

func TestGetBatteryCharge(t *testing.T) {
	c := NewMock(map[string][]byte{
		BatteryChargeKey: {80},
	})

	charge, err := c.GetBatteryCharge()
	if err != nil {
		t.Fatalf("GetBatteryCharge: %v", err)
	}
	if charge != 80 {
		t.Errorf("charge = %d, want 80", charge)
	}
}

func TestGetBatteryTemperature(t *testing.T) {
	// sp78 big endian: 0x1E80 = 30.5 degrees.
	c := NewMock(map[string][]byte{
		BatteryTemperatureKey: {0x1E, 0x80},
	})

	temp, err := c.GetBatteryTemperature()
	if err != nil {
		t.Fatalf("GetBatteryTemperature: %v", err)
	}
	if temp != 3050 {
		t.Errorf("temperature = %d hundredths, want 3050", temp)
	}
}

func TestGetCycleCount(t *testing.T) {
	c := NewMock(map[string][]byte{
		CycleCountKey: {0x2C, 0x01},
	})

	cycles, err := c.GetCycleCount()
	if err != nil {
		t.Fatalf("GetCycleCount: %v", err)
	}
	if cycles != 300 {
		t.Errorf("cycles = %d, want 300", cycles)
	}
}

func TestIsPluggedIn(t *testing.T) {
	c := NewMock(map[string][]byte{
		ACPowerKey: {0x01},
	})
	plugged, err := c.IsPluggedIn()
	if err != nil {
		t.Fatalf("IsPluggedIn: %v", err)
	}
	if !plugged {
		t.Error("IsPluggedIn = false, want true")
	}

	c = NewMock(map[string][]byte{
		ACPowerKey: {0x00},
	})
	plugged, err = c.IsPluggedIn()
	if err != nil {
		t.Fatalf("IsPluggedIn: %v", err)
	}
	if plugged {
		t.Error("IsPluggedIn = true, want false")
	}
}

func TestChargingControlRoundTrip(t *testing.T) {
	c := NewMock(map[string][]byte{
		ChargingKey1: {0x0},
		ChargingKey2: {0x0},
		AdapterKey1:  {0x0},
	})

	if err := c.DisableCharging(); err != nil {
		t.Fatalf("DisableCharging: %v", err)
	}
	enabled, err := c.IsChargingEnabled()
	if err != nil {
		t.Fatalf("IsChargingEnabled: %v", err)
	}
	if enabled {
		t.Error("charging still enabled after DisableCharging")
	}

	if err := c.EnableCharging(); err != nil {
		t.Fatalf("EnableCharging: %v", err)
	}
	enabled, err = c.IsChargingEnabled()
	if err != nil {
		t.Fatalf("IsChargingEnabled: %v", err)
	}
	if !enabled {
		t.Error("charging still disabled after EnableCharging")
	}
}

func TestAdapterControlRoundTrip(t *testing.T) {
	c := NewMock(map[string][]byte{
		AdapterKey1: {0x0},
	})

	if err := c.DisableAdapter(); err != nil {
		t.Fatalf("DisableAdapter: %v", err)
	}
	enabled, err := c.IsAdapterEnabled()
	if err != nil {
		t.Fatalf("IsAdapterEnabled: %v", err)
	}
	if enabled {
		t.Error("adapter still enabled after DisableAdapter")
	}

	if err := c.EnableAdapter(); err != nil {
		t.Fatalf("EnableAdapter: %v", err)
	}
	enabled, err = c.IsAdapterEnabled()
	if err != nil {
		t.Fatalf("IsAdapterEnabled: %v", err)
	}
	if !enabled {
		t.Error("adapter still disabled after EnableAdapter")
	}
}

func TestGetPowerDistribution(t *testing.T) {
	// Adapter delivers 1.5 A at 20 V; battery discharges 500 mA at 12 V.
	c := NewMock(map[string][]byte{
		DCInCurrentKey:    float32LE(1.5),
		DCInVoltageKey:    float32LE(20.0),
		BatteryCurrentKey: int16LE(-500),
		BatteryVoltageKey: int16LE(12000),
	})

	info, err := c.GetPowerDistribution()
	if err != nil {
		t.Fatalf("GetPowerDistribution: %v", err)
	}

	const eps = 1e-6
	if math.Abs(info.ACPower-30.0) > eps {
		t.Errorf("ACPower = %v, want 30", info.ACPower)
	}
	if math.Abs(info.BatteryPower-(-6.0)) > eps {
		t.Errorf("BatteryPower = %v, want -6", info.BatteryPower)
	}
	if math.Abs(info.SystemPower-36.0) > eps {
		t.Errorf("SystemPower = %v, want 36", info.SystemPower)
	}
}
