package smc

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/kusaanko/BatFi/pkg/power"
)

// GetPowerDistribution reads the raw SMC power keys and returns how power
// currently flows between the adapter, the battery, and the system.
func (c *AppleSMC) GetPowerDistribution() (power.DistributionInfo, error) {
	dcinCurrent, err := c.Read(DCInCurrentKey)
	if err != nil {
		return power.DistributionInfo{}, errors.Wrap(err, "failed to read dcin current")
	}
	dcinVoltage, err := c.Read(DCInVoltageKey)
	if err != nil {
		return power.DistributionInfo{}, errors.Wrap(err, "failed to read dcin voltage")
	}
	battCurrent, err := c.Read(BatteryCurrentKey)
	if err != nil {
		return power.DistributionInfo{}, errors.Wrap(err, "failed to read battery current")
	}
	battVoltage, err := c.Read(BatteryVoltageKey)
	if err != nil {
		return power.DistributionInfo{}, errors.Wrap(err, "failed to read battery voltage")
	}

	acAmperage := decodeFloat(dcinCurrent.Bytes)
	acVoltage := decodeFloat(dcinVoltage.Bytes)
	pAC := acAmperage * acVoltage

	pBatt := (float64(decodeInt(battCurrent.Bytes)) / 1000.0) * (float64(decodeUint(battVoltage.Bytes)) / 1000.0)
	pSystem := pAC - pBatt

	return power.DistributionInfo{
		ACPower:      pAC,
		BatteryPower: pBatt,
		SystemPower:  pSystem,
	}, nil
}

// decodeFloat decodes a 4-byte slice into a little-endian float32.
func decodeFloat(b []byte) float64 {
	if len(b) != 4 {
		return 0
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// decodeInt decodes a 2-byte slice into a little-endian int16.
func decodeInt(b []byte) int16 {
	if len(b) != 2 {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

// decodeUint decodes a 2-byte slice into a little-endian uint16.
func decodeUint(b []byte) uint16 {
	if len(b) != 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}
