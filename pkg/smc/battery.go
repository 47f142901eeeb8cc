package smc

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// GetBatteryCharge returns the battery charge percentage.
func (c *AppleSMC) GetBatteryCharge() (int, error) {
	logrus.Tracef("GetBatteryCharge called")

	v, err := c.Read(BatteryChargeKey)
	if err != nil {
		return 0, err
	}

	if len(v.Bytes) != 1 {
		return 0, fmt.Errorf("incorrect data length %d!=1", len(v.Bytes))
	}

	return int(v.Bytes[0]), nil
}

// GetBatteryTemperature returns the battery temperature in hundredths of a
// degree Celsius. The sensor reports an sp78 fixed-point value.
func (c *AppleSMC) GetBatteryTemperature() (int, error) {
	logrus.Tracef("GetBatteryTemperature called")

	v, err := c.Read(BatteryTemperatureKey)
	if err != nil {
		return 0, err
	}

	if len(v.Bytes) != 2 {
		return 0, fmt.Errorf("incorrect data length %d!=2", len(v.Bytes))
	}

	// sp78: signed fixed point, 8 fractional bits, big endian.
	raw := int16(binary.BigEndian.Uint16(v.Bytes))
	return int(raw) * 100 / 256, nil
}

// GetCycleCount returns the battery charge cycle count.
func (c *AppleSMC) GetCycleCount() (int, error) {
	logrus.Tracef("GetCycleCount called")

	v, err := c.Read(CycleCountKey)
	if err != nil {
		return 0, err
	}

	if len(v.Bytes) != 2 {
		return 0, fmt.Errorf("incorrect data length %d!=2", len(v.Bytes))
	}

	return int(binary.LittleEndian.Uint16(v.Bytes)), nil
}

// IsPluggedIn returns whether a charger is physically attached.
func (c *AppleSMC) IsPluggedIn() (bool, error) {
	logrus.Tracef("IsPluggedIn called")

	v, err := c.Read(ACPowerKey)
	if err != nil {
		return false, err
	}

	ret := len(v.Bytes) == 1 && int8(v.Bytes[0]) > 0
	logrus.Tracef("IsPluggedIn returned %t", ret)

	return ret, nil
}
