package smc

import "github.com/sirupsen/logrus"

// IsAdapterEnabled returns whether power input from the adapter is enabled.
func (c *AppleSMC) IsAdapterEnabled() (bool, error) {
	logrus.Tracef("IsAdapterEnabled called")

	v, err := c.Read(AdapterKey1)
	if err != nil {
		return false, err
	}

	ret := len(v.Bytes) == 1 && v.Bytes[0] == 0x0
	logrus.Tracef("IsAdapterEnabled returned %t", ret)

	return ret, nil
}

// EnableAdapter enables power input from the adapter.
func (c *AppleSMC) EnableAdapter() error {
	logrus.Tracef("EnableAdapter called")

	return c.Write(AdapterKey1, []byte{0x0})
}

// DisableAdapter disables power input from the adapter. The machine then
// runs from the battery even with a charger attached.
func (c *AppleSMC) DisableAdapter() error {
	logrus.Tracef("DisableAdapter called")

	return c.Write(AdapterKey1, []byte{0x1})
}
