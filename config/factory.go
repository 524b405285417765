package config

import (
	"fmt"

	"github.com/devskill-org/lxpclient/cloud"
	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/dongle"
	"github.com/devskill-org/lxpclient/modbus"
	"github.com/devskill-org/lxpclient/transport"
)

// NewTransport builds the transport.Transport c.Transport selects, wired
// with the matching section of Config. The returned transport is not yet
// connected; callers still call Connect.
func NewTransport(c *Config) (transport.Transport, error) {
	family := device.ParseFamily(c.Family)

	switch c.Transport {
	case "cloud":
		client := cloud.New(c.CloudAccount, c.CloudPassword, cloud.WithBaseURL(c.CloudBaseURL))
		return cloud.NewTransport(client, c.ExpectedSerial, family), nil

	case "modbus":
		return modbus.New(modbus.Config{
			Host:           c.ModbusHost,
			Port:           c.ModbusPort,
			UnitID:         byte(c.ModbusUnitID),
			Timeout:        c.ModbusTimeout,
			ExpectedSerial: c.ExpectedSerial,
			Family:         family,
		}), nil

	case "dongle":
		return dongle.New(dongle.Config{
			Host:           c.DongleHost,
			Port:           c.DonglePort,
			DongleSerial:   c.DongleSerial,
			InverterSerial: c.DongleInverterSerial,
			Timeout:        c.DongleTimeout,
			Family:         family,
		}), nil

	default:
		return nil, fmt.Errorf("unknown transport: %s", c.Transport)
	}
}
