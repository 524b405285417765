// Package discovery implements the identity probe (C7): read the
// device-type code, map it to a family, then read serial and firmware,
// producing a device.Identity. Grounded on
// original_source/src/pylxpweb/transports/_modbus_base.py's
// read_device_type/read_serial_number/read_firmware_version sequence (the
// same sequence modbus.Transport.Connect and dongle.Transport.Connect run
// inline); this package exists so the sequence can also run standalone
// against a transport a caller has already connected, e.g. from lxpctl's
// discover command.
package discovery

import (
	"context"

	"github.com/devskill-org/lxpclient/device"
)

// Prober is the minimal read surface Discover needs: any connected
// transport.Transport satisfies it.
type Prober interface {
	ReadDeviceType(ctx context.Context) (uint16, error)
	ReadSerial(ctx context.Context) (string, error)
	ReadFirmware(ctx context.Context) (string, error)
}

// Result is the outcome of Discover: the probed identity plus an optional
// warning.
type Result struct {
	Identity device.Identity
	Warning  string
}

// Discover runs the identity probe against an already-connected transport.
// If expectedSerial is non-empty and doesn't match, Discover still returns
// the identity (not an error) with Warning set, matching spec.md §4.5's
// "connect still succeeds but a warning condition is flagged".
// familyOverride, unless device.FamilyUnknown, forces a family when the
// device-type code is ambiguous or unrecognised.
func Discover(ctx context.Context, p Prober, expectedSerial string, familyOverride device.Family) (*Result, error) {
	code, err := p.ReadDeviceType(ctx)
	if err != nil {
		return nil, err
	}
	family := device.FamilyFromDeviceTypeCode(code)
	if familyOverride != device.FamilyUnknown {
		family = familyOverride
	}

	serial, err := p.ReadSerial(ctx)
	if err != nil {
		return nil, err
	}
	firmware, err := p.ReadFirmware(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Identity: device.Identity{
		Serial:          serial,
		DeviceTypeCode:  code,
		FirmwareVersion: firmware,
		Family:          family,
	}}

	if expectedSerial != "" && expectedSerial != serial {
		result.Warning = "serial mismatch: expected " + expectedSerial + " but device reports " + serial
	}
	if family == device.FamilyUnknown {
		result.Warning = "unrecognised device-type code"
	}

	return result, nil
}

// KnownFamily reports whether code maps to a family the register maps
// cover. The scanner applies the same test to the family of a probed
// identity to classify MODBUS_VERIFIED vs MODBUS_UNVERIFIED.
func KnownFamily(code uint16) bool {
	return device.FamilyFromDeviceTypeCode(code) != device.FamilyUnknown
}
