// Package device defines the typed records produced by decoding raw register
// maps, and the pure decoder functions that produce them. No I/O lives here.
package device

import "fmt"

// Family identifies an inverter or grid-interface device product family.
// Families share overlapping but non-identical register maps.
type Family int

const (
	// FamilyUnknown means the device-type code did not match a known
	// family. High-level reads against an unknown family are rejected
	// unless the caller explicitly overrides the family.
	FamilyUnknown Family = iota
	// FamilyPVSeries covers 18kPV-class inverters. FLEXBOSS aliases this
	// family; it uses the identical register map.
	FamilyPVSeries
	// FamilyFlexBoss is an alias of FamilyPVSeries: same register map,
	// distinct device-type code.
	FamilyFlexBoss
	// FamilyLXPEU covers the European LXP product line, which diverges
	// from PV_SERIES in a small number of register addresses.
	FamilyLXPEU
	// FamilySNA covers the SNA product line.
	FamilySNA
	// FamilyGridBossMID is the grid-interface companion device; it uses
	// an entirely separate register map and record type.
	FamilyGridBossMID
)

func (f Family) String() string {
	switch f {
	case FamilyPVSeries:
		return "PV_SERIES"
	case FamilyFlexBoss:
		return "FLEXBOSS"
	case FamilyLXPEU:
		return "LXP_EU"
	case FamilySNA:
		return "SNA"
	case FamilyGridBossMID:
		return "GRIDBOSS_MID"
	default:
		return "UNKNOWN"
	}
}

// IsGridInterface reports whether this family produces a
// GridInterfaceRuntimeRecord rather than a RuntimeRecord from read_runtime.
func (f Family) IsGridInterface() bool {
	return f == FamilyGridBossMID
}

// Known device-type codes read from the identity holding register. These are
// the values Discovery (C7) compares against after an FC3 read.
const (
	DeviceTypeCodePVSeries    uint16 = 0
	DeviceTypeCodeFlexBoss    uint16 = 2
	DeviceTypeCodeLXPEU       uint16 = 3
	DeviceTypeCodeSNA         uint16 = 7
	DeviceTypeCodeGridBossMID uint16 = 15
)

// FamilyFromDeviceTypeCode maps a device-type code to its family. An
// unrecognised code yields FamilyUnknown, never an error: callers decide
// whether an unknown family is fatal.
func FamilyFromDeviceTypeCode(code uint16) Family {
	switch code {
	case DeviceTypeCodePVSeries:
		return FamilyPVSeries
	case DeviceTypeCodeFlexBoss:
		return FamilyFlexBoss
	case DeviceTypeCodeLXPEU:
		return FamilyLXPEU
	case DeviceTypeCodeSNA:
		return FamilySNA
	case DeviceTypeCodeGridBossMID:
		return FamilyGridBossMID
	default:
		return FamilyUnknown
	}
}

// ParseFamily parses a config-file family name ("pv_series", "lxp_eu",
// "flexboss", "sna", "gridboss_mid") into a Family. An empty or unrecognised
// name yields FamilyUnknown, which callers treat as "no override".
func ParseFamily(name string) Family {
	switch name {
	case "pv_series":
		return FamilyPVSeries
	case "flexboss":
		return FamilyFlexBoss
	case "lxp_eu":
		return FamilyLXPEU
	case "sna":
		return FamilySNA
	case "gridboss_mid":
		return FamilyGridBossMID
	default:
		return FamilyUnknown
	}
}

// Identity is the immutable record established once at connect/discovery
// time for a local transport session.
type Identity struct {
	Serial          string
	DeviceTypeCode  uint16
	FirmwareVersion string
	Family          Family
}

func (id Identity) String() string {
	return fmt.Sprintf("%s serial=%s fw=%s", id.Family, id.Serial, id.FirmwareVersion)
}
