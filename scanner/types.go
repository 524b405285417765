// Package scanner implements the async LAN scanner (C8): probe a range of
// hosts for open Modbus-TCP (502) and dongle (8000) ports, optionally
// verifying Modbus responders against this module's own transport and
// decoder stack. Grounded directly on
// original_source/src/pylxpweb/scanner/scanner.py and
// tests/unit/scanner/test_types.py.
package scanner

// DeviceType classifies one scan hit.
type DeviceType string

const (
	DeviceTypeModbusVerified   DeviceType = "modbus_verified"
	DeviceTypeModbusUnverified DeviceType = "modbus_unverified"
	DeviceTypeDongleCandidate  DeviceType = "dongle_candidate"
)

// Ports the scanner probes by default.
const (
	PortModbus = 502
	PortDongle = 8000
)

// Config configures one scan run.
type Config struct {
	IPRange     string
	Ports       []int
	Timeout     float64 // seconds
	Concurrency int
	VerifyModbus bool
	LookupMAC    bool
}

// DefaultConfig returns a Config with the teacher-equivalent defaults: both
// standard ports, a 2-second per-host timeout, 50-way concurrency,
// verification and MAC lookup both on.
func DefaultConfig(ipRange string) Config {
	return Config{
		IPRange:      ipRange,
		Ports:        []int{PortModbus, PortDongle},
		Timeout:      2.0,
		Concurrency:  50,
		VerifyModbus: true,
		LookupMAC:    true,
	}
}

// Result is one scan hit.
type Result struct {
	IP              string
	Port            int
	DeviceType      DeviceType
	Serial          string
	ModelFamily     string
	DeviceTypeCode  uint16
	FirmwareVersion string
	MACAddress      string
	MACVendor       string
	ResponseTimeMS  float64
	Error           string
}

// IsVerified reports whether this hit is a confirmed Modbus EG4 device.
func (r Result) IsVerified() bool { return r.DeviceType == DeviceTypeModbusVerified }

// IsDongleCandidate reports whether this hit is an open dongle port.
func (r Result) IsDongleCandidate() bool { return r.DeviceType == DeviceTypeDongleCandidate }

// Progress reports scan completion counts, emitted every 10 hosts and once
// more at completion.
type Progress struct {
	TotalHosts int
	Scanned    int
	Found      int
}

// ProgressFunc is invoked with each Progress update.
type ProgressFunc func(Progress)
