// Package transport declares the operation set every transport (cloud,
// Modbus-TCP, dongle) exposes, per spec.md §4.3, plus the shared retry/
// backoff/pacing discipline the two local transports honor identically.
package transport

import (
	"context"

	"github.com/devskill-org/lxpclient/device"
)

// Capabilities exposes what a given transport instance supports.
type Capabilities struct {
	CanReadBattery        bool
	IsLocal               bool
	RequiresAuthentication bool
}

// ParameterMap is a generic name-or-address keyed parameter set. Local
// transports key by register address (formatted as a base-10 string);
// the cloud transport keys by canonical hold-parameter name.
type ParameterMap map[string]int

// Transport is the operation set spec.md §4.3 requires of every transport.
// Every method either returns a typed record/value or a classified *Error.
type Transport interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error

	ReadRuntime(ctx context.Context) (*device.RuntimeRecord, error)
	ReadEnergy(ctx context.Context) (*device.EnergyRecord, error)
	// ReadBattery returns (nil, nil) when no battery is present -- that is
	// not an error condition (spec.md §3/§8).
	ReadBattery(ctx context.Context, includeIndividual bool) (*device.BatteryBankRecord, error)
	ReadParameters(ctx context.Context, start uint16, count uint16) (ParameterMap, error)
	// WriteParameters must coalesce consecutive local addresses into a
	// single multi-write (spec.md §4.5/§8).
	WriteParameters(ctx context.Context, updates ParameterMap) error

	// ReadGridInterfaceRuntime is only valid when Identity().Family is
	// GRIDBOSS_MID; other transports return a DeviceError.
	ReadGridInterfaceRuntime(ctx context.Context) (*device.GridInterfaceRuntimeRecord, error)

	ReadSerial(ctx context.Context) (string, error)
	ReadFirmware(ctx context.Context) (string, error)
	ReadDeviceType(ctx context.Context) (uint16, error)

	Identity() device.Identity
	Capabilities() Capabilities
}
