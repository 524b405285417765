package cloud

import (
	"context"
	"strconv"
	"strings"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/transport"
)

// Transport adapts a Client bound to one inverter serial to the
// transport.Transport contract, so the cloud path is interchangeable with
// the local transports from a caller's perspective (spec.md §4.3/§4.4).
// Unlike the local transports it decodes typed JSON fields rather than raw
// register words; invariants (missing-vs-zero via nil pointers) are
// preserved the same way.
type Transport struct {
	client *Client
	serial string
	family device.Family
}

// NewTransport builds a cloud Transport bound to one device serial. family
// may be device.FamilyUnknown; Connect then infers it from the device list
// unless the caller already knows it.
func NewTransport(client *Client, serial string, family device.Family) *Transport {
	return &Transport{client: client, serial: serial, family: family}
}

// Connect logs in and, if the family wasn't supplied, infers it from the
// cloud device-type string for this serial.
func (t *Transport) Connect(ctx context.Context) error {
	if _, err := t.client.Login(ctx); err != nil {
		return err
	}
	if t.family != device.FamilyUnknown {
		return nil
	}

	plants, err := t.client.Plants.ListPlants(ctx)
	if err != nil {
		return err
	}
	for _, plant := range plants.Rows {
		devices, err := t.client.Devices.ListDevices(ctx, plant.PlantID)
		if err != nil {
			continue
		}
		for _, d := range devices.Rows {
			if d.SerialNum != t.serial {
				continue
			}
			t.family = familyFromDeviceTypeString(d.DeviceType)
			return nil
		}
	}
	return transport.NewError(transport.DeviceErrorKind, "connect", nil, "reason", "serial not found in any plant's device list", "serial", t.serial)
}

func familyFromDeviceTypeString(deviceType string) device.Family {
	upper := strings.ToUpper(deviceType)
	switch {
	case strings.Contains(upper, "GRIDBOSS"), strings.Contains(upper, "MID"):
		return device.FamilyGridBossMID
	case strings.Contains(upper, "LXP"):
		return device.FamilyLXPEU
	case strings.Contains(upper, "SNA"):
		return device.FamilySNA
	case strings.Contains(upper, "FLEXBOSS"):
		return device.FamilyFlexBoss
	default:
		return device.FamilyPVSeries
	}
}

// Disconnect is a no-op: the cloud transport holds no persistent socket,
// only a cookie-jar-backed http.Client.
func (t *Transport) Disconnect(ctx context.Context) error { return nil }

// ReadRuntime implements transport.Transport.
func (t *Transport) ReadRuntime(ctx context.Context) (*device.RuntimeRecord, error) {
	if t.family == device.FamilyGridBossMID {
		return nil, transport.NewError(transport.DeviceErrorKind, "read_runtime", nil, "reason", "GRIDBOSS_MID exposes read_gridinterface_runtime, not read_runtime")
	}
	resp, err := t.client.Devices.GetInverterRuntime(ctx, t.serial)
	if err != nil {
		return nil, err
	}
	return decodeRuntimeResponse(resp), nil
}

func decodeRuntimeResponse(r *InverterRuntimeResponse) *device.RuntimeRecord {
	rec := &device.RuntimeRecord{
		PV1Voltage:    r.Vpv1,
		PV2Voltage:    r.Vpv2,
		PV3Voltage:    r.Vpv3,
		PV1Power:      r.Ppv1,
		PV2Power:      r.Ppv2,
		PV3Power:      r.Ppv3,
		PVTotalPower:  r.PPV,
		BatteryVoltage: r.VBat,
		BatterySOC:     r.SOC,
		BatterySOH:     r.SOH,
		GridVoltageR:   r.VacR,
		GridVoltageS:   r.VacS,
		GridVoltageT:   r.VacT,
		GridFrequency:  r.Fac,
		InverterPower:  r.PinV,
		LoadPower:      r.PLoad,
		ExportPower:    r.PToGrid,
		ImportPower:    r.PToUser,
	}
	rec.BatteryPower = signedChargeDischarge(r.PCharge, r.PDisCharge)
	return rec
}

// signedChargeDischarge folds the cloud API's separate charge/discharge
// power fields into the one signed BatteryPower field the local transports
// decode directly from a signed register (positive charging, negative
// discharging), mirroring decode_runtime.go's convention.
func signedChargeDischarge(charge, discharge *float64) *float64 {
	switch {
	case charge != nil && *charge != 0:
		v := *charge
		return &v
	case discharge != nil && *discharge != 0:
		v := -*discharge
		return &v
	case charge != nil:
		v := 0.0
		return &v
	default:
		return nil
	}
}

// ReadEnergy implements transport.Transport.
func (t *Transport) ReadEnergy(ctx context.Context) (*device.EnergyRecord, error) {
	resp, err := t.client.Devices.GetInverterEnergy(ctx, t.serial)
	if err != nil {
		return nil, err
	}
	return &device.EnergyRecord{
		PV1EnergyToday:        resp.Epv1Today,
		PV2EnergyToday:        resp.Epv2Today,
		BatteryChargeToday:    resp.EChgToday,
		BatteryDischargeToday: resp.EDisChgToday,
		GridImportToday:       resp.EToUserToday,
		GridExportToday:       resp.EToGridToday,
		LoadEnergyToday:       resp.ELoadToday,
		PVEnergyLifetime:         resp.EpvTotal,
		BatteryChargeLifetime:    resp.EChgTotal,
		BatteryDischargeLifetime: resp.EDisChgTotal,
		GridImportLifetime:       resp.EToUserTotal,
		GridExportLifetime:       resp.EToGridTotal,
		LoadEnergyLifetime:       resp.ELoadTotal,
	}, nil
}

// ReadBattery implements transport.Transport.
func (t *Transport) ReadBattery(ctx context.Context, includeIndividual bool) (*device.BatteryBankRecord, error) {
	resp, err := t.client.Devices.GetBatteryInfo(ctx, t.serial)
	if err != nil {
		return nil, err
	}
	if len(resp.BatteryArray) == 0 {
		return nil, nil
	}
	bank := &device.BatteryBankRecord{
		BankVoltage:  resp.Voltage,
		BankCurrent:  resp.Current,
		BankSOC:      resp.SOC,
		BankSOH:      resp.SOH,
		BatteryCount: len(resp.BatteryArray),
	}
	if !includeIndividual {
		return bank, nil
	}
	for i, unit := range resp.BatteryArray {
		bank.Modules = append(bank.Modules, device.BatteryModule{
			Index:      i,
			Serial:     unit.BatterySN,
			CapacityAh: unit.BatteryCapacityAh,
			Voltage:    unit.Voltage,
			Current:    unit.Current,
			SOC:        unit.SOC,
			SOH:        unit.SOH,
			CycleCount: unit.CycleCount,
			MaxCellMV:  unit.MaxCellVoltage,
			MinCellMV:  unit.MinCellVoltage,
		})
	}
	return bank, nil
}

// ReadGridInterfaceRuntime implements transport.Transport.
func (t *Transport) ReadGridInterfaceRuntime(ctx context.Context) (*device.GridInterfaceRuntimeRecord, error) {
	if t.family != device.FamilyGridBossMID {
		return nil, transport.NewError(transport.DeviceErrorKind, "read_gridinterface_runtime", nil, "reason", "identity is not GRIDBOSS_MID")
	}
	resp, err := t.client.Devices.GetMidboxRuntime(ctx, t.serial)
	if err != nil {
		return nil, err
	}
	rec := &device.GridInterfaceRuntimeRecord{
		GridVoltage:   resp.GridVoltage,
		GridFrequency: resp.GridFreq,
	}
	for _, sp := range resp.SmartPort {
		rec.SmartPorts = append(rec.SmartPorts, device.SmartPort{
			Port:           sp.Port,
			Status:         sp.Status,
			SmartLoadL1Power: sp.SmartLoadPower,
			ACCoupleL1Power:  sp.ACCoupleLXPower,
		})
	}
	return rec, nil
}

// ReadParameters implements transport.Transport. start/count are ignored
// here beyond being forwarded as a register window: the cloud API returns
// named parameters, which this wraps into the address-keyed ParameterMap
// contract by using the register window bounds as the cache/window key
// only -- callers that need named parameters should use
// Client.Control.ReadParameters directly for the full flat response.
func (t *Transport) ReadParameters(ctx context.Context, start uint16, count uint16) (transport.ParameterMap, error) {
	resp, err := t.client.Control.ReadParameters(ctx, t.serial, int(start), int(count), true)
	if err != nil {
		return nil, err
	}
	out := make(transport.ParameterMap, len(resp.Extra))
	for name, value := range resp.Parameters() {
		out[name] = value
	}
	return out, nil
}

// WriteParameters implements transport.Transport, writing each named
// parameter individually: the cloud API has no multi-write primitive to
// coalesce into, unlike the local transports' FC16.
func (t *Transport) WriteParameters(ctx context.Context, updates transport.ParameterMap) error {
	for name, value := range updates {
		if _, err := t.client.Control.WriteParameter(ctx, t.serial, name, strconv.Itoa(value)); err != nil {
			return err
		}
	}
	return nil
}

// ReadSerial implements transport.Transport.
func (t *Transport) ReadSerial(ctx context.Context) (string, error) { return t.serial, nil }

// ReadFirmware implements transport.Transport.
func (t *Transport) ReadFirmware(ctx context.Context) (string, error) {
	status, err := t.client.Control.GetFirmwareStatus(ctx, t.serial)
	if err != nil {
		return "", err
	}
	return status.CurrentVersion, nil
}

// ReadDeviceType implements transport.Transport, returning the family's
// canonical device-type code rather than issuing a dedicated request: the
// cloud API has no register-level identity probe.
func (t *Transport) ReadDeviceType(ctx context.Context) (uint16, error) {
	switch t.family {
	case device.FamilyFlexBoss:
		return device.DeviceTypeCodeFlexBoss, nil
	case device.FamilyLXPEU:
		return device.DeviceTypeCodeLXPEU, nil
	case device.FamilySNA:
		return device.DeviceTypeCodeSNA, nil
	case device.FamilyGridBossMID:
		return device.DeviceTypeCodeGridBossMID, nil
	default:
		return device.DeviceTypeCodePVSeries, nil
	}
}

// Identity returns the best-known identity; firmware is not populated
// without a ReadFirmware call since it requires a dedicated request.
func (t *Transport) Identity() device.Identity {
	return device.Identity{Serial: t.serial, Family: t.family}
}

// Capabilities implements transport.Transport.
func (t *Transport) Capabilities() transport.Capabilities {
	return transport.Capabilities{CanReadBattery: true, IsLocal: false, RequiresAuthentication: true}
}

var _ transport.Transport = (*Transport)(nil)
