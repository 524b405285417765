// Package modbus implements the Modbus-TCP transport (C5): a standard
// Modbus-TCP client bound to (host, port=502, unit_id=1), grounded on
// sigenergy/modbus_client.go's client-wrapper shape and
// original_source/src/pylxpweb/transports/_modbus_base.py's retry/backoff/
// pacing/reconnect/write-coalescing algorithm.
package modbus

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	goburrow "github.com/goburrow/modbus"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/internal/logx"
	"github.com/devskill-org/lxpclient/regmap"
	"github.com/devskill-org/lxpclient/transport"
)

// DefaultPort is the standard Modbus-TCP port.
const DefaultPort = 502

// MaxWordsPerRequest is the conservative per-request word cap (spec.md
// §4.5): below the 125-word protocol ceiling, chosen so a single request
// fits a typical framed dongle MTU.
const MaxWordsPerRequest = 40

// Config configures a Transport.
type Config struct {
	Host           string
	Port           int
	UnitID         byte
	Timeout        time.Duration
	ExpectedSerial string
	// Family, if set, overrides Discovery's device-type-code mapping.
	Family device.Family
	Policy transport.RetryPolicy
}

// Transport is the Modbus-TCP implementation of transport.Transport.
type Transport struct {
	cfg     Config
	handler *goburrow.TCPClientHandler
	client  goburrow.Client

	mu       sync.Mutex
	guard    *transport.ReconnectGuard
	identity device.Identity
	warning  string
}

// New constructs a disconnected Transport.
func New(cfg Config) *Transport {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.UnitID == 0 {
		cfg.UnitID = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Policy == (transport.RetryPolicy{}) {
		cfg.Policy = transport.DefaultRetryPolicy()
	}
	return &Transport{cfg: cfg, guard: transport.NewReconnectGuard(cfg.Policy)}
}

func (t *Transport) addr() string {
	return fmt.Sprintf("%s:%d", t.cfg.Host, t.cfg.Port)
}

// Connect dials the device and runs the identity probe (spec.md §4.5
// "Identity probe").
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	handler := goburrow.NewTCPClientHandler(t.addr())
	handler.SlaveId = t.cfg.UnitID
	handler.Timeout = t.cfg.Timeout
	if err := handler.Connect(); err != nil {
		return transport.NewError(transport.ConnectionError, "connect", err, "host", t.cfg.Host, "port", t.cfg.Port)
	}
	t.handler = handler
	t.client = goburrow.NewClient(handler)

	identity, err := t.probeIdentity(ctx)
	if err != nil {
		_ = handler.Close()
		return err
	}
	t.identity = identity
	return nil
}

// Disconnect closes the underlying socket. Idempotent.
func (t *Transport) Disconnect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.handler == nil {
		return nil
	}
	err := t.handler.Close()
	t.handler = nil
	t.client = nil
	if err != nil {
		return transport.NewError(transport.ConnectionError, "disconnect", err)
	}
	return nil
}

func (t *Transport) reconnect(ctx context.Context) error {
	if !t.guard.ShouldReconnect() {
		return nil
	}
	// The caller holds t.mu; Disconnect and Connect take it themselves.
	t.mu.Unlock()
	defer t.mu.Lock()
	if err := t.Disconnect(ctx); err != nil {
		return err
	}
	if err := t.Connect(ctx); err != nil {
		return err
	}
	t.guard.Reset()
	return nil
}

func (t *Transport) probeIdentity(ctx context.Context) (device.Identity, error) {
	deviceType, err := t.readHoldingWord(ctx, regmap.HoldDeviceTypeAddress)
	if err != nil {
		return device.Identity{}, err
	}
	family := device.FamilyFromDeviceTypeCode(deviceType)
	if t.cfg.Family != device.FamilyUnknown {
		family = t.cfg.Family
	}

	serialRegs, err := t.readHoldingWords(ctx, regmap.HoldSerialAddress, regmap.HoldSerialWordCount)
	if err != nil {
		return device.Identity{}, err
	}
	serial, _ := regmap.DecodeASCIIString(serialRegs, regmap.HoldSerialAddress, regmap.HoldSerialWordCount)

	fwRegs, err := t.readHoldingWords(ctx, regmap.HoldFirmwareAddress, regmap.HoldFirmwareWordCount)
	if err != nil {
		return device.Identity{}, err
	}
	firmware, _ := regmap.DecodeASCIIString(fwRegs, regmap.HoldFirmwareAddress, regmap.HoldFirmwareWordCount)

	if t.cfg.ExpectedSerial != "" && t.cfg.ExpectedSerial != serial {
		t.warning = fmt.Sprintf("expected serial %q but device reports %q", t.cfg.ExpectedSerial, serial)
		logx.WithDevice(serial).Warn(t.warning)
	}

	return device.Identity{
		Serial:          serial,
		DeviceTypeCode:  deviceType,
		FirmwareVersion: firmware,
		Family:          family,
	}, nil
}

func (t *Transport) readHoldingWord(ctx context.Context, address uint16) (uint16, error) {
	regs, err := t.readHoldingWords(ctx, address, 1)
	if err != nil {
		return 0, err
	}
	return regs[address], nil
}

func (t *Transport) readHoldingWords(ctx context.Context, start uint16, count int) (regmap.RawRegisters, error) {
	out := make(regmap.RawRegisters, count)
	_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
		bytes, err := t.client.ReadHoldingRegisters(start, uint16(count))
		if err != nil {
			t.guard.RecordError()
			return classifyReadErr("read", err)
		}
		t.guard.RecordSuccess()
		for i := 0; i < count; i++ {
			out[start+uint16(i)] = binary.BigEndian.Uint16(bytes[i*2 : i*2+2])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// classifyReadErr wraps a failed register read as a TimeoutError when err is
// a context deadline or a net.Error reporting Timeout(), and as a ReadError
// otherwise. This distinction matters because transport.IsRetryable only
// allows TimeoutError/ConnectionError through; collapsing timeouts into
// ReadError would make them permanently non-retryable.
func classifyReadErr(op string, err error, kv ...any) error {
	kind := transport.ReadError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = transport.TimeoutError
	}
	return transport.NewError(kind, op, err, kv...)
}

// Identity returns the identity established at Connect time.
func (t *Transport) Identity() device.Identity {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.identity
}

// Capabilities reports this transport's capability flags.
func (t *Transport) Capabilities() transport.Capabilities {
	return transport.Capabilities{CanReadBattery: true, IsLocal: true, RequiresAuthentication: false}
}

func (t *Transport) registerMapFor(family device.Family) *regmap.RegisterMap {
	switch family {
	case device.FamilyLXPEU:
		return regmap.LXPEURuntime
	case device.FamilyGridBossMID:
		return regmap.GridBossRuntime
	default:
		return regmap.PVSeriesRuntime
	}
}

func (t *Transport) groupsFor(family device.Family) []regmap.RegisterGroup {
	if family == device.FamilyGridBossMID {
		return regmap.GridBossGroups
	}
	return regmap.PVSeriesGroups
}

// readInputGroups issues one FC4 request per named group (or all groups
// when names is empty), merging results into one RawRegisters map, with
// the adaptive inter-group pacing rule from spec.md §4.5.
func (t *Transport) readInputGroups(ctx context.Context, groups []regmap.RegisterGroup, names []string) (regmap.RawRegisters, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.reconnect(ctx); err != nil {
		return nil, err
	}

	selected := groups
	if len(names) > 0 {
		selected = nil
		wanted := make(map[string]bool, len(names))
		for _, n := range names {
			wanted[n] = true
		}
		for _, g := range groups {
			if wanted[g.Name] {
				selected = append(selected, g)
			}
		}
	}

	merged := make(regmap.RawRegisters)
	pacer := transport.NewPacer(t.cfg.Policy)

	for idx, g := range selected {
		if idx > 0 {
			if err := pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		retried := false
		words, err := t.readInputGroup(ctx, g, &retried)
		pacer.Note(retried)
		if err != nil {
			return nil, err
		}
		for addr, v := range words {
			merged[addr] = v
		}
	}

	return merged, nil
}

func (t *Transport) readInputGroup(ctx context.Context, g regmap.RegisterGroup, retried *bool) (regmap.RawRegisters, error) {
	out := make(regmap.RawRegisters, g.Count)
	start := g.Start
	remaining := int(g.Count)

	for remaining > 0 {
		chunk := remaining
		if chunk > MaxWordsPerRequest {
			chunk = MaxWordsPerRequest
		}

		attempts, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			bytes, err := t.client.ReadInputRegisters(start, uint16(chunk))
			if err != nil {
				t.guard.RecordError()
				return classifyReadErr("read_input_registers", err, "address", start, "count", chunk)
			}
			t.guard.RecordSuccess()
			for i := 0; i < chunk; i++ {
				out[start+uint16(i)] = binary.BigEndian.Uint16(bytes[i*2 : i*2+2])
			}
			return nil
		})
		if attempts > 0 {
			*retried = true
		}
		if err != nil {
			return nil, err
		}

		start += uint16(chunk)
		remaining -= chunk
	}

	return out, nil
}

// ReadRuntime implements transport.Transport.
func (t *Transport) ReadRuntime(ctx context.Context) (*device.RuntimeRecord, error) {
	family := t.Identity().Family
	if family == device.FamilyGridBossMID {
		return nil, transport.NewError(transport.DeviceErrorKind, "read_runtime", nil, "reason", "GRIDBOSS_MID exposes read_gridinterface_runtime, not read_runtime")
	}
	regs, err := t.readInputGroups(ctx, t.groupsFor(family), nil)
	if err != nil {
		return nil, err
	}
	return device.DecodeRuntime(regs, t.registerMapFor(family)), nil
}

// ReadEnergy implements transport.Transport. Per spec.md §7, a failed
// supplementary bms_data read does not fail the primary Energy read.
func (t *Transport) ReadEnergy(ctx context.Context) (*device.EnergyRecord, error) {
	family := t.Identity().Family
	m := t.registerMapFor(family)

	regs, err := t.readInputGroups(ctx, t.groupsFor(family), []string{"power_energy", "status_energy"})
	if err != nil {
		return nil, err
	}

	bmsRegs, err := t.readInputGroups(ctx, t.groupsFor(family), []string{"bms_data"})
	if err != nil {
		logx.WithOperation("read_energy").WithError(err).Debug("bms_data registers unavailable, continuing without them")
		bmsRegs = nil
	}

	return device.DecodeEnergy(regs, bmsRegs, m), nil
}

// ReadBattery implements transport.Transport.
func (t *Transport) ReadBattery(ctx context.Context, includeIndividual bool) (*device.BatteryBankRecord, error) {
	family := t.Identity().Family
	m := t.registerMapFor(family)

	bankRegs, err := t.readInputGroups(ctx, t.groupsFor(family), []string{"bms_data"})
	if err != nil {
		return nil, err
	}

	bank := device.DecodeBatteryBank(bankRegs, nil, m)
	if bank == nil || !includeIndividual || bank.BatteryCount == 0 {
		return bank, nil
	}

	toRead := bank.BatteryCount
	if toRead > regmap.IndividualBatteryMaxCount {
		toRead = regmap.IndividualBatteryMaxCount
	}
	totalWords := toRead * int(regmap.IndividualBatteryRegisterCount)

	individual := make(regmap.RawRegisters, totalWords)
	start := regmap.IndividualBatteryBaseAddress
	remaining := totalWords
	for remaining > 0 {
		chunk := remaining
		if chunk > MaxWordsPerRequest {
			chunk = MaxWordsPerRequest
		}
		words, err := t.readInputWindow(ctx, start, uint16(chunk))
		if err != nil {
			return nil, err
		}
		for addr, v := range words {
			individual[addr] = v
		}
		start += uint16(chunk)
		remaining -= chunk
	}

	return device.DecodeBatteryBank(bankRegs, individual, m), nil
}

func (t *Transport) readInputWindow(ctx context.Context, start uint16, count uint16) (regmap.RawRegisters, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(regmap.RawRegisters, count)
	_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
		bytes, err := t.client.ReadInputRegisters(start, count)
		if err != nil {
			t.guard.RecordError()
			return classifyReadErr("read_input_registers", err, "address", start, "count", count)
		}
		t.guard.RecordSuccess()
		for i := 0; i < int(count); i++ {
			out[start+uint16(i)] = binary.BigEndian.Uint16(bytes[i*2 : i*2+2])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadGridInterfaceRuntime implements transport.Transport.
func (t *Transport) ReadGridInterfaceRuntime(ctx context.Context) (*device.GridInterfaceRuntimeRecord, error) {
	family := t.Identity().Family
	if family != device.FamilyGridBossMID {
		return nil, transport.NewError(transport.DeviceErrorKind, "read_gridinterface_runtime", nil, "reason", "identity is not GRIDBOSS_MID")
	}
	regs, err := t.readInputGroups(ctx, t.groupsFor(family), nil)
	if err != nil {
		return nil, err
	}
	return device.DecodeGridInterfaceRuntime(regs, t.registerMapFor(family)), nil
}

// ReadParameters implements transport.Transport, chunking by
// MaxWordsPerRequest via FC3.
func (t *Transport) ReadParameters(ctx context.Context, start uint16, count uint16) (transport.ParameterMap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(transport.ParameterMap, count)
	remaining := int(count)
	addr := start
	for remaining > 0 {
		chunk := remaining
		if chunk > MaxWordsPerRequest {
			chunk = MaxWordsPerRequest
		}
		_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			bytes, err := t.client.ReadHoldingRegisters(addr, uint16(chunk))
			if err != nil {
				t.guard.RecordError()
				return classifyReadErr("read_parameters", err, "address", addr, "count", chunk)
			}
			t.guard.RecordSuccess()
			for i := 0; i < chunk; i++ {
				v := binary.BigEndian.Uint16(bytes[i*2 : i*2+2])
				out[strconv.Itoa(int(addr)+i)] = int(v)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		addr += uint16(chunk)
		remaining -= chunk
	}
	return out, nil
}

// WriteParameters implements transport.Transport. Consecutive addresses are
// coalesced into a single multi-write (FC16); an isolated address uses FC6
// (spec.md §4.5/§8 scenario 2).
func (t *Transport) WriteParameters(ctx context.Context, updates transport.ParameterMap) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	groups := transport.CoalesceWrites(updates)
	for _, g := range groups {
		if len(g.Values) == 1 {
			_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
				_, err := t.client.WriteSingleRegister(g.StartAddress, g.Values[0])
				if err != nil {
					return transport.NewError(transport.WriteError, "write_single_register", err, "address", g.StartAddress)
				}
				return nil
			})
			if err != nil {
				return err
			}
			continue
		}

		payload := make([]byte, len(g.Values)*2)
		for i, v := range g.Values {
			binary.BigEndian.PutUint16(payload[i*2:], v)
		}
		_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			_, err := t.client.WriteMultipleRegisters(g.StartAddress, uint16(len(g.Values)), payload)
			if err != nil {
				return transport.NewError(transport.WriteError, "write_multiple_registers", err, "address", g.StartAddress, "count", len(g.Values))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadSerial implements transport.Transport.
func (t *Transport) ReadSerial(ctx context.Context) (string, error) {
	return t.Identity().Serial, nil
}

// ReadFirmware implements transport.Transport.
func (t *Transport) ReadFirmware(ctx context.Context) (string, error) {
	return t.Identity().FirmwareVersion, nil
}

// ReadDeviceType implements transport.Transport.
func (t *Transport) ReadDeviceType(ctx context.Context) (uint16, error) {
	return t.Identity().DeviceTypeCode, nil
}

var _ transport.Transport = (*Transport)(nil)
