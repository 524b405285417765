package dongle

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/internal/logx"
	"github.com/devskill-org/lxpclient/regmap"
	"github.com/devskill-org/lxpclient/transport"
)

// DefaultPort is the dongle's fixed TCP port.
const DefaultPort = 8000

// MaxWordsPerRequest mirrors the Modbus transport's conservative per-request
// cap (spec.md §4.6: "same register semantics as §4.5").
const MaxWordsPerRequest = 40

// Config configures a Transport.
type Config struct {
	Host           string
	Port           int
	DongleSerial   string
	InverterSerial string
	Timeout        time.Duration
	Family         device.Family
	Policy         transport.RetryPolicy
}

// Transport is the dongle implementation of transport.Transport. It holds
// exactly one TCP connection at a time: the dongle refuses a second
// concurrent client, so every frame exchange is serialised by mu (spec.md
// §4.6 "single-session limit").
type Transport struct {
	cfg   Config
	conn  net.Conn
	mu    sync.Mutex
	guard *transport.ReconnectGuard

	identity device.Identity
}

// New constructs a disconnected Transport.
func New(cfg Config) *Transport {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Policy == (transport.RetryPolicy{}) {
		cfg.Policy = transport.DefaultRetryPolicy()
	}
	return &Transport{cfg: cfg, guard: transport.NewReconnectGuard(cfg.Policy)}
}

// Connect dials the dongle and runs the identity probe.
func (t *Transport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var d net.Dialer
	dialCtx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return transport.NewError(transport.ConnectionError, "connect", err, "host", t.cfg.Host, "port", t.cfg.Port)
	}
	t.conn = conn

	identity, err := t.probeIdentity(ctx)
	if err != nil {
		_ = conn.Close()
		t.conn = nil
		return err
	}
	t.identity = identity
	return nil
}

// Disconnect closes the socket. Idempotent.
func (t *Transport) Disconnect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
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

// exchange sends a frame and reads the response frame, applying the
// configured deadline. Caller must hold t.mu.
func (t *Transport) exchange(ctx context.Context, f frame) (frame, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetDeadline(deadline)
	} else {
		_ = t.conn.SetDeadline(time.Now().Add(t.cfg.Timeout))
	}

	if _, err := t.conn.Write(encodeFrame(f)); err != nil {
		t.guard.RecordError()
		return frame{}, transport.NewError(transport.ConnectionError, "write_frame", err)
	}
	resp, err := decodeFrame(t.conn)
	if err != nil {
		t.guard.RecordError()
		return frame{}, classifyReadErr("read_frame", err)
	}
	t.guard.RecordSuccess()
	return resp, nil
}

// classifyReadErr wraps a failed frame read as a TimeoutError when err is a
// context deadline or a net.Error reporting Timeout(), and as a ReadError
// otherwise, mirroring modbus.classifyReadErr: transport.IsRetryable only
// allows TimeoutError/ConnectionError through, so a real timeout collapsed
// into ReadError would never be retried.
func classifyReadErr(op string, err error, kv ...any) error {
	kind := transport.ReadError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = transport.TimeoutError
	}
	return transport.NewError(kind, op, err, kv...)
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

	if t.cfg.InverterSerial != "" && t.cfg.InverterSerial != serial {
		logx.WithDevice(serial).Warnf("expected serial %q but device reports %q", t.cfg.InverterSerial, serial)
	}

	return device.Identity{Serial: serial, DeviceTypeCode: deviceType, FirmwareVersion: firmware, Family: family}, nil
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
		resp, err := t.exchange(ctx, frame{
			Function:       funcReadHolding,
			DongleSerial:   t.cfg.DongleSerial,
			InverterSerial: t.cfg.InverterSerial,
			Address:        start,
			Count:          uint16(count),
		})
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			out[start+uint16(i)] = binary.BigEndian.Uint16(resp.Payload[i*2 : i*2+2])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
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
		words, err := t.readInputWindowChunked(ctx, g.Start, g.Count, &retried)
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

func (t *Transport) readInputWindowChunked(ctx context.Context, start uint16, count uint16, retried *bool) (regmap.RawRegisters, error) {
	out := make(regmap.RawRegisters, count)
	addr := start
	remaining := int(count)
	for remaining > 0 {
		chunk := remaining
		if chunk > MaxWordsPerRequest {
			chunk = MaxWordsPerRequest
		}
		attempts, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			resp, err := t.exchange(ctx, frame{
				Function:       funcReadInput,
				DongleSerial:   t.cfg.DongleSerial,
				InverterSerial: t.cfg.InverterSerial,
				Address:        addr,
				Count:          uint16(chunk),
			})
			if err != nil {
				return err
			}
			for i := 0; i < chunk; i++ {
				out[addr+uint16(i)] = binary.BigEndian.Uint16(resp.Payload[i*2 : i*2+2])
			}
			return nil
		})
		if attempts > 0 {
			*retried = true
		}
		if err != nil {
			return nil, err
		}
		addr += uint16(chunk)
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

// ReadEnergy implements transport.Transport.
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
	totalWords := uint16(toRead * int(regmap.IndividualBatteryRegisterCount))

	t.mu.Lock()
	var retried bool
	individual, err := t.readInputWindowChunked(ctx, regmap.IndividualBatteryBaseAddress, totalWords, &retried)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return device.DecodeBatteryBank(bankRegs, individual, m), nil
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

// ReadParameters implements transport.Transport.
func (t *Transport) ReadParameters(ctx context.Context, start uint16, count uint16) (transport.ParameterMap, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(transport.ParameterMap, count)
	addr := start
	remaining := int(count)
	for remaining > 0 {
		chunk := remaining
		if chunk > MaxWordsPerRequest {
			chunk = MaxWordsPerRequest
		}
		_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			resp, err := t.exchange(ctx, frame{
				Function:       funcReadHolding,
				DongleSerial:   t.cfg.DongleSerial,
				InverterSerial: t.cfg.InverterSerial,
				Address:        addr,
				Count:          uint16(chunk),
			})
			if err != nil {
				return err
			}
			for i := 0; i < chunk; i++ {
				v := binary.BigEndian.Uint16(resp.Payload[i*2 : i*2+2])
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

// WriteParameters implements transport.Transport, coalescing consecutive
// addresses into one multi-write frame (spec.md §4.5/§4.6/§8 scenario 2).
func (t *Transport) WriteParameters(ctx context.Context, updates transport.ParameterMap) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, g := range transport.CoalesceWrites(updates) {
		payload := make([]byte, len(g.Values)*2)
		for i, v := range g.Values {
			binary.BigEndian.PutUint16(payload[i*2:], v)
		}
		fn := byte(funcWriteMulti)
		if len(g.Values) == 1 {
			fn = funcWriteSingle
		}
		_, err := transport.Retry(ctx, t.cfg.Policy, func(attempt int) error {
			_, err := t.exchange(ctx, frame{
				Function:       fn,
				DongleSerial:   t.cfg.DongleSerial,
				InverterSerial: t.cfg.InverterSerial,
				Address:        g.StartAddress,
				Count:          uint16(len(g.Values)),
				Payload:        payload,
			})
			if err != nil {
				return transport.NewError(transport.WriteError, "write_parameters", err, "address", g.StartAddress, "count", len(g.Values))
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
func (t *Transport) ReadSerial(ctx context.Context) (string, error) { return t.Identity().Serial, nil }

// ReadFirmware implements transport.Transport.
func (t *Transport) ReadFirmware(ctx context.Context) (string, error) {
	return t.Identity().FirmwareVersion, nil
}

// ReadDeviceType implements transport.Transport.
func (t *Transport) ReadDeviceType(ctx context.Context) (uint16, error) {
	return t.Identity().DeviceTypeCode, nil
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

var _ transport.Transport = (*Transport)(nil)
