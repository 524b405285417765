package scanner

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/internal/logx"
	"github.com/devskill-org/lxpclient/modbus"
	"github.com/devskill-org/lxpclient/netrange"
)

// Scanner scans a configured IP range for EG4 Modbus-TCP and dongle
// devices, streaming results as they're found. Grounded directly on
// original_source/src/pylxpweb/scanner/scanner.py's NetworkScanner:
// semaphore-bounded concurrency, a progress callback fired every 10 hosts,
// and an optional Modbus verification pass per hit.
type Scanner struct {
	cfg      Config
	progress ProgressFunc
	cancelled atomic.Bool
}

// New constructs a Scanner. progress may be nil.
func New(cfg Config, progress ProgressFunc) *Scanner {
	return &Scanner{cfg: cfg, progress: progress}
}

// Cancel requests the in-progress scan stop launching new probes. Probes
// already in flight still complete and report their result.
func (s *Scanner) Cancel() { s.cancelled.Store(true) }

// Scan parses the configured IP range and probes every host/port
// combination, returning a channel of Results that closes when the scan
// completes. The channel should be drained with a range loop.
func (s *Scanner) Scan(ctx context.Context) (<-chan Result, error) {
	hosts, err := netrange.ParseIPRange(s.cfg.IPRange)
	if err != nil {
		return nil, err
	}

	out := make(chan Result, 16)
	if len(hosts) == 0 {
		close(out)
		return out, nil
	}

	total := len(hosts)
	var scanned, found int64
	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for _, ip := range hosts {
		if s.cancelled.Load() {
			break
		}
		wg.Add(1)
		go func(ip string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			for _, port := range s.cfg.Ports {
				if s.cancelled.Load() {
					break
				}
				result := s.probePort(ctx, ip, port)
				if result != nil {
					atomic.AddInt64(&found, 1)
					out <- *result
				}
			}

			n := atomic.AddInt64(&scanned, 1)
			if s.progress != nil && n%10 == 0 {
				s.progress(Progress{TotalHosts: total, Scanned: int(n), Found: int(atomic.LoadInt64(&found))})
			}
		}(ip)
	}

	go func() {
		wg.Wait()
		if s.progress != nil {
			s.progress(Progress{TotalHosts: total, Scanned: total, Found: int(atomic.LoadInt64(&found))})
		}
		close(out)
	}()

	return out, nil
}

func (s *Scanner) probePort(ctx context.Context, ip string, port int) *Result {
	start := time.Now()
	dialCtx, cancel := context.WithTimeout(ctx, timeoutDuration(s.cfg.Timeout))
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return nil
	}
	elapsedMS := float64(time.Since(start).Microseconds()) / 1000.0
	conn.Close()

	var mac, vendor string
	if s.cfg.LookupMAC {
		if addr, err := LookupMACAddress(ctx, ip); err == nil && addr != "" {
			mac = addr
			vendor = GetOUIVendor(addr)
		}
	}

	if port == PortModbus && s.cfg.VerifyModbus {
		return s.verifyModbus(ctx, ip, port, elapsedMS, mac, vendor)
	}
	if port == PortDongle {
		return &Result{IP: ip, Port: port, DeviceType: DeviceTypeDongleCandidate, MACAddress: mac, MACVendor: vendor, ResponseTimeMS: elapsedMS}
	}
	return &Result{IP: ip, Port: port, DeviceType: DeviceTypeModbusUnverified, MACAddress: mac, MACVendor: vendor, ResponseTimeMS: elapsedMS}
}

func (s *Scanner) verifyModbus(ctx context.Context, ip string, port int, elapsedMS float64, mac, vendor string) *Result {
	timeout := timeoutDuration(s.cfg.Timeout)
	if timeout < 2*time.Second {
		timeout = 2 * time.Second
	}

	t := modbus.New(modbus.Config{Host: ip, Port: port, Timeout: timeout})
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := t.Connect(connectCtx); err != nil {
		logx.WithOperation("scan_verify").Debugf("modbus verification failed for %s:%d: %v", ip, port, err)
		return &Result{IP: ip, Port: port, DeviceType: DeviceTypeModbusUnverified, MACAddress: mac, MACVendor: vendor, ResponseTimeMS: elapsedMS, Error: err.Error()}
	}
	defer t.Disconnect(ctx)

	// Connect already ran the identity probe (spec.md §4.5); no need to
	// repeat it through the discovery package here.
	identity := t.Identity()
	if identity.Family == device.FamilyUnknown {
		return &Result{
			IP: ip, Port: port, DeviceType: DeviceTypeModbusUnverified,
			DeviceTypeCode: identity.DeviceTypeCode,
			MACAddress:     mac, MACVendor: vendor, ResponseTimeMS: elapsedMS,
			Error: "unknown device type code",
		}
	}

	return &Result{
		IP: ip, Port: port, DeviceType: DeviceTypeModbusVerified,
		Serial:          identity.Serial,
		ModelFamily:     identity.Family.String(),
		DeviceTypeCode:  identity.DeviceTypeCode,
		FirmwareVersion: identity.FirmwareVersion,
		MACAddress:      mac, MACVendor: vendor, ResponseTimeMS: elapsedMS,
	}
}

func timeoutDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
