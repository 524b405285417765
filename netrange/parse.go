// Package netrange parses an IP-range expression (single address, CIDR, or
// dash range) into an ordered host list for the LAN scanner (C9), per
// spec.md §4.9. Grounded on
// original_source/tests/unit/scanner/test_utils.py's parse_ip_range
// contract, which this package reproduces exactly: RFC1918 + CGN ranges
// only, network/broadcast exclusion on CIDR, a 4094-host safety cap, and
// the same error-message vocabulary translated into classified errors.
package netrange

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/devskill-org/lxpclient/transport"
)

// MaxSafeHosts bounds how many hosts a single expression may expand to.
const MaxSafeHosts = 4094

// EstimateScanDuration estimates wall-clock scan time in seconds: probes are
// batched by concurrency, and each batch costs one timeout in the worst
// case. Grounded on
// original_source/tests/unit/scanner/test_utils.py::TestEstimateScanDuration.
func EstimateScanDuration(hostCount, portsPerHost int, timeoutSeconds float64, concurrency int) float64 {
	probes := hostCount * portsPerHost
	if probes == 0 || concurrency <= 0 {
		return 0
	}
	batches := (probes + concurrency - 1) / concurrency
	return float64(batches) * timeoutSeconds
}

// ParseIPRange parses expr (a single IP, a CIDR block, or a "start-end" dash
// range) into an ordered list of dotted-quad host strings.
func ParseIPRange(expr string) ([]string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, invalidRange(expr, nil)
	}

	if strings.Contains(expr, "/") {
		return parseCIDR(expr)
	}
	if strings.Contains(expr, "-") {
		return parseDashRange(expr)
	}
	return parseSingle(expr)
}

func parseSingle(expr string) ([]string, error) {
	addr, err := netip.ParseAddr(expr)
	if err != nil {
		return nil, invalidRange(expr, err)
	}
	if addr.Is6() {
		return nil, ipv6NotSupported()
	}
	if err := requirePrivate(addr); err != nil {
		return nil, err
	}
	return []string{addr.String()}, nil
}

func parseCIDR(expr string) ([]string, error) {
	prefix, err := netip.ParsePrefix(expr)
	if err != nil {
		return nil, invalidRange(expr, err)
	}
	addr := prefix.Addr()
	if addr.Is6() {
		return nil, ipv6NotSupported()
	}
	if err := requirePrivate(addr); err != nil {
		return nil, err
	}

	bits := prefix.Bits()
	if bits == 32 {
		return []string{addr.String()}, nil
	}

	hostBits := 32 - bits
	total := uint64(1) << uint(hostBits)
	// Network and broadcast addresses are excluded whenever the prefix
	// leaves room for them (i.e. narrower than /31).
	usable := total
	if hostBits >= 2 {
		usable -= 2
	}
	if usable > MaxSafeHosts {
		return nil, tooManyHosts(usable)
	}

	network := prefix.Masked().Addr()
	first := addrAdd(network, 1)
	out := make([]string, 0, usable)
	cur := first
	for i := uint64(0); i < usable; i++ {
		out = append(out, cur.String())
		cur = addrAdd(cur, 1)
	}
	return out, nil
}

func parseDashRange(expr string) ([]string, error) {
	parts := strings.SplitN(expr, "-", 2)
	if len(parts) != 2 {
		return nil, invalidRange(expr, nil)
	}
	startStr := strings.TrimSpace(parts[0])
	endStr := strings.TrimSpace(parts[1])

	start, err := netip.ParseAddr(startStr)
	if err != nil {
		return nil, invalidRangeElement(startStr, err)
	}
	end, err := netip.ParseAddr(endStr)
	if err != nil {
		return nil, invalidRangeElement(endStr, err)
	}
	if start.Is6() || end.Is6() {
		return nil, ipv6NotSupported()
	}
	if err := requirePrivate(start); err != nil {
		return nil, err
	}
	if err := requirePrivate(end); err != nil {
		return nil, err
	}

	startU := addrToUint32(start)
	endU := addrToUint32(end)
	if startU > endU {
		return nil, transport.NewError(transport.ConfigError, "parse_ip_range", nil,
			"reason", "Start IP must be <= end IP", "expr", expr)
	}

	// The host-count cap is checked before the subnet-span restriction: an
	// oversized range is reported as oversized even when it also crosses
	// several /24 boundaries.
	count := uint64(endU-startU) + 1
	if count > MaxSafeHosts {
		return nil, transport.NewError(transport.ConfigError, "parse_ip_range", nil,
			"reason", fmt.Sprintf("Range contains %d hosts, maximum is %d", count, MaxSafeHosts), "expr", expr)
	}

	// A dash range may cross at most one /24 boundary (e.g. .250-300.5);
	// anything wider is rejected even if the host count itself is small.
	if (endU>>8)-(startU>>8) > 1 {
		return nil, transport.NewError(transport.ConfigError, "parse_ip_range", nil,
			"reason", "Dash range spans multiple subnets", "expr", expr)
	}

	out := make([]string, 0, count)
	for u := startU; ; u++ {
		out = append(out, uint32ToAddr(u).String())
		if u == endU {
			break
		}
	}
	return out, nil
}

func requirePrivate(addr netip.Addr) error {
	if isPrivateOrCGN(addr) {
		return nil
	}
	return transport.NewError(transport.ConfigError, "parse_ip_range", nil,
		"reason", "Only private IP ranges are allowed", "address", addr.String())
}

// isPrivateOrCGN reports whether addr falls in 10.0.0.0/8, 172.16.0.0/12,
// 192.168.0.0/16, or the CGN/Tailscale range 100.64.0.0/10.
func isPrivateOrCGN(addr netip.Addr) bool {
	if !addr.Is4() {
		return false
	}
	b := addr.As4()
	switch {
	case b[0] == 10:
		return true
	case b[0] == 172 && b[1] >= 16 && b[1] <= 31:
		return true
	case b[0] == 192 && b[1] == 168:
		return true
	case b[0] == 100 && b[1] >= 64 && b[1] <= 127:
		return true
	default:
		return false
	}
}

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToAddr(u uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)})
}

func addrAdd(addr netip.Addr, delta uint32) netip.Addr {
	return uint32ToAddr(addrToUint32(addr) + delta)
}

func invalidRange(expr string, cause error) error {
	return transport.NewError(transport.ConfigError, "parse_ip_range", cause,
		"reason", "Invalid IP range", "expr", expr)
}

func invalidRangeElement(expr string, cause error) error {
	return transport.NewError(transport.ConfigError, "parse_ip_range", cause,
		"reason", "Invalid IP in range", "expr", expr)
}

func ipv6NotSupported() error {
	return transport.NewError(transport.ConfigError, "parse_ip_range", nil,
		"reason", "IPv6 scanning is not supported")
}

func tooManyHosts(count uint64) error {
	return transport.NewError(transport.ConfigError, "parse_ip_range", nil,
		"reason", fmt.Sprintf("Subnet contains %d hosts, maximum is %d", count, MaxSafeHosts))
}
