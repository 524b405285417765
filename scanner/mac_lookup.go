package scanner

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// KnownDongleOUIs maps known EG4 dongle vendor OUIs (first 3 octets,
// colon-separated, uppercase) to a vendor label. Grounded on
// original_source/tests/unit/scanner/test_mac_lookup.py's fixture OUIs.
var KnownDongleOUIs = map[string]string{
	"24:0A:C4": "Espressif",
	"3C:61:05": "Espressif",
	"A4:CF:12": "Espressif",
	"FC:F5:C4": "Espressif",
	"00:1A:FE": "Waveshare",
}

// GetOUIVendor returns the vendor label for mac's OUI prefix, or "" if
// unknown or malformed.
func GetOUIVendor(mac string) string {
	mac = strings.ToUpper(strings.TrimSpace(mac))
	if len(mac) < 8 {
		return ""
	}
	return KnownDongleOUIs[mac[:8]]
}

// IsKnownDongleOUI reports whether mac belongs to a known dongle vendor.
func IsKnownDongleOUI(mac string) bool {
	return GetOUIVendor(mac) != ""
}

var macPattern = regexp.MustCompile(`(?i)([0-9a-f]{1,2})[:-]([0-9a-f]{1,2})[:-]([0-9a-f]{1,2})[:-]([0-9a-f]{1,2})[:-]([0-9a-f]{1,2})[:-]([0-9a-f]{1,2})`)

// LookupMACAddress best-effort resolves ip's MAC address via a ping
// (to populate the kernel's neighbor table) followed by an arp query,
// matching the teacher's "ping then inspect neighbor table" approach used
// nowhere in this codebase directly but grounded on
// original_source/scanner/mac_lookup.py's documented two-step behavior.
// Returns "" if the address cannot be resolved; never returns an error for
// a routine miss, only for a context cancellation.
func LookupMACAddress(ctx context.Context, ip string) (string, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	count := "-c"
	if runtime.GOOS == "windows" {
		count = "-n"
	}
	_ = exec.CommandContext(pingCtx, "ping", count, "1", ip).Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	arpCtx, cancel2 := context.WithTimeout(ctx, 1*time.Second)
	defer cancel2()
	var out bytes.Buffer
	cmd := exec.CommandContext(arpCtx, "arp", "-n", ip)
	cmd.Stdout = &out
	_ = cmd.Run()

	match := macPattern.FindStringSubmatch(out.String())
	if match == nil {
		return "", nil
	}
	parts := match[1:7]
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return strings.ToUpper(strings.Join(parts, ":")), nil
}
