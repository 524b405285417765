package scanner

import "testing"

func TestGetOUIVendor(t *testing.T) {
	cases := []struct {
		mac  string
		want string
	}{
		{"24:0A:C4:11:22:33", "Espressif"},
		{"a4:cf:12:00:00:00", "Espressif"},
		{"00:1A:FE:AB:CD:EF", "Waveshare"},
		{"DE:AD:BE:EF:00:00", ""},
		{"short", ""},
	}
	for _, c := range cases {
		if got := GetOUIVendor(c.mac); got != c.want {
			t.Errorf("GetOUIVendor(%q): got %q, want %q", c.mac, got, c.want)
		}
	}
}

func TestIsKnownDongleOUI(t *testing.T) {
	if !IsKnownDongleOUI("3c:61:05:aa:bb:cc") {
		t.Error("expected known OUI to be recognised")
	}
	if IsKnownDongleOUI("de:ad:be:ef:00:00") {
		t.Error("expected unknown OUI to be rejected")
	}
}
