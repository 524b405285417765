package device

import "testing"

func TestFamilyFromDeviceTypeCode(t *testing.T) {
	cases := []struct {
		code uint16
		want Family
	}{
		{DeviceTypeCodePVSeries, FamilyPVSeries},
		{DeviceTypeCodeFlexBoss, FamilyFlexBoss},
		{DeviceTypeCodeLXPEU, FamilyLXPEU},
		{DeviceTypeCodeSNA, FamilySNA},
		{DeviceTypeCodeGridBossMID, FamilyGridBossMID},
		{999, FamilyUnknown},
	}
	for _, c := range cases {
		if got := FamilyFromDeviceTypeCode(c.code); got != c.want {
			t.Errorf("code %d: got %s, want %s", c.code, got, c.want)
		}
	}
}

func TestParseFamily(t *testing.T) {
	cases := []struct {
		name string
		want Family
	}{
		{"pv_series", FamilyPVSeries},
		{"flexboss", FamilyFlexBoss},
		{"lxp_eu", FamilyLXPEU},
		{"sna", FamilySNA},
		{"gridboss_mid", FamilyGridBossMID},
		{"", FamilyUnknown},
		{"bogus", FamilyUnknown},
	}
	for _, c := range cases {
		if got := ParseFamily(c.name); got != c.want {
			t.Errorf("name %q: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestIsGridInterface(t *testing.T) {
	if !FamilyGridBossMID.IsGridInterface() {
		t.Error("GRIDBOSS_MID should be a grid-interface family")
	}
	if FamilyPVSeries.IsGridInterface() {
		t.Error("PV_SERIES should not be a grid-interface family")
	}
}

func TestIdentityString(t *testing.T) {
	id := Identity{Serial: "SN123", FirmwareVersion: "1.0", Family: FamilyPVSeries}
	want := "PV_SERIES serial=SN123 fw=1.0"
	if got := id.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
