package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/devskill-org/lxpclient/device"
)

type fakeProber struct {
	deviceType    uint16
	serial        string
	firmware      string
	deviceTypeErr error
	serialErr     error
	firmwareErr   error
}

func (f *fakeProber) ReadDeviceType(ctx context.Context) (uint16, error) {
	return f.deviceType, f.deviceTypeErr
}

func (f *fakeProber) ReadSerial(ctx context.Context) (string, error) {
	return f.serial, f.serialErr
}

func (f *fakeProber) ReadFirmware(ctx context.Context) (string, error) {
	return f.firmware, f.firmwareErr
}

func TestDiscoverKnownFamily(t *testing.T) {
	p := &fakeProber{deviceType: device.DeviceTypeCodePVSeries, serial: "SN1", firmware: "1.2"}
	result, err := Discover(context.Background(), p, "", device.FamilyUnknown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Identity.Family != device.FamilyPVSeries {
		t.Errorf("got family %s, want PV_SERIES", result.Identity.Family)
	}
	if result.Warning != "" {
		t.Errorf("unexpected warning: %s", result.Warning)
	}
}

func TestDiscoverFamilyOverride(t *testing.T) {
	p := &fakeProber{deviceType: device.DeviceTypeCodePVSeries, serial: "SN1", firmware: "1.2"}
	result, err := Discover(context.Background(), p, "", device.FamilyLXPEU)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Identity.Family != device.FamilyLXPEU {
		t.Errorf("override ignored: got %s, want LXP_EU", result.Identity.Family)
	}
}

func TestDiscoverSerialMismatchWarns(t *testing.T) {
	p := &fakeProber{deviceType: device.DeviceTypeCodePVSeries, serial: "ACTUAL", firmware: "1.2"}
	result, err := Discover(context.Background(), p, "EXPECTED", device.FamilyUnknown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected a serial-mismatch warning")
	}
	if result.Identity.Serial != "ACTUAL" {
		t.Errorf("Discover should still return the identity on mismatch, got %+v", result.Identity)
	}
}

func TestDiscoverUnknownDeviceTypeWarns(t *testing.T) {
	p := &fakeProber{deviceType: 9999, serial: "SN1", firmware: "1.2"}
	result, err := Discover(context.Background(), p, "", device.FamilyUnknown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Warning == "" {
		t.Error("expected an unrecognised-device-type warning")
	}
}

func TestDiscoverPropagatesDeviceTypeError(t *testing.T) {
	p := &fakeProber{deviceTypeErr: errors.New("read timeout")}
	if _, err := Discover(context.Background(), p, "", device.FamilyUnknown); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestDiscoverPropagatesSerialError(t *testing.T) {
	p := &fakeProber{deviceType: device.DeviceTypeCodePVSeries, serialErr: errors.New("read timeout")}
	if _, err := Discover(context.Background(), p, "", device.FamilyUnknown); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestDiscoverPropagatesFirmwareError(t *testing.T) {
	p := &fakeProber{deviceType: device.DeviceTypeCodePVSeries, serial: "SN1", firmwareErr: errors.New("read timeout")}
	if _, err := Discover(context.Background(), p, "", device.FamilyUnknown); err == nil {
		t.Fatal("expected error to propagate")
	}
}

func TestKnownFamily(t *testing.T) {
	if !KnownFamily(device.DeviceTypeCodeSNA) {
		t.Error("SNA code should be known")
	}
	if KnownFamily(9999) {
		t.Error("9999 should not be known")
	}
}
