package modbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/regmap"
	"github.com/devskill-org/lxpclient/transport"
)

func TestNewAppliesDefaults(t *testing.T) {
	tr := New(Config{Host: "192.168.1.50"})
	if tr.cfg.Port != DefaultPort {
		t.Errorf("Port: got %d, want %d", tr.cfg.Port, DefaultPort)
	}
	if tr.cfg.UnitID != 1 {
		t.Errorf("UnitID: got %d, want 1", tr.cfg.UnitID)
	}
	if tr.cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout: got %v, want 10s", tr.cfg.Timeout)
	}
}

func TestNewKeepsExplicitValues(t *testing.T) {
	tr := New(Config{Host: "192.168.1.50", Port: 5020, UnitID: 3, Timeout: 3 * time.Second})
	if tr.cfg.Port != 5020 || tr.cfg.UnitID != 3 || tr.cfg.Timeout != 3*time.Second {
		t.Errorf("explicit config overridden: %+v", tr.cfg)
	}
}

func TestAddr(t *testing.T) {
	tr := New(Config{Host: "192.168.1.50", Port: 502})
	if got := tr.addr(); got != "192.168.1.50:502" {
		t.Errorf("got %q", got)
	}
}

func TestRegisterMapFor(t *testing.T) {
	tr := New(Config{Host: "x"})
	if tr.registerMapFor(device.FamilyLXPEU) != regmap.LXPEURuntime {
		t.Error("expected LXPEURuntime for FamilyLXPEU")
	}
	if tr.registerMapFor(device.FamilyGridBossMID) != regmap.GridBossRuntime {
		t.Error("expected GridBossRuntime for FamilyGridBossMID")
	}
	if tr.registerMapFor(device.FamilyPVSeries) != regmap.PVSeriesRuntime {
		t.Error("expected PVSeriesRuntime for FamilyPVSeries")
	}
	if tr.registerMapFor(device.FamilyFlexBoss) != regmap.PVSeriesRuntime {
		t.Error("expected PVSeriesRuntime (the default) for FamilyFlexBoss")
	}
}

func TestGroupsFor(t *testing.T) {
	tr := New(Config{Host: "x"})
	groups := tr.groupsFor(device.FamilyGridBossMID)
	if len(groups) != len(regmap.GridBossGroups) {
		t.Errorf("expected GridBossGroups for FamilyGridBossMID")
	}
	groups = tr.groupsFor(device.FamilyPVSeries)
	if len(groups) != len(regmap.PVSeriesGroups) {
		t.Errorf("expected PVSeriesGroups for FamilyPVSeries")
	}
}

func TestCapabilities(t *testing.T) {
	tr := New(Config{Host: "x"})
	caps := tr.Capabilities()
	if !caps.CanReadBattery || !caps.IsLocal || caps.RequiresAuthentication {
		t.Errorf("unexpected capabilities: %+v", caps)
	}
}

func TestIdentityAccessorsBeforeConnect(t *testing.T) {
	tr := New(Config{Host: "x"})
	if got, _ := tr.ReadSerial(context.Background()); got != "" {
		t.Errorf("expected empty serial before Connect, got %q", got)
	}
	if got, _ := tr.ReadFirmware(context.Background()); got != "" {
		t.Errorf("expected empty firmware before Connect, got %q", got)
	}
	if got, _ := tr.ReadDeviceType(context.Background()); got != 0 {
		t.Errorf("expected zero device type before Connect, got %d", got)
	}
}

func TestReadRuntimeRejectsGridBossIdentity(t *testing.T) {
	tr := New(Config{Host: "x"})
	tr.identity = device.Identity{Family: device.FamilyGridBossMID}
	if _, err := tr.ReadRuntime(context.Background()); err == nil {
		t.Fatal("expected ReadRuntime to reject a GRIDBOSS_MID identity")
	}
}

func TestReadGridInterfaceRuntimeRejectsNonGridBoss(t *testing.T) {
	tr := New(Config{Host: "x"})
	tr.identity = device.Identity{Family: device.FamilyPVSeries}
	if _, err := tr.ReadGridInterfaceRuntime(context.Background()); err == nil {
		t.Fatal("expected ReadGridInterfaceRuntime to reject a non-GRIDBOSS_MID identity")
	}
}

func TestClassifyReadErrWrapsDeadlineExceededAsTimeout(t *testing.T) {
	err := classifyReadErr("read", context.DeadlineExceeded)
	var terr *transport.Error
	if !asTransportError(err, &terr) {
		t.Fatalf("expected a *transport.Error, got %T", err)
	}
	if terr.Kind != transport.TimeoutError {
		t.Errorf("got kind %v, want TimeoutError", terr.Kind)
	}
	if !transport.IsRetryable(err) {
		t.Error("a timeout should be retryable")
	}
}

func TestClassifyReadErrWrapsOtherErrorsAsReadError(t *testing.T) {
	err := classifyReadErr("read", errors.New("exception code 2"))
	var terr *transport.Error
	if !asTransportError(err, &terr) {
		t.Fatalf("expected a *transport.Error, got %T", err)
	}
	if terr.Kind != transport.ReadError {
		t.Errorf("got kind %v, want ReadError", terr.Kind)
	}
}

func asTransportError(err error, target **transport.Error) bool {
	te, ok := err.(*transport.Error)
	if !ok {
		return false
	}
	*target = te
	return true
}
