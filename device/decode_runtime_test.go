package device

import (
	"testing"

	"github.com/devskill-org/lxpclient/regmap"
)

func TestDecodeRuntimeBasicFields(t *testing.T) {
	regs := regmap.RawRegisters{
		1:  2300, // pv1_voltage -> 230.0V
		4:  520,  // battery_voltage -> 52.0V
		5:  0x5A55, // soc_soh_packed: SOC=0x55=85, SOH=0x5A=90
		10: 65535, // battery_power signed -> -1 (discharging convention)
		12: 2300,
		15: 5000, // grid_frequency -> 50.00Hz
		16: 3000,
	}
	r := DecodeRuntime(regs, regmap.PVSeriesRuntime)

	if r.PV1Voltage == nil || *r.PV1Voltage != 230.0 {
		t.Errorf("PV1Voltage: got %v, want 230.0", r.PV1Voltage)
	}
	if r.BatteryVoltage == nil || *r.BatteryVoltage != 52.0 {
		t.Errorf("BatteryVoltage: got %v, want 52.0", r.BatteryVoltage)
	}
	if r.BatterySOC == nil || *r.BatterySOC != 0x55 {
		t.Errorf("BatterySOC: got %v, want 85", r.BatterySOC)
	}
	if r.BatterySOH == nil || *r.BatterySOH != 0x5A {
		t.Errorf("BatterySOH: got %v, want 90", r.BatterySOH)
	}
	if r.BatteryPower == nil || *r.BatteryPower != -1 {
		t.Errorf("BatteryPower: got %v, want -1", r.BatteryPower)
	}
	if r.GridFrequency == nil || *r.GridFrequency != 50.0 {
		t.Errorf("GridFrequency: got %v, want 50.0", r.GridFrequency)
	}
	// pv2_voltage's backing register (2) was never supplied.
	if r.PV2Voltage != nil {
		t.Errorf("PV2Voltage: got %v, want nil (register absent)", r.PV2Voltage)
	}
}

func TestDecodeRuntimeEPSLegSplitProportional(t *testing.T) {
	regs := regmap.RawRegisters{
		115: 3000, // eps_power
		116: 2300, // eps_l1_voltage -> 230.0
		117: 2300, // eps_l2_voltage -> 230.0
	}
	r := DecodeRuntime(regs, regmap.PVSeriesRuntime)
	if r.EPSL1Power == nil || r.EPSL2Power == nil {
		t.Fatal("expected both EPS leg powers to be set")
	}
	if *r.EPSL1Power+*r.EPSL2Power != 3000 {
		t.Errorf("legs should sum to total: got %v + %v", *r.EPSL1Power, *r.EPSL2Power)
	}
	if *r.EPSL1Power != 1500 || *r.EPSL2Power != 1500 {
		t.Errorf("equal voltages should split evenly: got %v/%v", *r.EPSL1Power, *r.EPSL2Power)
	}
}

func TestDecodeRuntimeEPSLegSplitSingleVoltage(t *testing.T) {
	regs := regmap.RawRegisters{
		115: 3000,
		116: 2300, // only l1 voltage present
	}
	r := DecodeRuntime(regs, regmap.PVSeriesRuntime)
	if r.EPSL1Power == nil || *r.EPSL1Power != 3000 {
		t.Errorf("EPSL1Power: got %v, want 3000", r.EPSL1Power)
	}
	if r.EPSL2Power == nil || *r.EPSL2Power != 0 {
		t.Errorf("EPSL2Power: got %v, want 0", r.EPSL2Power)
	}
}

func TestDecodeRuntimeParallelConfig(t *testing.T) {
	// master=1, phase=1 (S), nodeCount=3
	raw := uint16(1) | uint16(1)<<1 | uint16(3)<<3
	regs := regmap.RawRegisters{113: raw}
	r := DecodeRuntime(regs, regmap.PVSeriesRuntime)
	if r.ParallelIsMaster == nil || !*r.ParallelIsMaster {
		t.Errorf("ParallelIsMaster: got %v, want true", r.ParallelIsMaster)
	}
	if r.ParallelPhase == nil || *r.ParallelPhase != 1 {
		t.Errorf("ParallelPhase: got %v, want 1", r.ParallelPhase)
	}
	if r.ParallelNodeCount == nil || *r.ParallelNodeCount != 3 {
		t.Errorf("ParallelNodeCount: got %v, want 3", r.ParallelNodeCount)
	}
}

func TestDecodeRuntimeEmptyRegistersAllNil(t *testing.T) {
	r := DecodeRuntime(regmap.RawRegisters{}, regmap.PVSeriesRuntime)
	if r.PV1Voltage != nil || r.BatteryVoltage != nil || r.BatterySOC != nil {
		t.Error("decoding empty registers should leave every field nil")
	}
}
