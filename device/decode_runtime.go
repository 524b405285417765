package device

import "github.com/devskill-org/lxpclient/regmap"

// DecodeRuntime decodes a RuntimeRecord from raw registers using the given
// Runtime RegisterMap. Decoding is total: every field is independently
// looked up, and absence of its backing register(s) yields a nil field
// rather than an error, per spec.md §3/§4.2.
func DecodeRuntime(regs regmap.RawRegisters, m *regmap.RegisterMap) *RuntimeRecord {
	r := &RuntimeRecord{
		PV1Voltage:   f(regs, m, "pv1_voltage"),
		PV2Voltage:   f(regs, m, "pv2_voltage"),
		PV3Voltage:   f(regs, m, "pv3_voltage"),
		PV1Power:     f(regs, m, "pv1_power"),
		PV2Power:     f(regs, m, "pv2_power"),
		PV3Power:     f(regs, m, "pv3_power"),
		PVTotalPower: f(regs, m, "pv_total_power"),

		BatteryVoltage: f(regs, m, "battery_voltage"),
		BatteryPower:   f(regs, m, "battery_power"),
		BatteryCurrent: f(regs, m, "battery_current"),

		GridVoltageR:  f(regs, m, "grid_voltage_r"),
		GridVoltageS:  f(regs, m, "grid_voltage_s"),
		GridVoltageT:  f(regs, m, "grid_voltage_t"),
		GridFrequency: f(regs, m, "grid_frequency"),
		InverterPower: f(regs, m, "inverter_power"),
		RatedPower:    f(regs, m, "rated_power"),
		LoadPower:     f(regs, m, "load_power"),
		ExportPower:   f(regs, m, "export_power"),
		ImportPower:   f(regs, m, "import_power"),
		OutputPowerL1: f(regs, m, "output_power_l1"),
		OutputPowerL2: f(regs, m, "output_power_l2"),
		OutputPowerL3: f(regs, m, "output_power_l3"),

		EPSPower:     f(regs, m, "eps_power"),
		EPSL1Voltage: f(regs, m, "eps_l1_voltage"),
		EPSL2Voltage: f(regs, m, "eps_l2_voltage"),
		EPSFrequency: f(regs, m, "eps_frequency"),

		GeneratorVoltage:   f(regs, m, "generator_voltage"),
		GeneratorFrequency: f(regs, m, "generator_frequency"),
		GeneratorPower:     f(regs, m, "generator_power"),

		ParallelMasterPower: f(regs, m, "parallel_master_power"),

		FaultCode1:   f(regs, m, "fault_code_1"),
		FaultCode2:   f(regs, m, "fault_code_2"),
		WarningCode1: f(regs, m, "warning_code_1"),
		WorkMode:     f(regs, m, "work_mode"),
		StatusWord:   f(regs, m, "status_word"),
	}

	if def, ok := m.Lookup("soc_soh_packed"); ok {
		if packed, ok := regmap.DecodeSOCSOH(regs, def.Address); ok {
			r.BatterySOC = ptrInt(packed.SOC)
			r.BatterySOH = ptrInt(packed.SOH)
		}
	}

	if def, ok := m.Lookup("parallel_config_packed"); ok {
		if cfg, ok := regmap.DecodeParallelConfig(regs, def.Address); ok {
			r.ParallelIsMaster = ptrBool(cfg.IsMaster)
			r.ParallelPhase = ptrInt(cfg.Phase)
			r.ParallelNodeCount = ptrInt(cfg.NodeCount)
		}
	}

	r.EPSL1Power, r.EPSL2Power = computeEPSLegPower(r.EPSPower, r.EPSL1Voltage, r.EPSL2Voltage)
	r.ACCouplePower = deriveACCouplePowerLocal(r.GeneratorPower)

	return r
}
