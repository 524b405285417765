package device

import "github.com/devskill-org/lxpclient/regmap"

// DecodeGridInterfaceRuntime decodes a GridInterfaceRuntimeRecord from the
// GRIDBOSS_MID register groups, grounded on
// original_source/src/pylxpweb/devices/_mid_runtime_properties.py.
func DecodeGridInterfaceRuntime(regs regmap.RawRegisters, m *regmap.RegisterMap) *GridInterfaceRuntimeRecord {
	g := &GridInterfaceRuntimeRecord{
		GridVoltage:        f(regs, m, "grid_rms_volt"),
		GridL1Voltage:      f(regs, m, "grid_l1_rms_volt"),
		GridL2Voltage:      f(regs, m, "grid_l2_rms_volt"),
		UPSVoltage:         f(regs, m, "ups_rms_volt"),
		UPSL1Voltage:       f(regs, m, "ups_l1_rms_volt"),
		UPSL2Voltage:       f(regs, m, "ups_l2_rms_volt"),
		GeneratorVoltage:   f(regs, m, "gen_rms_volt"),
		GeneratorL1Voltage: f(regs, m, "gen_l1_rms_volt"),
		GeneratorL2Voltage: f(regs, m, "gen_l2_rms_volt"),
		GridFrequency:      f(regs, m, "grid_frequency"),

		GridL1Current:      f(regs, m, "grid_l1_current"),
		GridL2Current:      f(regs, m, "grid_l2_current"),
		LoadL1Current:      f(regs, m, "load_l1_current"),
		LoadL2Current:      f(regs, m, "load_l2_current"),
		GeneratorL1Current: f(regs, m, "gen_l1_current"),
		GeneratorL2Current: f(regs, m, "gen_l2_current"),
		UPSL1Current:       f(regs, m, "ups_l1_current"),
		UPSL2Current:       f(regs, m, "ups_l2_current"),

		GridL1Power:      f(regs, m, "grid_l1_active_power"),
		GridL2Power:      f(regs, m, "grid_l2_active_power"),
		LoadL1Power:      f(regs, m, "load_l1_active_power"),
		LoadL2Power:      f(regs, m, "load_l2_active_power"),
		GeneratorL1Power: f(regs, m, "gen_l1_active_power"),
		GeneratorL2Power: f(regs, m, "gen_l2_active_power"),
		UPSL1Power:       f(regs, m, "ups_l1_active_power"),
		UPSL2Power:       f(regs, m, "ups_l2_active_power"),

		GridImportToday:      f(regs, m, "grid_import_today"),
		GridExportToday:      f(regs, m, "grid_export_today"),
		LoadEnergyToday:      f(regs, m, "load_energy_today"),
		GeneratorEnergyToday: f(regs, m, "generator_energy_today"),
		GridImportLifetime:   f(regs, m, "grid_import_lifetime"),
		GridExportLifetime:   f(regs, m, "grid_export_lifetime"),
		LoadEnergyLifetime:   f(regs, m, "load_energy_lifetime"),

		DeviceStatusWord: f(regs, m, "device_status_word"),
		FaultCode:        f(regs, m, "fault_code"),
		MidboxStatus:     f(regs, m, "midbox_status"),
		BusbarVoltage:    f(regs, m, "busbar_voltage"),
		BusbarCurrent:    f(regs, m, "busbar_current"),
	}

	g.SmartPorts = make([]SmartPort, 0, 4)
	for port := 1; port <= 4; port++ {
		sp := decodeSmartPort(regs, m, port)
		g.SmartPorts = append(g.SmartPorts, sp)
	}

	return g
}

func decodeSmartPort(regs regmap.RawRegisters, m *regmap.RegisterMap, port int) SmartPort {
	statusName := smartPortFieldName("smart_port", port, "status")
	l1Name := smartPortFieldName("smart_load", port, "l1_active_power")
	l2Name := smartPortFieldName("smart_load", port, "l2_active_power")
	acL1Name := smartPortFieldName("ac_couple", port, "l1_active_power")
	acL2Name := smartPortFieldName("ac_couple", port, "l2_active_power")

	sp := SmartPort{
		Port:            port,
		Status:          i(regs, m, statusName),
		SmartLoadL1Power: f(regs, m, l1Name),
		SmartLoadL2Power: f(regs, m, l2Name),
		ACCoupleL1Power:  f(regs, m, acL1Name),
		ACCoupleL2Power:  f(regs, m, acL2Name),
	}
	sp.DerivedACCoupleL1Power = deriveSmartPortACCouplePower(sp.Status, sp.SmartLoadL1Power, sp.ACCoupleL1Power)
	sp.DerivedACCoupleL2Power = deriveSmartPortACCouplePower(sp.Status, sp.SmartLoadL2Power, sp.ACCoupleL2Power)
	return sp
}

func smartPortFieldName(prefix string, port int, suffix string) string {
	digits := [...]string{"0", "1", "2", "3", "4"}
	return prefix + digits[port] + "_" + suffix
}
