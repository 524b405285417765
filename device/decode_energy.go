package device

import "github.com/devskill-org/lxpclient/regmap"

// DecodeEnergy decodes an EnergyRecord from the power_energy + status_energy
// groups, plus a best-effort bms_data group. bmsRegs may be nil (or simply
// missing the relevant addresses) when the caller's bms_data read failed or
// was skipped; per spec.md §7 that never fails the primary Energy decode,
// the BMS fields just come back nil.
func DecodeEnergy(regs regmap.RawRegisters, bmsRegs regmap.RawRegisters, m *regmap.RegisterMap) *EnergyRecord {
	e := &EnergyRecord{
		PV1EnergyToday: f(regs, m, "pv1_energy_today"),
		PV2EnergyToday: f(regs, m, "pv2_energy_today"),

		BatteryChargeToday:    f(regs, m, "battery_charge_today"),
		BatteryDischargeToday: f(regs, m, "battery_discharge_today"),
		GridImportToday:       f(regs, m, "grid_import_today"),
		GridExportToday:       f(regs, m, "grid_export_today"),
		LoadEnergyToday:       f(regs, m, "load_energy_today"),

		PVEnergyLifetime:         f(regs, m, "pv_energy_lifetime"),
		BatteryChargeLifetime:    f(regs, m, "battery_charge_lifetime"),
		BatteryDischargeLifetime: f(regs, m, "battery_discharge_lifetime"),
		GridImportLifetime:       f(regs, m, "grid_import_lifetime"),
		GridExportLifetime:       f(regs, m, "grid_export_lifetime"),
		LoadEnergyLifetime:       f(regs, m, "load_energy_lifetime"),
	}

	if bmsRegs != nil {
		e.BMSMaxChargeCurrent = f(bmsRegs, m, "bms_max_charge_current")
		e.BMSMaxDischargeCurrent = f(bmsRegs, m, "bms_max_discharge_current")
	}

	return e
}
