package regmap

// GridBossGroups are the fixed input-register windows read for the
// grid-interface (MID/GridBOSS) family, grounded on
// original_source/src/pylxpweb/transports/_modbus_base.py's
// _MIDBOX_REGISTER_GROUPS.
var GridBossGroups = []RegisterGroup{
	{Start: 0, Count: 40},
	{Start: 40, Count: 28},
	{Start: 68, Count: 40},
	{Start: 108, Count: 12},
	{Start: 128, Count: 4},
}

// GridBossRuntime is the Runtime register map for the GRIDBOSS_MID family.
// Field names and groupings are grounded on
// original_source/src/pylxpweb/devices/_mid_runtime_properties.py, which
// exposes aggregate and per-phase voltage for grid/UPS/generator, per-phase
// current and power for grid/load/generator/UPS, and four independently
// configurable smart ports each with smart-load and AC-couple power
// variants.
var GridBossRuntime = newMap("GRIDBOSS_MID",
	RegisterDefinition{Name: "grid_rms_volt", Address: 0, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "grid_l1_rms_volt", Address: 1, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "grid_l2_rms_volt", Address: 2, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "ups_rms_volt", Address: 3, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "ups_l1_rms_volt", Address: 4, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "ups_l2_rms_volt", Address: 5, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "gen_rms_volt", Address: 6, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "gen_l1_rms_volt", Address: 7, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "gen_l2_rms_volt", Address: 8, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "grid_frequency", Address: 9, BitWidth: 16, Sign: Unsigned, Scale: ScaleHundredth, Category: CategoryGridInterfaceVoltage},

	RegisterDefinition{Name: "grid_l1_current", Address: 10, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "grid_l2_current", Address: 11, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "load_l1_current", Address: 12, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "load_l2_current", Address: 13, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "gen_l1_current", Address: 14, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "gen_l2_current", Address: 15, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "ups_l1_current", Address: 16, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
	RegisterDefinition{Name: "ups_l2_current", Address: 17, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},

	RegisterDefinition{Name: "smart_port1_status", Address: 18, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},
	RegisterDefinition{Name: "smart_port2_status", Address: 19, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},
	RegisterDefinition{Name: "smart_port3_status", Address: 20, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},
	RegisterDefinition{Name: "smart_port4_status", Address: 21, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},

	RegisterDefinition{Name: "grid_l1_active_power", Address: 40, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "grid_l2_active_power", Address: 41, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "load_l1_active_power", Address: 42, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "load_l2_active_power", Address: 43, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "gen_l1_active_power", Address: 44, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "gen_l2_active_power", Address: 45, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ups_l1_active_power", Address: 46, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ups_l2_active_power", Address: 47, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},

	RegisterDefinition{Name: "smart_load1_l1_active_power", Address: 48, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load1_l2_active_power", Address: 49, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load2_l1_active_power", Address: 50, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load2_l2_active_power", Address: 51, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load3_l1_active_power", Address: 52, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load3_l2_active_power", Address: 53, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load4_l1_active_power", Address: 54, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "smart_load4_l2_active_power", Address: 55, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},

	RegisterDefinition{Name: "ac_couple1_l1_active_power", Address: 56, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple1_l2_active_power", Address: 57, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple2_l1_active_power", Address: 58, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple2_l2_active_power", Address: 59, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple3_l1_active_power", Address: 60, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple3_l2_active_power", Address: 61, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple4_l1_active_power", Address: 62, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},
	RegisterDefinition{Name: "ac_couple4_l2_active_power", Address: 63, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryGridInterfacePower},

	RegisterDefinition{Name: "grid_import_today", Address: 68, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "grid_export_today", Address: 69, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "load_energy_today", Address: 70, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "generator_energy_today", Address: 71, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "grid_import_lifetime", Address: 72, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "grid_export_lifetime", Address: 74, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "load_energy_lifetime", Address: 76, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "device_status_word", Address: 80, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},
	RegisterDefinition{Name: "fault_code", Address: 81, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryFault},

	RegisterDefinition{Name: "midbox_status", Address: 108, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGridInterfaceStatus},
	RegisterDefinition{Name: "busbar_voltage", Address: 109, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGridInterfaceVoltage},
	RegisterDefinition{Name: "busbar_current", Address: 110, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryGridInterfaceCurrent},
)

// GridBossEnergy reuses GridBossRuntime; the GridBoss energy fields live in
// the same register groups as the runtime fields (see GridBossGroups).
var GridBossEnergy = GridBossRuntime
