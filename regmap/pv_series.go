package regmap

// PVSeriesGroups are the fixed input-register windows a PV_SERIES (and
// FLEXBOSS-aliased) transport issues one FC4 request per group for, per
// spec.md §4.1 and grounded on
// original_source/src/pylxpweb/transports/_modbus_base.py's
// INPUT_REGISTER_GROUPS.
var PVSeriesGroups = []RegisterGroup{
	{Name: "power_energy", Start: 0, Count: 32},
	{Name: "status_energy", Start: 32, Count: 32},
	{Name: "temperatures", Start: 64, Count: 16},
	{Name: "bms_data", Start: 80, Count: 33},
	{Name: "extended_data", Start: 113, Count: 18},
	{Name: "output_power", Start: 170, Count: 2},
}

// BatteryCountAddress is the input register, within the bms_data group,
// holding the number of individually-reportable battery modules.
const BatteryCountAddress uint16 = 96

// BankVoltageAddress is the input register whose value must exceed
// BankVoltagePresenceThreshold for a BatteryBankRecord to be emitted at all.
const BankVoltageAddress uint16 = 80

// BankVoltagePresenceThreshold is the "no battery present" cutoff in volts
// (already scale-applied).
const BankVoltagePresenceThreshold = 5.0

// IndividualBatteryBaseAddress is where per-module battery data begins.
const IndividualBatteryBaseAddress uint16 = 5000

// IndividualBatteryRegisterCount is the word stride per module.
const IndividualBatteryRegisterCount uint16 = 30

// IndividualBatteryMaxCount caps how many modules are read even if the
// device reports more.
const IndividualBatteryMaxCount = 10

// Holding-register identity window addresses, shared across local
// transports (spec.md §6).
const (
	HoldDeviceTypeAddress uint16 = 19
	HoldSerialAddress     uint16 = 115
	HoldSerialWordCount          = 5
	HoldFirmwareAddress   uint16 = 7
	HoldFirmwareWordCount        = 4
)

// PVSeriesRuntime is the Runtime register map for PV_SERIES (and, by
// aliasing, FLEXBOSS). Addresses and scaling are grounded on spec.md §4.1,
// §6, §8 scenario 1, and the boundary behaviors in §8.
var PVSeriesRuntime = newMap("PV_SERIES",
	RegisterDefinition{Name: "status_word", Address: 0, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryStatus},
	RegisterDefinition{Name: "pv1_voltage", Address: 1, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv2_voltage", Address: 2, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv3_voltage", Address: 3, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "battery_voltage", Address: 4, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "soc_soh_packed", Address: 5, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS, Packing: PackingSOCSOH},
	RegisterDefinition{Name: "battery_power", Address: 10, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "battery_current", Address: 11, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv1_power", Address: 7, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv2_power", Address: 8, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv3_power", Address: 9, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "grid_voltage_r", Address: 12, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "grid_voltage_s", Address: 13, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "grid_voltage_t", Address: 14, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "grid_frequency", Address: 15, BitWidth: 16, Sign: Unsigned, Scale: ScaleHundredth, Category: CategoryRuntime},
	RegisterDefinition{Name: "inverter_power", Address: 16, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "rated_power", Address: 18, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "pv_total_power", Address: 20, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "load_power", Address: 27, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "export_power", Address: 29, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "import_power", Address: 30, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},

	RegisterDefinition{Name: "fault_code_1", Address: 32, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryFault},
	RegisterDefinition{Name: "fault_code_2", Address: 33, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryFault},
	RegisterDefinition{Name: "warning_code_1", Address: 34, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryStatus},
	RegisterDefinition{Name: "work_mode", Address: 35, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryStatus},
	RegisterDefinition{Name: "pv1_energy_today", Address: 36, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "pv2_energy_today", Address: 37, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "battery_charge_today", Address: 40, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "battery_discharge_today", Address: 41, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "grid_import_today", Address: 42, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "grid_export_today", Address: 43, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "load_energy_today", Address: 44, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyDaily},
	RegisterDefinition{Name: "pv_energy_lifetime", Address: 46, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "battery_charge_lifetime", Address: 48, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "battery_discharge_lifetime", Address: 50, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "grid_import_lifetime", Address: 52, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "grid_export_lifetime", Address: 54, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},
	RegisterDefinition{Name: "load_energy_lifetime", Address: 56, BitWidth: 32, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryEnergyLifetime},

	RegisterDefinition{Name: "temp_inverter", Address: 64, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryTemperature},
	RegisterDefinition{Name: "temp_dcdc", Address: 65, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryTemperature},
	RegisterDefinition{Name: "temp_battery", Address: 66, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryTemperature},
	RegisterDefinition{Name: "temp_radiator", Address: 67, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryTemperature},
	RegisterDefinition{Name: "cell_temp_max", Address: 68, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "cell_temp_min", Address: 69, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "bms_max_charge_current", Address: 70, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryBMS},
	RegisterDefinition{Name: "bms_max_discharge_current", Address: 71, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryBMS},
	RegisterDefinition{Name: "bms_charge_voltage_limit", Address: 72, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryBMS},
	RegisterDefinition{Name: "bms_discharge_voltage_limit", Address: 73, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryBMS},

	RegisterDefinition{Name: "bank_voltage", Address: BankVoltageAddress, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryBMS},
	RegisterDefinition{Name: "bank_current", Address: 81, BitWidth: 16, Sign: Signed, Scale: ScaleTenth, Category: CategoryBMS},
	RegisterDefinition{Name: "bank_soc", Address: 82, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "bank_soh", Address: 83, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "bank_cycle_count", Address: 84, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "bank_capacity_ah", Address: 85, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "battery_count", Address: BatteryCountAddress, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "bms_fault_code", Address: 90, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryFault},
	RegisterDefinition{Name: "max_cell_voltage_mv", Address: 100, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "min_cell_voltage_mv", Address: 101, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "max_cell_temp", Address: 102, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryBMS},
	RegisterDefinition{Name: "min_cell_temp", Address: 103, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryBMS},

	RegisterDefinition{Name: "parallel_config_packed", Address: 113, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryParallel, Packing: PackingParallelConfig},
	RegisterDefinition{Name: "eps_power", Address: 115, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "eps_l1_voltage", Address: 116, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "eps_l2_voltage", Address: 117, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryRuntime},
	RegisterDefinition{Name: "eps_frequency", Address: 118, BitWidth: 16, Sign: Unsigned, Scale: ScaleHundredth, Category: CategoryRuntime},
	RegisterDefinition{Name: "generator_voltage", Address: 119, BitWidth: 16, Sign: Unsigned, Scale: ScaleTenth, Category: CategoryGenerator},
	RegisterDefinition{Name: "generator_frequency", Address: 120, BitWidth: 16, Sign: Unsigned, Scale: ScaleHundredth, Category: CategoryGenerator},
	RegisterDefinition{Name: "generator_power", Address: 123, BitWidth: 16, Sign: Unsigned, Scale: ScaleIdentity, Category: CategoryGenerator},
	RegisterDefinition{Name: "parallel_master_power", Address: 130, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryParallel},

	RegisterDefinition{Name: "output_power_l1", Address: 170, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
	RegisterDefinition{Name: "output_power_l2", Address: 171, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
)

// PVSeriesEnergy reuses the same Runtime register map: the Energy decoder
// reads from the power_energy + status_energy (+ best-effort bms_data)
// groups of the same RawRegisters the Runtime decoder would see, per
// spec.md §4.2 ("it must not demand a specific read strategy"). A distinct
// variable name is kept for readability at call sites.
var PVSeriesEnergy = PVSeriesRuntime
