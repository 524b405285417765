package device

// Every numeric field below is a pointer: nil means "missing from the read",
// which is semantically distinct from a decoded zero, per spec.md §3.

// RuntimeRecord is the typed, scaled snapshot of an inverter's live
// telemetry: PV strings, battery, grid, inverter/load power, EPS, and
// generator/AC-couple fields.
type RuntimeRecord struct {
	PV1Voltage *float64
	PV2Voltage *float64
	PV3Voltage *float64
	PV1Power   *float64
	PV2Power   *float64
	PV3Power   *float64
	PVTotalPower *float64

	BatteryVoltage *float64
	BatteryPower   *float64
	BatteryCurrent *float64
	BatterySOC     *int
	BatterySOH     *int

	GridVoltageR   *float64
	GridVoltageS   *float64
	GridVoltageT   *float64
	GridFrequency  *float64
	InverterPower  *float64
	RatedPower     *float64
	LoadPower      *float64
	ExportPower    *float64
	ImportPower    *float64
	OutputPowerL1  *float64
	OutputPowerL2  *float64
	OutputPowerL3  *float64

	EPSPower      *float64
	EPSL1Voltage  *float64
	EPSL2Voltage  *float64
	EPSFrequency  *float64
	EPSL1Power    *float64
	EPSL2Power    *float64

	GeneratorVoltage   *float64
	GeneratorFrequency *float64
	GeneratorPower     *float64
	ACCouplePower      *float64

	ParallelIsMaster  *bool
	ParallelPhase     *int
	ParallelNodeCount *int
	ParallelMasterPower *float64

	FaultCode1    *float64
	FaultCode2    *float64
	WarningCode1  *float64
	WorkMode      *float64
	StatusWord    *float64
}

// EnergyRecord is the decoded today/lifetime energy counters. Energy values
// are in kWh.
type EnergyRecord struct {
	PV1EnergyToday *float64
	PV2EnergyToday *float64

	BatteryChargeToday    *float64
	BatteryDischargeToday *float64
	GridImportToday       *float64
	GridExportToday       *float64
	LoadEnergyToday       *float64

	PVEnergyLifetime             *float64
	BatteryChargeLifetime        *float64
	BatteryDischargeLifetime     *float64
	GridImportLifetime           *float64
	GridExportLifetime           *float64
	LoadEnergyLifetime           *float64

	// BMS passthrough is supplementary: a failed read leaves these nil
	// without failing the Energy read as a whole (spec.md §7).
	BMSMaxChargeCurrent    *float64
	BMSMaxDischargeCurrent *float64
}

// BatteryModule is one individually-reportable battery module's fields.
type BatteryModule struct {
	Index        int
	Serial       string
	Firmware     string
	CapacityAh   *float64
	Voltage      *float64
	Current      *float64
	SOC          *int
	SOH          *int
	CycleCount   *float64
	MinCellMV    *float64
	MaxCellMV    *float64
	MinCellTempC *float64
	MaxCellTempC *float64
}

// BatteryBankRecord is the bank-aggregate record plus zero or more
// individual modules.
type BatteryBankRecord struct {
	BankVoltage    *float64
	BankCurrent    *float64
	BankSOC        *int
	BankSOH        *int
	BankCycleCount *float64
	BankCapacityAh *float64
	BatteryCount   int
	MaxCellVoltageMV *float64
	MinCellVoltageMV *float64
	MaxCellTempC     *float64
	MinCellTempC     *float64
	Modules          []BatteryModule
}

// GridInterfaceRuntimeRecord is the GRIDBOSS_MID record: aggregate and
// per-phase voltage/current/power for grid, UPS, and generator buses, plus
// four smart ports. Grounded on
// original_source/src/pylxpweb/devices/_mid_runtime_properties.py.
type GridInterfaceRuntimeRecord struct {
	GridVoltage   *float64
	GridL1Voltage *float64
	GridL2Voltage *float64
	UPSVoltage    *float64
	UPSL1Voltage  *float64
	UPSL2Voltage  *float64
	GeneratorVoltage   *float64
	GeneratorL1Voltage *float64
	GeneratorL2Voltage *float64
	GridFrequency *float64

	GridL1Current *float64
	GridL2Current *float64
	LoadL1Current *float64
	LoadL2Current *float64
	GeneratorL1Current *float64
	GeneratorL2Current *float64
	UPSL1Current  *float64
	UPSL2Current  *float64

	GridL1Power *float64
	GridL2Power *float64
	LoadL1Power *float64
	LoadL2Power *float64
	GeneratorL1Power *float64
	GeneratorL2Power *float64
	UPSL1Power  *float64
	UPSL2Power  *float64

	SmartPorts []SmartPort

	GridImportToday       *float64
	GridExportToday       *float64
	LoadEnergyToday       *float64
	GeneratorEnergyToday  *float64
	GridImportLifetime    *float64
	GridExportLifetime    *float64
	LoadEnergyLifetime    *float64

	DeviceStatusWord *float64
	FaultCode        *float64
	MidboxStatus     *float64
	BusbarVoltage    *float64
	BusbarCurrent    *float64
}

// SmartPort is one of the four GridBoss smart ports: its configured status
// and its per-phase smart-load, AC-couple, and derived AC-couple power.
// Port is 1-4.
type SmartPort struct {
	Port                 int
	Status               *int
	SmartLoadL1Power      *float64
	SmartLoadL2Power      *float64
	ACCoupleL1Power       *float64
	ACCoupleL2Power       *float64
	// DerivedACCoupleL1Power / L2 resolve the Open Question on
	// ac_couple_power sourcing: see EPS leg-split / ac-couple notes in
	// eps.go.
	DerivedACCoupleL1Power *float64
	DerivedACCoupleL2Power *float64
}
