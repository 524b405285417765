package device

import "github.com/devskill-org/lxpclient/regmap"

// DecodeBatteryBank decodes a BatteryBankRecord from the normal runtime
// range (bank-aggregate fields) and, when present, an extended range
// starting at regmap.IndividualBatteryBaseAddress (per-module fields). It
// returns nil when the bank-voltage register is at or below
// regmap.BankVoltagePresenceThreshold — "no battery present" is distinct
// from "read failed" (spec.md §3).
func DecodeBatteryBank(bankRegs regmap.RawRegisters, individualRegs regmap.RawRegisters, m *regmap.RegisterMap) *BatteryBankRecord {
	voltage := f(bankRegs, m, "bank_voltage")
	if voltage == nil || *voltage <= regmap.BankVoltagePresenceThreshold {
		return nil
	}

	bank := &BatteryBankRecord{
		BankVoltage:      voltage,
		BankCurrent:      f(bankRegs, m, "bank_current"),
		BankCycleCount:   f(bankRegs, m, "bank_cycle_count"),
		BankCapacityAh:   f(bankRegs, m, "bank_capacity_ah"),
		MaxCellVoltageMV: f(bankRegs, m, "max_cell_voltage_mv"),
		MinCellVoltageMV: f(bankRegs, m, "min_cell_voltage_mv"),
		MaxCellTempC:     f(bankRegs, m, "max_cell_temp"),
		MinCellTempC:     f(bankRegs, m, "min_cell_temp"),
	}
	bank.BankSOC = i(bankRegs, m, "bank_soc")
	bank.BankSOH = i(bankRegs, m, "bank_soh")

	if count := i(bankRegs, m, "battery_count"); count != nil {
		bank.BatteryCount = *count
	}

	if bank.BatteryCount > 0 && individualRegs != nil {
		n := bank.BatteryCount
		if n > regmap.IndividualBatteryMaxCount {
			n = regmap.IndividualBatteryMaxCount
		}
		bank.Modules = make([]BatteryModule, 0, n)
		for k := 0; k < n; k++ {
			mod, ok := decodeBatteryModule(individualRegs, k)
			if !ok {
				continue
			}
			bank.Modules = append(bank.Modules, mod)
		}
	}

	return bank
}

// decodeBatteryModule decodes the 30-word window for module index from
// individualRegs, which is keyed by absolute address
// (IndividualBatteryBaseAddress + 30*index + offset).
func decodeBatteryModule(regs regmap.RawRegisters, index int) (BatteryModule, bool) {
	base := regmap.IndividualBatteryBaseAddress + regmap.IndividualBatteryRegisterCount*uint16(index)

	serial, ok := regmap.DecodeASCIIString(regs, base, 5)
	if !ok {
		return BatteryModule{}, false
	}
	firmware, _ := regmap.DecodeASCIIString(regs, base+5, 2)

	mod := BatteryModule{Index: index, Serial: serial, Firmware: firmware}
	mod.Voltage = decodeModuleField(regs, base+9, 1, regmap.ScaleHundredth, regmap.Unsigned)
	mod.Current = decodeModuleField(regs, base+10, 1, regmap.ScaleTenth, regmap.Signed)
	mod.SOC = decodeModuleInt(regs, base+11)
	mod.SOH = decodeModuleInt(regs, base+12)
	mod.CycleCount = decodeModuleField(regs, base+13, 1, regmap.ScaleIdentity, regmap.Unsigned)
	mod.CapacityAh = decodeModuleField(regs, base+14, 1, regmap.ScaleIdentity, regmap.Unsigned)
	mod.MinCellMV = decodeModuleField(regs, base+15, 1, regmap.ScaleIdentity, regmap.Unsigned)
	mod.MaxCellMV = decodeModuleField(regs, base+16, 1, regmap.ScaleIdentity, regmap.Unsigned)
	mod.MinCellTempC = decodeModuleField(regs, base+17, 1, regmap.ScaleIdentity, regmap.Signed)
	mod.MaxCellTempC = decodeModuleField(regs, base+18, 1, regmap.ScaleIdentity, regmap.Signed)

	return mod, true
}

func decodeModuleField(regs regmap.RawRegisters, address uint16, bitWidth int, scale regmap.Scale, sign regmap.Signedness) *float64 {
	def := regmap.RegisterDefinition{Address: address, BitWidth: 16, Sign: sign, Scale: scale}
	v, ok := regmap.DecodeField(regs, def)
	if !ok {
		return nil
	}
	return &v
}

func decodeModuleInt(regs regmap.RawRegisters, address uint16) *int {
	v := decodeModuleField(regs, address, 1, regmap.ScaleIdentity, regmap.Unsigned)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
