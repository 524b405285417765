package regmap

// HoldParameter describes one named holding-register parameter block as
// used by the cloud control endpoints, grounded on
// original_source/tests/unit/test_registers.py's REGISTER_BLOCKS_18KPV /
// REGISTER_BLOCKS_GRIDBOSS fixtures. Register is the canonical block
// register number; Size is its declared word width. ReadStart/ReadSize
// differ from Register/Size when the block requires one or more leading
// padding words to land on a chunk-aligned read window.
type HoldParameter struct {
	Name      string
	Register  int
	Size      int
	ReadStart int
	ReadSize  int
}

// PVSeriesHoldParameters is a representative subset of the 18kPV hold-
// parameter catalogue: the entries exercised by ControlEndpoints and by the
// per-spec register windows named in §4.4's docstring (function enable at
// 21, AC charge power/SOC/schedule at 66/67/70, system charge SOC limit at 100,
// system function bitfield at 110).
var PVSeriesHoldParameters = map[string]HoldParameter{
	"HOLD_MODEL":                       {Name: "HOLD_MODEL", Register: 0, Size: 2, ReadStart: 0, ReadSize: 2},
	"HOLD_SERIAL_NUM":                  {Name: "HOLD_SERIAL_NUM", Register: 2, Size: 5, ReadStart: 2, ReadSize: 5},
	"HOLD_TIME":                        {Name: "HOLD_TIME", Register: 12, Size: 3, ReadStart: 11, ReadSize: 4},
	"HOLD_FUNC_EN":                     {Name: "HOLD_FUNC_EN", Register: 21, Size: 1, ReadStart: 21, ReadSize: 1},
	"HOLD_AC_CHARGE_POWER_CMD":         {Name: "HOLD_AC_CHARGE_POWER_CMD", Register: 66, Size: 1, ReadStart: 66, ReadSize: 1},
	"HOLD_AC_CHARGE_SOC_LIMIT":         {Name: "HOLD_AC_CHARGE_SOC_LIMIT", Register: 67, Size: 1, ReadStart: 67, ReadSize: 1},
	"HOLD_AC_CHARGE_START_TIME":        {Name: "HOLD_AC_CHARGE_START_TIME", Register: 70, Size: 1, ReadStart: 70, ReadSize: 1},
	"HOLD_SYSTEM_CHARGE_SOC_LIMIT":     {Name: "HOLD_SYSTEM_CHARGE_SOC_LIMIT", Register: 100, Size: 1, ReadStart: 100, ReadSize: 1},
	"HOLD_SYS_FUNC_EN":                 {Name: "HOLD_SYS_FUNC_EN", Register: 110, Size: 1, ReadStart: 110, ReadSize: 1},
	"HOLD_UVF_DERATE_START_POINT":      {Name: "HOLD_UVF_DERATE_START_POINT", Register: 134, Size: 1, ReadStart: 126, ReadSize: 9},
}

// GridBossHoldParameters mirrors PVSeriesHoldParameters for the GridBOSS
// control surface, including its busbar-rating block.
var GridBossHoldParameters = map[string]HoldParameter{
	"HOLD_MODEL":                    {Name: "HOLD_MODEL", Register: 0, Size: 2, ReadStart: 0, ReadSize: 2},
	"HOLD_SERIAL_NUM":               {Name: "HOLD_SERIAL_NUM", Register: 2, Size: 5, ReadStart: 2, ReadSize: 5},
	"MIDBOX_HOLD_BUSBAR_PCS_RATING": {Name: "MIDBOX_HOLD_BUSBAR_PCS_RATING", Register: 2099, Size: 1, ReadStart: 2033, ReadSize: 67},
}

// HoldParametersForFamily returns the catalogue appropriate to family.
// GridBOSS gets its own table; every other family uses the PV_SERIES
// catalogue (LXP_EU and FLEXBOSS share the same named parameters).
func HoldParametersForFamily(familyName string) map[string]HoldParameter {
	if familyName == "GRIDBOSS_MID" {
		return GridBossHoldParameters
	}
	return PVSeriesHoldParameters
}
