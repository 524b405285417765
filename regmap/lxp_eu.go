package regmap

// LXPEURuntime is the Runtime register map for the European LXP product
// line. It shares the PV_SERIES layout (spec.md §4.1: "the map must support
// ... PV_SERIES ... LXP_EU, and their known divergences") except for the
// fields overridden below: LXP_EU firmware reports battery voltage at
// hundredth-volt resolution rather than tenth-volt, and a third output-power
// leg is declared at register 172 for its three-phase variant. The local
// transports read LXP_EU through PVSeriesGroups, whose output_power group
// covers only 170-171, so output_power_l3 is left unset by local reads.
var LXPEURuntime = cloneWithOverrides("LXP_EU", PVSeriesRuntime,
	RegisterDefinition{Name: "battery_voltage", Address: 4, BitWidth: 16, Sign: Unsigned, Scale: ScaleHundredth, Category: CategoryRuntime},
	RegisterDefinition{Name: "output_power_l3", Address: 172, BitWidth: 16, Sign: Signed, Scale: ScaleIdentity, Category: CategoryRuntime},
)

// LXPEUEnergy reuses LXPEURuntime for the same reason PVSeriesEnergy reuses
// PVSeriesRuntime: the Energy decoder does not demand its own read
// strategy.
var LXPEUEnergy = LXPEURuntime

func cloneWithOverrides(family string, base *RegisterMap, overrides ...RegisterDefinition) *RegisterMap {
	fields := make(map[string]RegisterDefinition, len(base.Fields)+len(overrides))
	for name, def := range base.Fields {
		fields[name] = def
	}
	for _, def := range overrides {
		fields[def.Name] = def
	}
	return &RegisterMap{Family: family, Fields: fields}
}
