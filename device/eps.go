package device

import "math"

// computeEPSLegPower resolves the Open Question flagged in spec.md §9
// ("EPS per-leg power"). The original source's fallback branch is
// self-contradictory: when exactly one leg voltage is present it assigns
// int(total/2) to the voltage-less leg and int(total) to the present-voltage
// leg, double-counting power by 50%. This implementation instead guarantees
// every branch preserves total power:
//
//   - both leg voltages present and positive: proportional split by voltage
//     ratio (l1 + l2 == total, barring floating-point rounding);
//   - exactly one leg voltage present and positive: all power assigned to
//     that leg, zero to the other;
//   - neither present: an even 50/50 split, truncated toward zero to match
//     the source's int(total/2) behavior on an odd total.
func computeEPSLegPower(total, v1, v2 *float64) (*float64, *float64) {
	if total == nil {
		return nil, nil
	}
	t := *total
	haveV1 := v1 != nil && *v1 > 0
	haveV2 := v2 != nil && *v2 > 0

	switch {
	case haveV1 && haveV2:
		sum := *v1 + *v2
		l1 := t * (*v1 / sum)
		l2 := t - l1
		return ptrFloat(l1), ptrFloat(l2)
	case haveV1 && !haveV2:
		return ptrFloat(t), ptrFloat(0)
	case !haveV1 && haveV2:
		return ptrFloat(0), ptrFloat(t)
	default:
		half := math.Trunc(t / 2)
		return ptrFloat(half), ptrFloat(half)
	}
}

// deriveACCouplePowerLocal resolves the Open Question on ac_couple_power
// sourcing (spec.md §9): local transports intentionally proxy this field
// from generator_power. It is exposed as its own RuntimeRecord field rather
// than silently collapsed into GeneratorPower.
func deriveACCouplePowerLocal(generatorPower *float64) *float64 {
	if generatorPower == nil {
		return nil
	}
	v := *generatorPower
	return &v
}

// deriveSmartPortACCouplePower resolves the same Open Question for a
// GridBoss smart port, grounded on
// original_source/src/pylxpweb/devices/_mid_runtime_properties.py's
// _get_ac_couple_power: the EG4 API only populates the smartLoad*ActivePower
// fields when a port is in AC-couple mode, leaving acCouple*ActivePower at
// zero; local transports never expose port status at all, so when the
// smart-load reading is non-zero it is preferred over the (always-zero on
// local transports) AC-couple register.
func deriveSmartPortACCouplePower(status *int, smartLoadPower, acCouplePower *float64) *float64 {
	if status != nil && *status == 2 {
		return smartLoadPower
	}
	if (status == nil || *status == 0) && smartLoadPower != nil && *smartLoadPower != 0 {
		return smartLoadPower
	}
	return acCouplePower
}
