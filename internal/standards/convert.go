package standards

import "math"

const (
	btuPerHourPerWatt = 3.412141633
	wattsPerTon       = 3516.8528
	wattsPerHP        = 745.7
	cfmPerM3s         = 2118.880003
	ft2PerM2          = 10.763910417
)

func WToBtuPerHour(w float64) float64 { return w * btuPerHourPerWatt }

func BtuPerHourToW(btu float64) float64 { return btu / btuPerHourPerWatt }

func WToKBtuPerHour(w float64) float64 { return WToBtuPerHour(w) / 1000 }

func WToTons(w float64) float64 { return w / wattsPerTon }

func WToHP(w float64) float64 { return w / wattsPerHP }

func HPToW(hp float64) float64 { return hp * wattsPerHP }

func M3sToCFM(v float64) float64 { return v * cfmPerM3s }

func CFMToM3s(v float64) float64 { return v / cfmPerM3s }

func M2ToFt2(a float64) float64 { return a * ft2PerM2 }

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}

// AFUEToThermalEfficiency treats AFUE as equivalent to thermal efficiency,
// limited to [0, 1].
func AFUEToThermalEfficiency(afue float64) float64 {
	return clampUnit(afue)
}

// CombustionToThermalEfficiency subtracts the jacket loss allowance,
// limited to [0, 1].
func CombustionToThermalEfficiency(combustion float64) float64 {
	return clampUnit(combustion - 0.007)
}

// ThermalEfficiency converts a published fuel efficiency to thermal
// efficiency.
func ThermalEfficiency(v float64, unit EfficiencyUnit) float64 {
	switch unit {
	case EfficiencyAFUE:
		return AFUEToThermalEfficiency(v)
	case EfficiencyCombustion:
		return CombustionToThermalEfficiency(v)
	default:
		return clampUnit(v)
	}
}

// HSPFToCOP converts a heating seasonal performance factor to a heating
// COP without fan power.
func HSPFToCOP(hspf float64) float64 {
	return -0.0296*hspf*hspf + 0.7134*hspf
}

// EERToCOP removes the supply fan share of rated power, taken as 12%.
func EERToCOP(eer float64) float64 {
	const fanShare = 0.12
	return (eer/3.413 + fanShare) / (1 - fanShare)
}

func SEERToCOP(seer float64) float64 {
	return -0.0076*seer*seer + 0.3796*seer
}

// KWPerTonToCOP returns zero for a non-positive input.
func KWPerTonToCOP(kwPerTon float64) float64 {
	if kwPerTon <= 0 {
		return 0
	}
	return 3.517 / kwPerTon
}

func COPToKWPerTon(cop float64) float64 {
	if cop <= 0 {
		return math.Inf(1)
	}
	return 3.517 / cop
}
