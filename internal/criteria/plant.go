package criteria

import (
	"strings"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// BoilerFuel maps a model fuel type to the reference table vocabulary.
func BoilerFuel(fuel string) string {
	switch {
	case fuel == "NaturalGas":
		return "Gas"
	case fuel == "Electricity":
		return "Electric"
	case strings.HasPrefix(fuel, "FuelOil"):
		return "Oil"
	case fuel == "PropaneGas" || fuel == "Propane":
		return "Propane"
	}
	return fuel
}

func Boiler(std *standards.Standard, b *model.Boiler) standards.SearchKey {
	return std.NewSearchKey().
		Set(standards.FieldFuelType, BoilerFuel(b.FuelType)).
		Set(standards.FieldFluidType, "Hot Water")
}

func Chiller(std *standards.Standard, c *model.Chiller) standards.SearchKey {
	cooling := c.CondenserType
	if cooling == "" {
		cooling = "WaterCooled"
	}
	return std.NewSearchKey().
		Set(standards.FieldCoolingType, cooling).
		Set(standards.FieldCondenserType, c.EffectiveCondenserStyle()).
		Set(standards.FieldCompressorType, c.EffectiveCompressorType())
}

// Furnace is the key for gas-fired air heating coils.
func Furnace(std *standards.Standard) standards.SearchKey {
	return std.NewSearchKey().
		Set(standards.FieldFluidType, "Air").
		Set(standards.FieldFuelType, "Gas")
}

// Motor is the key for fan motors. The template carries the motor duty.
func Motor(std *standards.Standard, f *model.Fan) standards.SearchKey {
	suffix := "-CONSTANT"
	if f.Kind() == model.KindFanVariableVolume {
		suffix = "-VARIABLE-SUPPLY"
		if f.EffectiveDuty() == model.FanDutyReturn {
			suffix = "-VARIABLE-RETURN"
		}
	}
	return standards.NewSearchKey(std.ID()+suffix).
		Set(standards.FieldNumberOfPoles, "4").
		Set(standards.FieldType, "Enclosed")
}
