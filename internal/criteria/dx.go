// Package criteria derives the search keys used to select reference
// records for each equipment class.
package criteria

import (
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

const (
	HeatingElectricOrNone = "Electric Resistance or None"
	HeatingAllOther       = "All Other"
)

// DXCoil builds the key for a DX heating or cooling coil from its
// subcategory, condenser type and the heating equipment sharing its unit or
// loop.
func DXCoil(std *standards.Standard, coil model.DXCoil) standards.SearchKey {
	key := std.NewSearchKey()
	key.Set(standards.FieldCoolingType, coolingType(coil))
	key.Set(standards.FieldSubcategory, string(SubcategoryOf(coil)))
	if ht, ok := HeatingTypeOf(coil); ok {
		key.Set(standards.FieldHeatingType, ht)
	}

	// heat pump heating coils are not rated separately
	if coil.Kind() == model.KindCoilHeatingDXSingleSpeed && IsHeatPump(coil) {
		if u, ok := model.ContainingHVAC(coil).Get(); ok && u.Kind() == model.KindUnitaryHeatPumpAirToAir {
			key.Delete(standards.FieldHeatingType)
		}
	}
	return key
}

func coolingType(coil model.DXCoil) string {
	switch coil.Kind() {
	case model.KindCoilCoolingDXSingleSpeed, model.KindCoilCoolingDXTwoSpeed, model.KindCoilCoolingDXMultiSpeed:
		return coil.CondenserKind()
	}
	return "AirCooled"
}

// SubcategoryOf returns the explicit subcategory tag when set. Otherwise
// it starts from Single Package, lets legacy names override that default,
// and finally applies packaged terminal containment.
func SubcategoryOf(coil model.DXCoil) model.Subcategory {
	if s := coil.DXSubcategory(); s.Valid() {
		return s
	}

	sub := model.SubcategorySinglePackage
	if legacy := model.LegacyTagsFromName(coil.Name()).Subcategory; legacy != model.SubcategoryUnset {
		sub = legacy
	}
	if model.AirLoopOf(coil).IsSet() {
		return sub
	}
	if z, ok := model.ContainingZoneHVAC(coil).Get(); ok {
		switch z.Kind() {
		case model.KindPTAC:
			sub = model.SubcategoryPTAC
		case model.KindPTHP:
			sub = model.SubcategoryPTHP
		}
	}
	return sub
}

// IsHeatPump reports whether c is part of an air-to-air heat pump or a
// packaged terminal heat pump.
func IsHeatPump(c model.Component) bool {
	if model.AirLoopOf(c).IsSet() {
		return false
	}
	if u, ok := model.ContainingHVAC(c).Get(); ok {
		if hp, ok := u.(*model.UnitaryHeatPump); ok {
			if hp.Kind() == model.KindUnitaryHeatPumpAirToAir {
				return true
			}
			return hp.HeatingCoil != nil && hp.HeatingCoil.Kind().IsDXHeatingCoil()
		}
	}
	if z, ok := model.ContainingZoneHVAC(c).Get(); ok && z.Kind() == model.KindPTHP {
		return true
	}
	return false
}

// HeatingTypeOf classifies the heating that accompanies c. It reports
// false for an orphaned component and for a unitary system that is not a
// minisplit, whose heating is not classified.
func HeatingTypeOf(c model.Component) (string, bool) {
	if loop, ok := model.AirLoopOf(c).Get(); ok {
		for _, sc := range loop.SupplyComponents() {
			if sc.Kind().NonElectricHeating() {
				return HeatingAllOther, true
			}
		}
		return HeatingElectricOrNone, true
	}

	if u, ok := model.ContainingHVAC(c).Get(); ok {
		switch v := u.(type) {
		case *model.UnitaryHeatPump:
			return HeatingElectricOrNone, true
		case *model.UnitarySystem:
			if v.IsMinisplit() {
				return HeatingAllOther, true
			}
			return "", false
		}
	}

	if z, ok := model.ContainingZoneHVAC(c).Get(); ok {
		switch v := z.(type) {
		case *model.PackagedTerminalUnit:
			if v.Kind() == model.KindPTHP {
				return HeatingElectricOrNone, true
			}
			return companionHeating(v.HeatingCoil), true
		case *model.FourPipeFanCoil:
			return companionHeating(v.HeatingCoil), true
		}
	}
	return "", false
}

func companionHeating(h *model.HeatingCoil) string {
	if h != nil && h.Kind().NonElectricHeating() {
		return HeatingAllOther
	}
	return HeatingElectricOrNone
}
