package systems

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// zeroOutdoorAir stands in for no outdoor air; a true zero would be
// autosized.
const zeroOutdoorAir = 1e-5

// AddZoneBaseboards attaches the baseboards of kind to zone. Hot water
// baseboards put their coil on the demand side of hw.
func AddZoneBaseboards(m *model.Model, zone *model.ThermalZone, kind BaseboardType, hw *model.PlantLoop) error {
	switch kind {
	case BaseboardNone:
		return nil
	case BaseboardElectric:
		b := model.Add(m, model.NewBaseboard(zone.Name()+" Electric Baseboard", false))
		b.Availability = m.AlwaysOn()
		zone.AddEquipment(b)
		return nil
	case BaseboardHotWater:
		if hw == nil {
			return ErrMissingHotWaterLoop
		}
		b := model.Add(m, model.NewBaseboard(zone.Name()+" Hot Water Baseboard", true))
		b.Availability = m.AlwaysOn()
		model.Add(m, b.Coil)
		hw.AddDemandBranch(b.Coil)
		zone.AddEquipment(b)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidBaseboardType, kind)
	}
}

// AddPTACDXCooling gives each zone a packaged terminal air conditioner
// with a single speed DX coil on the reference curves. Its electric
// heating coil stays off. With zeroOA set the unit brings in no outdoor
// air.
func (a *Assembler) AddPTACDXCooling(m *model.Model, zones []*model.ThermalZone, zeroOA bool) []*model.PackagedTerminalUnit {
	if m.Curves == nil {
		m.Curves = model.NewCurveRegistry(a.std.Store())
	}

	out := make([]*model.PackagedTerminalUnit, 0, len(zones))
	for _, z := range zones {
		htg := model.Add(m, model.NewHeatingCoil(model.KindCoilHeatingElectric, z.Name()+" PTAC Heating Coil"))
		htg.Availability = m.AlwaysOff()

		clg := model.Add(m, model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, z.Name()+" PTAC 1spd DX Clg Coil"))
		clg.Subcategory = model.SubcategoryPTAC
		clg.Curves = a.referenceCoolingCurves(m)

		fan := model.Add(m, model.NewFan(model.KindFanConstantVolume, z.Name()+" PTAC Fan"))
		fan.PressureRise = 640

		ptac := model.Add(m, model.NewPackagedTerminalUnit(z.Name()+" PTAC", false, fan, htg, clg))
		ptac.Availability = m.AlwaysOn()
		if zeroOA {
			ptac.OutdoorAirFlowRateDuringCooling = model.Some(zeroOutdoorAir)
			ptac.OutdoorAirFlowRateDuringHeating = model.Some(zeroOutdoorAir)
			ptac.OutdoorAirFlowRateWhenNoCoolingOrHeatingIsNeeded = model.Some(zeroOutdoorAir)
		}
		z.AddEquipment(ptac)
		out = append(out, ptac)
	}
	return out
}

// referenceCoolingCurves resolves the DX cooling reference curves of the
// standard. A missing curve is logged and left nil.
func (a *Assembler) referenceCoolingCurves(m *model.Model) model.CoolingCurves {
	curve := func(suffix string) *model.Curve {
		name := "DXCOOL-" + a.std.ID() + "-REF-" + suffix
		c, _ := standards.UnwrapOrLog(a.log, m.Curves.GetOrCreate(name), "curve not found", zap.String("curve", name))
		return c
	}
	return model.CoolingCurves{
		CapacityFT:           curve("CAPFT"),
		CapacityFFlow:        curve("CAPFFLOW"),
		EIRFT:                curve("COOLEIRFT"),
		EIRFFlow:             curve("COOLEIRFFLOW"),
		PartLoadFractionFPLR: curve("COOLPLFFPLR"),
	}
}
