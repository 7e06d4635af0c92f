package equipment

import (
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/criteria"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/staging"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// FuelFired is equipment rated by a single fuel efficiency.
type FuelFired interface {
	model.Component
	SetThermalEfficiency(v float64)
	SetEfficiencyCurve(c *model.Curve)
}

// Flow mode and part load limit of a modulating lead unit.
const (
	modulatingFlowMode = "LeavingSetpointModulated"
	modulatingMinPLR   = 0.25

	// lag units keep a token capacity so the simulation accepts them
	lagCapacity = 0.001
)

// ApplyEfficiency writes the efficiency curve and the thermal-equivalent
// efficiency of rec onto obj. It keeps going after a missing curve and
// reports false.
func (a *Applier) ApplyEfficiency(obj FuelFired, rec *standards.Record, capacityW float64, rename bool) bool {
	ok := true
	if c, found := a.curve(obj, rec, "efffplr"); found {
		obj.SetEfficiencyCurve(c)
	} else {
		ok = false
	}

	v, unit, found := rec.FuelEfficiency()
	if !found {
		a.log.Warn("reference record has no fuel efficiency",
			zap.String("object", obj.Name()),
			zap.String("record", rec.ID()))
		return false
	}
	thermal := standards.ThermalEfficiency(v, unit)
	obj.SetThermalEfficiency(thermal)

	if rename {
		obj.SetRatedName(ratedName(obj.BaseName(), capacityW, v, unit.Label()))
	}
	a.log.Info("fuel efficiency applied",
		zap.String("object", obj.Name()),
		zap.String("record", rec.ID()),
		zap.Stringer("unit", unit),
		zap.Float64("thermal_efficiency", thermal))
	return ok
}

func isLead(role model.EquipmentRole) bool {
	return role != model.RoleSecondary
}

// ApplyBoiler splits the plant capacity between the lead and lag boilers,
// then rates the boiler at its share.
func (a *Applier) ApplyBoiler(b *model.Boiler) bool {
	total, ok := b.PlantCapacity.Get()
	if !ok {
		if total, ok = a.sized(b, b.NominalCapacity, "Nominal Capacity", "W"); !ok {
			return false
		}
	}

	high := a.std.Constant("boiler_cutoff_high", 352000)
	low := a.std.Constant("boiler_cutoff_low", 176000)
	lead := isLead(b.EffectiveRole())

	capacity := total
	modulating := false
	switch {
	case total >= high:
		if lead {
			modulating = true
		} else {
			capacity = lagCapacity
		}
	case total >= low:
		capacity = total / 2
	case !lead:
		capacity = lagCapacity
	}
	a.log.Debug("boiler capacity split",
		zap.String("object", b.Name()),
		zap.Stringer("role", b.EffectiveRole()),
		zap.Float64("plant_capacity", total),
		zap.Float64("capacity", capacity))

	// the boiler is left untouched when no record matches
	rec, ok := a.lookup("boilers", criteria.Boiler(a.std, b), standards.WToBtuPerHour(capacity))
	if !ok {
		return false
	}
	if modulating {
		b.FlowMode = modulatingFlowMode
		b.MinimumPartLoadRatio = modulatingMinPLR
	}
	b.PlantCapacity = model.Some(total)
	b.NominalCapacity = model.Some(capacity)
	return a.ApplyEfficiency(b, rec, capacity, true)
}

// ApplyGasCoil rates a single stage gas heating coil as a furnace.
func (a *Applier) ApplyGasCoil(c *model.HeatingCoil) bool {
	capacity, ok := a.sized(c, c.NominalCapacity, "Nominal Capacity", "W")
	if !ok {
		return false
	}
	rec, ok := a.lookup("furnaces", criteria.Furnace(a.std), max(standards.WToBtuPerHour(capacity), 0.001))
	if !ok {
		return false
	}
	return a.ApplyEfficiency(c, rec, capacity, false)
}

// ApplyGasMultiStage stages a multistage gas coil and sets the furnace part
// load curve.
func (a *Applier) ApplyGasMultiStage(c *model.HeatingCoil) bool {
	if len(c.Stages) == 0 {
		a.log.Warn("multistage coil has no stages", zap.String("object", c.Name()))
		return false
	}
	last := c.Stages[len(c.Stages)-1]
	total, ok := a.sized(c, last.NominalCapacity, "Stage 4 Nominal Capacity", "W")
	if !ok {
		return false
	}

	caps, err := staging.Capacities(total, len(c.Stages), staging.DefaultUnitStep)
	if err != nil {
		a.log.Warn("cannot stage coil", zap.String("object", c.Name()), zap.Error(err))
		return false
	}
	for i, s := range c.Stages {
		s.NominalCapacity = model.Some(caps[i])
	}

	curve, ok := a.namedCurve(c, "FURNACE-EFFPLR-"+a.std.ID())
	if !ok {
		return false
	}
	c.PartLoadFractionCurve = curve
	return true
}
