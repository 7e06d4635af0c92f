package equipment

import (
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/criteria"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/staging"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// Packaged terminal ratings are linear in capacity over this range, Btu/hr.
const (
	ptMinCapacity = 7000
	ptMaxCapacity = 15000
)

// coolingRating is one way a record may publish cooling efficiency. Later
// entries override earlier ones.
type coolingRating struct {
	field string
	label string
	toCOP func(float64) float64
}

var coolingRatings = []coolingRating{
	{"minimum_seasonal_energy_efficiency_ratio", "SEER", standards.SEERToCOP},
	{"minimum_energy_efficiency_ratio", "EER", standards.EERToCOP},
	{"minimum_seasonal_efficiency", "SEER", standards.SEERToCOP},
	{"minimum_full_load_efficiency", "EER", standards.EERToCOP},
}

// ApplyDXCoil rates a DX cooling coil. Multi-speed coils are staged first,
// with flow split in proportion to stage capacity.
func (a *Applier) ApplyDXCoil(c *model.CoolingCoil) bool {
	key := criteria.DXCoil(a.std, c)
	success := true

	var (
		capacity    float64
		caps, flows []float64
		flowOK      bool
	)
	if n := len(c.Stages); n > 0 {
		last := c.Stages[n-1]
		total, ok := a.sized(c, last.GrossRatedTotalCoolingCapacity, "Speed 4 Gross Rated Total Cooling Capacity", "W")
		if !ok {
			return false
		}
		var err error
		caps, err = staging.Capacities(total, n, staging.DefaultUnitStep)
		if err != nil {
			a.log.Warn("cannot stage coil", zap.String("object", c.Name()), zap.Error(err))
			return false
		}
		var flow float64
		flow, flowOK = a.sized(c, last.RatedAirFlowRate, "Speed 4 Rated Air Flow Rate", "m3/s")
		flows = staging.Flows(caps, total, flow)
		success = flowOK
		capacity = total
	} else {
		total, ok := a.sized(c, c.RatedTotalCapacity, "Gross Rated Total Cooling Capacity", "W")
		if !ok {
			return false
		}
		capacity = total
	}

	btu := standards.WToBtuPerHour(capacity)
	table := "unitary_acs"
	if criteria.IsHeatPump(c) {
		table = "heat_pumps"
	}
	rec, ok := a.lookup(table, key, btu)
	if !ok {
		return false
	}
	for i, s := range c.Stages {
		s.GrossRatedTotalCoolingCapacity = model.Some(caps[i])
		if flowOK {
			s.RatedAirFlowRate = model.Some(flows[i])
		}
	}

	curves, ok := a.coolingCurves(c, rec)
	success = success && ok
	c.Curves = curves
	for _, s := range c.Stages {
		s.Curves = curves
	}

	var (
		cop, value float64
		label      string
		found      bool
	)
	sub := criteria.SubcategoryOf(c)
	if sub == model.SubcategoryPTAC || sub == model.SubcategoryPTHP {
		c1, ok1 := rec.Value("ptac_eer_coefficient_1")
		c2, ok2 := rec.Value("ptac_eer_coefficient_2")
		if ok1 && ok2 {
			value = c1 + c2*min(max(btu, ptMinCapacity), ptMaxCapacity)
			cop, label, found = standards.EERToCOP(value), "EER", true
		}
	}
	for _, r := range coolingRatings {
		if v, ok := rec.Value(r.field); ok {
			value, cop, label, found = v, r.toCOP(v), r.label, true
		}
	}
	if !found {
		a.log.Warn("reference record has no cooling efficiency",
			zap.String("object", c.Name()),
			zap.String("record", rec.ID()))
		return false
	}

	c.RatedCOP = cop
	for _, s := range c.Stages {
		s.GrossRatedCOP = cop
	}
	c.SetRatedName(ratedName(c.BaseName(), capacity, value, label))
	a.log.Info("cooling efficiency applied",
		zap.String("object", c.Name()),
		zap.String("record", rec.ID()),
		zap.Stringer("key", key),
		zap.Float64("cop", cop))
	return success
}

func (a *Applier) coolingCurves(c model.Component, rec *standards.Record) (model.CoolingCurves, bool) {
	var out model.CoolingCurves
	ok := true
	for _, slot := range []struct {
		role string
		dst  **model.Curve
	}{
		{"cool_cap_ft", &out.CapacityFT},
		{"cool_cap_fflow", &out.CapacityFFlow},
		{"cool_eir_ft", &out.EIRFT},
		{"cool_eir_fflow", &out.EIRFFlow},
		{"cool_plf_fplr", &out.PartLoadFractionFPLR},
	} {
		curve, found := a.curve(c, rec, slot.role)
		if !found {
			ok = false
			continue
		}
		*slot.dst = curve
	}
	return out, ok
}

// ApplyDXHeatingCoil rates a heat pump heating coil. Heat pumps are rated
// at their cooling capacity, so the paired cooling coil is sized first
// when there is one.
func (a *Applier) ApplyDXHeatingCoil(h *model.HeatingCoil) bool {
	key := criteria.DXCoil(a.std, h)

	capacity, ok := a.heatPumpCapacity(h)
	if !ok {
		return false
	}
	btu := standards.WToBtuPerHour(capacity)
	rec, ok := a.lookup("heat_pumps_heating", key, btu)
	if !ok {
		return false
	}

	var (
		cop, value float64
		label      string
	)
	if v, ok := rec.Value("minimum_heating_seasonal_performance_factor"); ok {
		value, cop, label = v, standards.HSPFToCOP(v), "HSPF"
	} else if v, ok := rec.Value("minimum_coefficient_of_performance_heating"); ok {
		value, cop, label = v, v, "COP"
	} else {
		c1, ok1 := rec.Value("pthp_cop_coefficient_1")
		c2, ok2 := rec.Value("pthp_cop_coefficient_2")
		if !ok1 || !ok2 {
			a.log.Warn("reference record has no heating efficiency",
				zap.String("object", h.Name()),
				zap.String("record", rec.ID()))
			return false
		}
		value = c1 + c2*min(max(btu, ptMinCapacity), ptMaxCapacity)
		cop, label = value, "COP"
	}

	h.RatedCOP = cop
	h.SetRatedName(ratedName(h.BaseName(), capacity, value, label))
	a.log.Info("heating efficiency applied",
		zap.String("object", h.Name()),
		zap.String("record", rec.ID()),
		zap.Float64("cop", cop))
	return true
}

func (a *Applier) heatPumpCapacity(h *model.HeatingCoil) (float64, bool) {
	var clg *model.CoolingCoil
	if u, ok := model.ContainingHVAC(h).Get(); ok {
		if hp, ok := u.(*model.UnitaryHeatPump); ok {
			clg = hp.CoolingCoil
		}
	}
	if z, ok := model.ContainingZoneHVAC(h).Get(); ok {
		if pt, ok := z.(*model.PackagedTerminalUnit); ok {
			clg = pt.CoolingCoil
		}
	}
	if clg != nil && len(clg.Stages) == 0 {
		if v, ok := clg.RatedTotalCapacity.Get(); ok {
			return v, true
		}
		if a.results != nil {
			if v, ok := a.results.AutosizedValue(clg.Kind().String(), clg.BaseName(), "Gross Rated Total Cooling Capacity", "W").Get(); ok {
				return v, true
			}
		}
	}
	return a.sized(h, h.NominalCapacity, "Gross Rated Heating Capacity", "W")
}
