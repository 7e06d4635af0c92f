package equipment

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/criteria"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// towerFor finds the cooling tower on the condenser loop serving c.
func towerFor(c *model.Chiller) *model.CoolingTower {
	loop, ok := model.DemandLoopOf(c).Get()
	if !ok {
		return nil
	}
	for _, sc := range loop.SupplyComponents() {
		if t, ok := sc.(*model.CoolingTower); ok {
			return t
		}
	}
	return nil
}

// ApplyChiller splits the plant capacity between lead and lag chillers,
// applies curves and COP, and sizes tower for the lead chiller. tower may
// be nil.
func (a *Applier) ApplyChiller(c *model.Chiller, tower *model.CoolingTower) bool {
	total, ok := c.PlantCapacity.Get()
	if !ok {
		if total, ok = a.sized(c, c.ReferenceCapacity, "Reference Capacity", "W"); !ok {
			return false
		}
	}

	lead := isLead(c.EffectiveRole())
	capacity := total / 2
	if total < a.std.Constant("chiller_cutoff", 2100000) {
		capacity = total
		if !lead {
			capacity = lagCapacity
		}
	}

	tons := standards.WToTons(capacity)
	rec, ok := a.lookup("chillers", criteria.Chiller(a.std, c), tons)
	if !ok {
		return false
	}
	c.FlowMode = modulatingFlowMode
	c.MinimumPartLoadRatio = modulatingMinPLR
	c.MinimumUnloadingRatio = modulatingMinPLR
	c.PlantCapacity = model.Some(total)
	c.ReferenceCapacity = model.Some(capacity)

	success := true
	for role, dst := range map[string]**model.Curve{
		"capft":   &c.CapacityFT,
		"eirft":   &c.EIRFT,
		"eirfplr": &c.EIRFPLR,
	} {
		if curve, found := a.curve(c, rec, role); found {
			*dst = curve
		} else {
			success = false
		}
	}

	kwPerTon, found := rec.Value("minimum_full_load_efficiency")
	if !found || kwPerTon <= 0 {
		a.log.Warn("reference record has no usable full load efficiency",
			zap.String("object", c.Name()),
			zap.String("record", rec.ID()),
			zap.Float64("kw_per_ton", kwPerTon))
		return false
	}
	c.ReferenceCOP = standards.KWPerTonToCOP(kwPerTon)

	if lead && tower != nil {
		a.sizeTower(tower, total*(1+1/c.ReferenceCOP))
	}

	c.SetRatedName(fmt.Sprintf("%s %.0ftons %.1fkW/ton", c.BaseName(), math.Round(tons), kwPerTon))
	a.log.Info("chiller efficiency applied",
		zap.String("object", c.Name()),
		zap.String("record", rec.ID()),
		zap.Float64("cop", c.ReferenceCOP))
	return success
}

// sizeTower sets cell count and fan power for the heat rejected by the
// lead chiller.
func (a *Applier) sizeTower(t *model.CoolingTower, heatW float64) {
	cell := a.std.Constant("cooling_tower_cell_capacity", 1750000)
	t.NumberOfCells = 1
	if heatW >= cell {
		t.NumberOfCells = int(math.Round(heatW/cell + 0.5))
	}
	t.FanPowerAtDesignAirFlowRate = model.Some(0.015 * heatW)
}
