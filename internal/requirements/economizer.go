package requirements

import (
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// EconomizerRequired reports whether loop must carry an air-side
// economizer: its design supply air flow exceeds the flow threshold (m3/s),
// or its total DX cooling capacity exceeds the capacity threshold (Btu/hr).
func (e *Evaluator) EconomizerRequired(loop *model.AirLoop) bool {
	if excluded(loop.Name(), e.economizerExclusions) {
		return e.decide(FeatureEconomizer, loop, false, "excluded")
	}

	flowThreshold := e.std.Constant("economizer_flow_threshold", 1.5)
	if flow, ok := e.designSupplyAirFlow(loop); ok && flow > flowThreshold {
		e.log.Info("economizer required",
			zap.String("loop", loop.Name()),
			zap.Float64("flow", flow))
		return e.decide(FeatureEconomizer, loop, true, "flow")
	}

	capacityThreshold := e.std.Constant("economizer_capacity_threshold", 68243)
	if btu := standards.WToBtuPerHour(e.TotalCoolingCapacity(loop)); btu > capacityThreshold {
		e.log.Info("economizer required",
			zap.String("loop", loop.Name()),
			zap.Float64("capacity_btu_hr", btu))
		return e.decide(FeatureEconomizer, loop, true, "capacity")
	}
	return e.decide(FeatureEconomizer, loop, false, "below thresholds")
}

func (e *Evaluator) designSupplyAirFlow(loop *model.AirLoop) (float64, bool) {
	if v, ok := loop.DesignSupplyAirFlowRate.Get(); ok {
		return v, true
	}
	return standards.UnwrapOrLog(e.log,
		e.autosized("AirLoopHVAC", loop.Name(), "Design Supply Air Flow Rate", "m3/s"),
		"sizing data not available",
		zap.String("object", loop.Name()),
		zap.String("field", "Design Supply Air Flow Rate"))
}

// TotalCoolingCapacity sums the DX cooling capacity on the supply side of
// loop in W, including coils wrapped in unitary equipment. Coils without a
// known capacity count as zero.
func (e *Evaluator) TotalCoolingCapacity(loop *model.AirLoop) float64 {
	var total float64
	for _, c := range loop.SupplyComponents() {
		coil := coolingCoilOf(c)
		if coil == nil {
			continue
		}
		if v, ok := e.coilCapacity(coil); ok {
			total += v
		}
	}
	return total
}

func coolingCoilOf(c model.Component) *model.CoolingCoil {
	switch v := c.(type) {
	case *model.CoolingCoil:
		return v
	case *model.UnitaryHeatPump:
		return v.CoolingCoil
	case *model.UnitarySystem:
		return v.CoolingCoil
	}
	return nil
}

func (e *Evaluator) coilCapacity(c *model.CoolingCoil) (float64, bool) {
	hard := c.RatedTotalCapacity
	if n := len(c.Stages); n > 0 {
		hard = c.Stages[n-1].GrossRatedTotalCoolingCapacity
	}
	if v, ok := hard.Get(); ok {
		return v, true
	}
	return standards.UnwrapOrLog(e.log,
		e.autosized(c.Kind().String(), c.BaseName(), "Gross Rated Total Cooling Capacity", "W"),
		"sizing data not available",
		zap.String("object", c.Name()),
		zap.String("field", "Gross Rated Total Cooling Capacity"))
}

// ApplyEconomizerIntegration lets the economizer run together with
// mechanical cooling. It reports false when loop has no OA system.
func (e *Evaluator) ApplyEconomizerIntegration(loop *model.AirLoop) bool {
	oa, ok := loop.OutdoorAirSystem().Get()
	if !ok {
		return false
	}
	oa.Controller.LockoutType = "NoLockout"
	return true
}

// ApplyEconomizers adds a differential enthalpy economizer to every loop
// of m that requires one and returns how many loops changed.
func (e *Evaluator) ApplyEconomizers(m *model.Model) int {
	var n int
	for _, loop := range m.AirLoops() {
		if !e.EconomizerRequired(loop) {
			continue
		}
		oa, ok := loop.OutdoorAirSystem().Get()
		if !ok {
			e.log.Warn("economizer required but loop has no outdoor air system", zap.String("loop", loop.Name()))
			continue
		}
		oa.Controller.EconomizerControlType = "DifferentialEnthalpy"
		e.ApplyEconomizerIntegration(loop)
		n++
	}
	return n
}

// ApplyVAVDamperAction switches VAV reheat terminals to normal damper
// action with half flow during reheat. It returns the number of terminals
// changed.
func (e *Evaluator) ApplyVAVDamperAction(m *model.Model) int {
	var n int
	for _, t := range model.ComponentsOf[*model.AirTerminal](m) {
		if t.Kind() != model.KindAirTerminalVAVReheat {
			continue
		}
		t.DamperHeatingAction = "Normal"
		t.MaximumFlowFractionDuringReheat = model.Some(0.5)
		n++
	}
	return n
}
