package requirements

import (
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

// ZoneExhaust is the exhaust contribution of one zone: its outdoor air
// flow (m3/s) and its winter design heating setpoint (C).
type ZoneExhaust struct {
	Zone               string
	OutdoorAirFlow     float64
	HeatingTemperature float64
}

// ExhaustHeatContent returns the heat carried by the exhaust of zones in
// kW, at an outdoor temperature of outdoorT. The exhaust temperature is
// the OA flow weighted average of the zone setpoints. It reports false
// when the zones bring in no outdoor air.
func ExhaustHeatContent(zones []ZoneExhaust, outdoorT float64) (float64, bool) {
	var flow, weighted float64
	for _, z := range zones {
		flow += z.OutdoorAirFlow
		weighted += z.OutdoorAirFlow * z.HeatingTemperature
	}
	if flow <= 0 {
		return 0, false
	}
	exhaustT := weighted / flow
	return 0.00123 * flow * 1000 * (exhaustT - outdoorT), true
}

// ZoneDesignHeatingTemperature returns the highest winter design day value
// of the zone heating setpoint schedule, or the standard default when the
// zone has none.
func (e *Evaluator) ZoneDesignHeatingTemperature(zone *model.ThermalZone) float64 {
	def := e.std.Constant("erv_default_zone_heating_temperature", 21)
	if zone.Thermostat == nil {
		return def
	}
	return zone.Thermostat.Heating.WinterDesignDayMax().OrElse(def)
}

// ZoneOutdoorAirFlow returns the design outdoor air flow of zone in m3/s,
// including the zone multiplier.
func ZoneOutdoorAirFlow(zone *model.ThermalZone) float64 {
	var flow float64
	for _, s := range zone.Spaces() {
		if s.OutdoorAir == nil {
			continue
		}
		flow += s.OutdoorAir.OutdoorAirFlowPerFloorArea * s.FloorArea
	}
	return flow * zone.EffectiveMultiplier()
}

// ZoneExhausts collects the exhaust contribution of every zone on loop.
func (e *Evaluator) ZoneExhausts(loop *model.AirLoop) []ZoneExhaust {
	zones := loop.ThermalZones()
	out := make([]ZoneExhaust, 0, len(zones))
	for _, z := range zones {
		out = append(out, ZoneExhaust{
			Zone:               z.Name(),
			OutdoorAirFlow:     ZoneOutdoorAirFlow(z),
			HeatingTemperature: e.ZoneDesignHeatingTemperature(z),
		})
	}
	return out
}

// ERVRequired reports whether loop must carry exhaust air energy recovery.
func (e *Evaluator) ERVRequired(loop *model.AirLoop) bool {
	if excluded(loop.Name(), e.ervExclusions) {
		return e.decide(FeatureERV, loop, false, "excluded")
	}
	oa, ok := loop.OutdoorAirSystem().Get()
	if e.DCVRequired(loop) || (ok && oa.Controller.DemandControlledVentilation) {
		return e.decide(FeatureERV, loop, false, "demand controlled ventilation")
	}
	if !ok {
		return e.decide(FeatureERV, loop, false, "no outdoor air system")
	}

	outdoorT, ok := e.heatingDesignTemperature()
	if !ok {
		e.log.Warn("weather data not available",
			zap.String("loop", loop.Name()),
			zap.String("field", "heating design temperature"))
		return e.decide(FeatureERV, loop, false, "no weather data")
	}

	content, ok := ExhaustHeatContent(e.ZoneExhausts(loop), outdoorT)
	if !ok {
		return e.decide(FeatureERV, loop, false, "no outdoor air")
	}
	threshold := e.std.Constant("erv_exhaust_heat_threshold", 150)
	if content > threshold {
		e.log.Info("ERV required",
			zap.String("loop", loop.Name()),
			zap.Float64("exhaust_heat_kw", content))
		return e.decide(FeatureERV, loop, true, "exhaust heat")
	}
	return e.decide(FeatureERV, loop, false, "exhaust heat below threshold")
}

func (e *Evaluator) heatingDesignTemperature() (float64, bool) {
	if e.weather == nil {
		return 0, false
	}
	return e.weather.HeatingDesignTemperature().Get()
}

// ApplyERV adds a rotary energy recovery wheel and its pretreat setpoint
// manager to the OA system of loop. A second call reconfigures the same
// wheel. It reports false when loop has no OA system.
func (e *Evaluator) ApplyERV(m *model.Model, loop *model.AirLoop) bool {
	oa, ok := loop.OutdoorAirSystem().Get()
	if !ok {
		e.log.Warn("loop has no outdoor air system", zap.String("loop", loop.Name()))
		return false
	}

	hx := oa.HeatExchanger
	if hx == nil {
		hx = model.Add(m, model.NewHeatExchanger(loop.Name()+" ERV"))
		oa.HeatExchanger = hx
	}
	hx.HeatExchangerType = "Rotary"
	hx.Effectiveness = model.Uniform(0.5)
	hx.SupplyAirOutletTemperatureControl = true
	hx.FrostControlType = "ExhaustOnly"
	hx.ThresholdTemperature = -23.3
	hx.InitialDefrostTimeFraction = 0.167
	hx.RateOfDefrostTimeFractionIncrease = 1.44
	hx.EconomizerLockout = true

	if oa.Pretreat == nil {
		spm := model.Add(m, model.NewSetpointManager(model.KindSetpointManagerOutdoorAirPretreat, loop.Name()+" ERV Pretreat"))
		spm.MinimumSetpointTemperature = -99
		spm.MaximumSetpointTemperature = 99
		oa.Pretreat = spm
	}

	if loop.Sizing.AllOutdoorAirInCooling && loop.Sizing.AllOutdoorAirInHeating {
		oa.Controller.HeatRecoveryBypassControlType = "BypassWhenWithinEconomizerLimits"
	} else {
		oa.Controller.HeatRecoveryBypassControlType = "BypassWhenOAFlowGreaterThanMinimum"
	}
	e.log.Info("ERV applied", zap.String("loop", loop.Name()))
	return true
}

// ApplyERVs adds energy recovery to every loop of m that requires it and
// returns how many loops changed.
func (e *Evaluator) ApplyERVs(m *model.Model) int {
	var n int
	for _, loop := range m.AirLoops() {
		if e.ERVRequired(loop) && e.ApplyERV(m, loop) {
			n++
		}
	}
	return n
}
