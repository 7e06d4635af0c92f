package equipment

import (
	"math"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/criteria"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

const (
	// exhaustMotorEfficiency stands in for zone exhaust fans, which have
	// no motor efficiency input.
	exhaustMotorEfficiency = 0.7
	smallFanNominalHP      = 0.5
	smallFanImpeller       = 0.55
	defaultMotorEfficiency = 0.85
	maxNominalHP           = 9999
)

// IsSmallFan reports zone exhaust fans and fans inside fan coils or fan
// powered terminals. These are rated as a group of sub-horsepower motors.
func IsSmallFan(f *model.Fan) bool {
	if f.Kind() == model.KindFanZoneExhaust {
		return true
	}
	if z, ok := model.ContainingZoneHVAC(f).Get(); ok && z.Kind() == model.KindFourPipeFanCoil {
		return true
	}
	if u, ok := model.ContainingHVAC(f).Get(); ok && u.Kind().IsPIUTerminal() {
		return true
	}
	return false
}

func motorEfficiency(f *model.Fan) float64 {
	if f.Kind() == model.KindFanZoneExhaust {
		return exhaustMotorEfficiency
	}
	return f.MotorEfficiency
}

// FanPower is the shaft power drawn at flow, W.
func FanPower(f *model.Fan, flow float64) float64 {
	if f.FanTotalEfficiency <= 0 {
		return 0
	}
	return f.PressureRise * flow / f.FanTotalEfficiency
}

func BrakeHorsepower(f *model.Fan, flow float64) float64 {
	return FanPower(f, flow) * motorEfficiency(f) / 746
}

// ChangeMotorEfficiency sets the motor efficiency and keeps the impeller
// efficiency implied by the current total efficiency.
func ChangeMotorEfficiency(f *model.Fan, eff float64) {
	impeller := f.FanTotalEfficiency / motorEfficiency(f)
	f.FanTotalEfficiency = eff * impeller
	if f.Kind() != model.KindFanZoneExhaust {
		f.MotorEfficiency = eff
	}
}

func ChangeImpellerEfficiency(f *model.Fan, eff float64) {
	f.FanTotalEfficiency = motorEfficiency(f) * eff
}

// ApplyFanMotor sets the baseline impeller efficiency and the minimum motor
// efficiency for the nominal motor size. Variable volume fans also get a
// part load power curve.
func (a *Applier) ApplyFanMotor(f *model.Fan) bool {
	flow, ok := a.sized(f, f.MaximumFlowRate, "Maximum Flow Rate", "m3/s")
	if !ok {
		return false
	}

	small := IsSmallFan(f)
	impeller := a.std.Constant("baseline_impeller_efficiency", 0.65)
	if small {
		impeller = smallFanImpeller
	}
	ChangeImpellerEfficiency(f, impeller)

	bhp := BrakeHorsepower(f, flow)
	success := true
	if f.Kind() == model.KindFanVariableVolume {
		success = a.applyFanCurve(f, bhp)
	}

	eff, nominal, ok := a.motorEfficiency(f, bhp, small)
	if !ok {
		success = false
	}
	ChangeMotorEfficiency(f, eff)
	a.log.Info("fan motor efficiency applied",
		zap.String("object", f.Name()),
		zap.Float64("brake_hp", bhp),
		zap.Float64("nominal_hp", nominal),
		zap.Float64("motor_efficiency", eff),
		zap.Bool("small_fan", small))
	return success
}

// motorEfficiency picks the next nominal motor size above bhp and returns
// its minimum efficiency.
func (a *Applier) motorEfficiency(f *model.Fan, bhp float64, small bool) (eff, nominal float64, ok bool) {
	if bhp < 0.0001 && !small {
		return defaultMotorEfficiency, 0, true
	}

	key := criteria.Motor(a.std, f)
	nominal = smallFanNominalHP
	if !small {
		rec, found := a.std.Lookup("motors", key, bhp)
		if !found || rec.Capacity == nil {
			return defaultMotorEfficiency, bhp, false
		}
		nominal = math.Round(rec.Capacity.Max*10) / 10
		if nominal == maxNominalHP {
			a.log.Warn("motor exceeds the largest nominal size", zap.String("object", f.Name()), zap.Float64("brake_hp", bhp))
			nominal = bhp
		}
		if nominal >= 2 {
			nominal = math.Round(nominal)
		}
	}

	// the nominal size is a range boundary, so search just above it
	rec, found := a.std.Lookup("motors", key, nominal+0.01)
	if !found {
		return defaultMotorEfficiency, nominal, false
	}
	v, found := rec.Value("minimum_full_load_efficiency")
	if !found {
		a.log.Warn("reference record has no motor efficiency", zap.String("object", f.Name()), zap.String("record", rec.ID()))
		return defaultMotorEfficiency, nominal, false
	}
	return v, nominal, true
}

// applyFanCurve picks the part load curve by motor power. 0.909 undoes the
// upstream 10% oversizing and 0.7457 converts hp to kW.
func (a *Applier) applyFanCurve(f *model.Fan, bhp float64) bool {
	kw := 0.909 * 0.7457 * bhp
	variant := "AFBIFanCurve"
	switch {
	case kw >= 25:
		variant = "FCInletVanes"
	case kw >= 7.5:
		variant = "AFBIInletVanes"
	}
	curve, ok := a.namedCurve(f, "VarVolFan-"+variant+"-"+a.std.ID()+"-FPLR")
	if !ok {
		return false
	}
	f.PowerCurve = curve
	f.MinimumFlowFraction = curve.MinX
	return true
}

// ApplyPrototypeFanPressureRise sets the prototype pressure rise for
// constant volume fans and for tagged variable volume supply and return
// fans.
func (a *Applier) ApplyPrototypeFanPressureRise(f *model.Fan) bool {
	switch f.Kind() {
	case model.KindFanConstantVolume:
		f.PressureRise = a.std.Constant("fan_constant_volume_pressure_rise_value", 640)
	case model.KindFanVariableVolume:
		switch f.EffectiveDuty() {
		case model.FanDutySupply:
			f.PressureRise = a.std.Constant("supply_fan_variable_volume_pressure_rise_value", 1000)
		case model.FanDutyReturn:
			f.PressureRise = a.std.Constant("return_fan_variable_volume_pressure_rise_value", 458.33)
		}
	default:
		return false
	}
	return true
}

var (
	_ FuelFired = (*model.Boiler)(nil)
	_ FuelFired = (*model.HeatingCoil)(nil)
)
