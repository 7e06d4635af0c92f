// Package equipment applies reference efficiencies and performance curves
// to plant, coil and fan objects.
package equipment

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/ports"
	"github.com/Agrid-Dev/hvacstandards/internal/report"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// SizingObserver is told whether a requested sizing run succeeded.
type SizingObserver interface {
	ObserveSizingRun(ok bool)
}

// Applier configures equipment in one model against one standard.
type Applier struct {
	std     *standards.Standard
	model   *model.Model
	results ports.SizingResults
	log     *zap.Logger
	sizing  SizingObserver
}

type Option func(*Applier)

func WithLogger(l *zap.Logger) Option {
	return func(a *Applier) {
		if l != nil {
			a.log = l
		}
	}
}

func WithSizingObserver(o SizingObserver) Option {
	return func(a *Applier) { a.sizing = o }
}

// New returns an Applier. results may be nil when every capacity is
// hard-sized.
func New(std *standards.Standard, m *model.Model, results ports.SizingResults, opts ...Option) *Applier {
	a := &Applier{std: std, model: m, results: results, log: std.Logger()}
	for _, o := range opts {
		o(a)
	}
	if m.Curves == nil {
		m.Curves = model.NewCurveRegistry(std.Store())
	}
	return a
}

// Apply dispatches c to the rule set for its kind.
func (a *Applier) Apply(c model.Component) (bool, error) {
	switch v := c.(type) {
	case *model.Boiler:
		return a.ApplyBoiler(v), nil
	case *model.Chiller:
		return a.ApplyChiller(v, towerFor(v)), nil
	case *model.CoolingCoil:
		return a.ApplyDXCoil(v), nil
	case *model.Fan:
		return a.ApplyFanMotor(v), nil
	case *model.HeatingCoil:
		switch v.Kind() {
		case model.KindCoilHeatingGas:
			return a.ApplyGasCoil(v), nil
		case model.KindCoilHeatingGasMultiStage:
			return a.ApplyGasMultiStage(v), nil
		case model.KindCoilHeatingDXSingleSpeed:
			return a.ApplyDXHeatingCoil(v), nil
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnsupportedKind, c.Kind())
}

// Size requests one sizing run from runner when some component of m has
// no capacity. It reports whether autosized values can be relied on.
func (a *Applier) Size(ctx context.Context, m *model.Model, runner ports.SizingRunner) bool {
	if !a.needsSizing(m.Components()) {
		return true
	}
	if runner == nil {
		return false
	}
	ok := runner.RunSizing(ctx, m)
	if a.sizing != nil {
		a.sizing.ObserveSizingRun(ok)
	}
	if !ok {
		a.log.Warn("sizing run failed, autosized values stay unavailable", zap.String("model", m.Name))
	}
	return ok
}

// ApplyAll configures every component of m. When some component has no
// capacity and runner is not nil, one sizing run is requested first. Fans
// get the prototype pressure rise before their motors are sized.
func (a *Applier) ApplyAll(ctx context.Context, m *model.Model, runner ports.SizingRunner) *report.Report {
	rep := report.New(a.std.ID(), a.std.Store().Version(), m.Name, a.std.Now())

	if runner != nil {
		a.Size(ctx, m, runner)
	}
	for _, f := range model.ComponentsOf[*model.Fan](m) {
		a.ApplyPrototypeFanPressureRise(f)
	}

	for _, c := range m.Components() {
		name, kind := c.Name(), c.Kind().String()
		ok, err := a.Apply(c)
		switch {
		case err != nil:
			rep.Add(name, kind, report.OutcomeSkipped)
		case ok:
			rep.Add(c.Name(), kind, report.OutcomeApplied)
		default:
			rep.Add(c.Name(), kind, report.OutcomePartial, "see log for "+name)
		}
	}
	return rep.Finalize()
}

func (a *Applier) needsSizing(comps []model.Component) bool {
	for _, c := range comps {
		var hard model.Optional[float64]
		switch v := c.(type) {
		case *model.Boiler:
			hard = v.NominalCapacity
		case *model.Chiller:
			hard = v.ReferenceCapacity
		case *model.CoolingCoil:
			hard = v.RatedTotalCapacity
			if len(v.Stages) > 0 {
				hard = v.Stages[len(v.Stages)-1].GrossRatedTotalCoolingCapacity
			}
		case *model.Fan:
			hard = v.MaximumFlowRate
		default:
			continue
		}
		if !hard.IsSet() {
			return true
		}
	}
	return false
}

// sized resolves a hard-sized value, then the autosized one. Autosized
// values are keyed by the base name so renamed objects still resolve.
func (a *Applier) sized(c model.Component, hard model.Optional[float64], field, units string) (float64, bool) {
	if v, ok := hard.Get(); ok {
		return v, true
	}
	auto := model.None[float64]()
	if a.results != nil {
		auto = a.results.AutosizedValue(c.Kind().String(), c.BaseName(), field, units)
	}
	return standards.UnwrapOrLog(a.log, auto, "sizing data not available",
		zap.String("object", c.Name()),
		zap.String("field", field))
}

// curve instantiates the curve the record names for role.
func (a *Applier) curve(c model.Component, rec *standards.Record, role string) (*model.Curve, bool) {
	name, ok := rec.Curve(role)
	if !ok {
		a.log.Warn("reference record names no curve",
			zap.String("object", c.Name()),
			zap.String("record", rec.ID()),
			zap.String("field", role))
		return nil, false
	}
	return a.namedCurve(c, name)
}

func (a *Applier) namedCurve(c model.Component, name string) (*model.Curve, bool) {
	return standards.UnwrapOrLog(a.log, a.model.Curves.GetOrCreate(name), "curve not found",
		zap.String("object", c.Name()),
		zap.String("curve", name))
}

func (a *Applier) lookup(table string, key standards.SearchKey, sizing float64) (*standards.Record, bool) {
	return a.std.Lookup(table, key, sizing, standards.AsOf(a.std.Now()))
}

// rating formats an efficiency for a rated name.
func rating(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func ratedName(base string, capacityW float64, value float64, label string) string {
	return fmt.Sprintf("%s %.0fkBtu/hr %s%s", base, math.Round(standards.WToKBtuPerHour(capacityW)), rating(value), label)
}
