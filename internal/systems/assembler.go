// Package systems assembles standard HVAC system templates into a model:
// packaged single zone air loops, hydronic plant loops and zone equipment.
package systems

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// Assembler adds system templates to models configured against one
// standard.
type Assembler struct {
	std    *standards.Standard
	log    *zap.Logger
	params SystemParameters
}

type Option func(*Assembler)

func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.log = l
		}
	}
}

// WithParameters replaces the system 3/8 parameter record.
func WithParameters(p SystemParameters) Option {
	return func(a *Assembler) { a.params = p }
}

func New(std *standards.Standard, opts ...Option) *Assembler {
	a := &Assembler{std: std, log: std.Logger(), params: Sys3Parameters()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// SingleZoneSystem describes a packaged single zone rooftop system. With
// AutoZoner set, one loop serves every zone. Otherwise each zone gets its
// own loop.
type SingleZoneSystem struct {
	Zones           []*model.ThermalZone
	HeatingCoilType HeatingCoilType
	BaseboardType   BaseboardType
	HotWaterLoop    *model.PlantLoop
	AutoZoner       bool
}

func (s SingleZoneSystem) Validate() error {
	if !s.HeatingCoilType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidHeatingCoilType, s.HeatingCoilType)
	}
	if !s.BaseboardType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidBaseboardType, s.BaseboardType)
	}
	if len(s.Zones) == 0 {
		return ErrNoZones
	}
	if s.BaseboardType == BaseboardHotWater && s.HotWaterLoop == nil {
		return ErrMissingHotWaterLoop
	}
	return nil
}

// groups splits the zones into the sets served by one loop each.
func (s SingleZoneSystem) groups() [][]*model.ThermalZone {
	if s.AutoZoner {
		return [][]*model.ThermalZone{s.Zones}
	}
	out := make([][]*model.ThermalZone, 0, len(s.Zones))
	for _, z := range s.Zones {
		out = append(out, []*model.ThermalZone{z})
	}
	return out
}

// ControlZone returns the zone with the largest multiplied floor area. Ties
// go to the first zone.
func ControlZone(zones []*model.ThermalZone) *model.ThermalZone {
	var best *model.ThermalZone
	for _, z := range zones {
		if best == nil || z.MultipliedFloorArea() > best.MultipliedFloorArea() {
			best = z
		}
	}
	return best
}

// AddSys3And8SingleSpeed adds NECB systems 3 and 8: a packaged single zone
// unit with a single speed DX cooling coil. The system is validated before
// the model is touched.
func (a *Assembler) AddSys3And8SingleSpeed(m *model.Model, sys SingleZoneSystem) ([]*model.AirLoop, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}

	var loops []*model.AirLoop
	for _, zones := range sys.groups() {
		as := &assembly{zones: zones, control: ControlZone(zones)}
		steps := []func() error{
			func() error { return a.create(m, as) },
			func() error { return a.populate(m, as, sys.HeatingCoilType) },
			func() error { return a.control(m, as, sys.HeatingCoilType == HeatingCoilDX) },
			func() error { return a.wireZones(m, as, sys.BaseboardType, sys.HotWaterLoop) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return loops, err
			}
		}
		a.log.Info("air loop assembled",
			zap.String("loop", as.loop.Name()),
			zap.String("heating", sys.HeatingCoilType.String()),
			zap.String("baseboards", sys.BaseboardType.String()),
			zap.Int("zones", len(zones)))
		loops = append(loops, as.loop)
	}
	return loops, nil
}

func (a *Assembler) create(m *model.Model, as *assembly) error {
	loop := m.AddAirLoop(a.params.Name + " " + as.control.Name())
	a.params.ApplyLoopSizing(&loop.Sizing)
	as.loop = loop
	return as.advance(stageCreated)
}

// populate fills the supply side. Components are added at the inlet, so
// the resulting flow order is OA system, cooling, heating, fan.
func (a *Assembler) populate(m *model.Model, as *assembly, heating HeatingCoilType) error {
	loop := as.loop
	name := loop.Name()

	clg := model.Add(m, model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, name+" 1spd DX Clg Coil"))

	if heating == HeatingCoilDX {
		fan := model.Add(m, model.NewFan(model.KindFanOnOff, name+" Fan"))
		htg := model.Add(m, model.NewHeatingCoil(model.KindCoilHeatingDXSingleSpeed, name+" 1spd DX Htg Coil"))
		if v := a.params.MinimumOutdoorTemperatureForCompressor; v != nil {
			htg.MinimumOutdoorTemperatureForCompressor = model.Some(*v)
		}
		supp := model.Add(m, model.NewHeatingCoil(model.KindCoilHeatingElectric, name+" Supp Htg Coil"))
		hp := model.Add(m, model.NewUnitaryHeatPump(as.control.Name()+" ASHP", false, fan, htg, clg, supp))
		hp.ControllingZone = as.control
		loop.AddToSupplyInlet(hp)
	} else {
		fan := model.Add(m, model.NewFan(model.KindFanConstantVolume, name+" Fan"))
		kind := model.KindCoilHeatingElectric
		if heating == HeatingCoilGas {
			kind = model.KindCoilHeatingGas
		}
		htg := model.Add(m, model.NewHeatingCoil(kind, name+" Htg Coil"))
		loop.AddToSupplyInlet(fan)
		loop.AddToSupplyInlet(htg)
		loop.AddToSupplyInlet(clg)
	}

	oa := model.Add(m, model.NewOutdoorAirSystem(name+" OA System"))
	loop.AddToSupplyInlet(oa)
	return as.advance(stagePopulated)
}

func (a *Assembler) control(m *model.Model, as *assembly, dx bool) error {
	spm := model.Add(m, model.NewSetpointManager(model.KindSetpointManagerSingleZoneReheat, as.loop.Name()+" Setpoint Manager"))
	spm.ControlZone = as.control
	spm.MinimumSupplyAirTemperature = valueOr(a.params.ReheatMinimumSupplyAirTemperature, 13)
	spm.MaximumSupplyAirTemperature = valueOr(a.params.ReheatMaximumSupplyAirTemperature, 43)
	as.loop.AddSetpointManagerToSupplyOutlet(spm)

	for _, z := range as.zones {
		a.params.ApplyZoneSizing(&z.Sizing, dx)
	}
	return as.advance(stageControlled)
}

func (a *Assembler) wireZones(m *model.Model, as *assembly, baseboards BaseboardType, hw *model.PlantLoop) error {
	for _, z := range as.zones {
		diffuser := model.Add(m, model.NewAirTerminal(model.KindAirTerminalUncontrolled, z.Name()+" Diffuser", nil, nil))
		as.loop.AddBranchForZone(z, diffuser)
		if err := AddZoneBaseboards(m, z, baseboards, hw); err != nil {
			return err
		}
	}
	return as.advance(stageZoneWired)
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
