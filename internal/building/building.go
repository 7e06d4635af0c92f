// Package building turns a declarative building description into a model
// ready for configuration.
package building

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Agrid-Dev/hvacstandards/internal/envelope"
	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
	"github.com/Agrid-Dev/hvacstandards/internal/systems"
)

var (
	ErrNoName           = errors.New("building name is required")
	ErrInvalidVertices  = errors.New("sub-surface needs at least 3 vertices of 3 coordinates")
	ErrInvalidReduction = errors.New("fenestration reduction must be in [0, 1)")
)

// SubSurface is a door, window or skylight of a zone. Boundary defaults
// to Outdoors.
type SubSurface struct {
	Name     string      `yaml:"name" json:"name"`
	Type     string      `yaml:"type" json:"type"`
	Boundary string      `yaml:"boundary" json:"boundary"`
	Vertices [][]float64 `yaml:"vertices" json:"vertices"`
}

type Zone struct {
	Name       string  `yaml:"name" json:"name"`
	FloorArea  float64 `yaml:"floor_area" json:"floor_area"`
	Multiplier int     `yaml:"multiplier" json:"multiplier"`
	// m3/s per m2 of floor
	OutdoorAirPerArea float64 `yaml:"outdoor_air_per_area" json:"outdoor_air_per_area"`
	// winter design day heating setpoint, degC
	HeatingSetpoint *float64     `yaml:"heating_setpoint" json:"heating_setpoint"`
	SubSurfaces     []SubSurface `yaml:"sub_surfaces" json:"sub_surfaces"`
}

type System struct {
	HeatingCoil string `yaml:"heating_coil" json:"heating_coil"`
	Baseboards  string `yaml:"baseboards" json:"baseboards"`
	AutoZoner   bool   `yaml:"auto_zoner" json:"auto_zoner"`
	PTAC        bool   `yaml:"ptac" json:"ptac"`
}

type Plant struct {
	BoilerFuel        string `yaml:"boiler_fuel" json:"boiler_fuel"`
	ChillerCompressor string `yaml:"chiller_compressor" json:"chiller_compressor"`
}

type Envelope struct {
	// baseline or advanced, baseline when empty
	Infiltration string `yaml:"infiltration" json:"infiltration"`
	// fraction of the window, glass door and skylight area to remove
	FenestrationReduction float64 `yaml:"fenestration_reduction" json:"fenestration_reduction"`
}

// Description is the document read by Decode.
type Description struct {
	Name                     string   `yaml:"name" json:"name"`
	HeatingDesignTemperature *float64 `yaml:"heating_design_temperature" json:"heating_design_temperature"`
	Zones                    []Zone   `yaml:"zones" json:"zones"`
	System                   System   `yaml:"system" json:"system"`
	Plant                    Plant    `yaml:"plant" json:"plant"`
	Envelope                 Envelope `yaml:"envelope" json:"envelope"`
	// object name -> field -> value, from a previous sizing run
	Sizing map[string]map[string]float64 `yaml:"sizing" json:"sizing"`
}

// Decode reads a YAML description. Unknown fields are rejected.
func Decode(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode building: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Description) Validate() error {
	if d.Name == "" {
		return ErrNoName
	}
	if r := d.Envelope.FenestrationReduction; r < 0 || r >= 1 {
		return fmt.Errorf("%w: %g", ErrInvalidReduction, r)
	}
	return nil
}

func (e Envelope) infiltrationCase() (envelope.InfiltrationCase, error) {
	if e.Infiltration == "" {
		return envelope.InfiltrationBaseline, nil
	}
	return envelope.ParseInfiltrationCase(e.Infiltration)
}

func (s SubSurface) build() (envelope.SubSurface, error) {
	t, err := envelope.ParseSubSurfaceType(s.Type)
	if err != nil {
		return envelope.SubSurface{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	if len(s.Vertices) < 3 {
		return envelope.SubSurface{}, fmt.Errorf("%s: %w", s.Name, ErrInvalidVertices)
	}
	vs := make([]envelope.Point, 0, len(s.Vertices))
	for _, v := range s.Vertices {
		if len(v) != 3 {
			return envelope.SubSurface{}, fmt.Errorf("%s: %w", s.Name, ErrInvalidVertices)
		}
		vs = append(vs, envelope.Point{X: v[0], Y: v[1], Z: v[2]})
	}
	boundary := s.Boundary
	if boundary == "" {
		boundary = "Outdoors"
	}
	return envelope.SubSurface{Name: s.Name, Type: t, OutsideBoundaryCondition: boundary, Vertices: vs}, nil
}

// ZoneSubSurface ties a sub-surface to the zone it belongs to.
type ZoneSubSurface struct {
	Zone       *model.ThermalZone
	SubSurface *envelope.SubSurface
}

// Building is an assembled model with its sizing data and site weather.
type Building struct {
	Model   *model.Model
	Loops   []*model.AirLoop
	Results *Results
	Weather Weather

	SubSurfaces           []ZoneSubSurface
	Infiltration          envelope.InfiltrationCase
	FenestrationReduction float64
}

// Build assembles the model described by d. Configuration errors are
// returned before any air loop is created.
func Build(std *standards.Standard, d *Description, log *zap.Logger) (*Building, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = std.Logger()
	}
	heating, err := systems.ParseHeatingCoilType(d.System.HeatingCoil)
	if err != nil {
		return nil, err
	}
	baseboards, err := systems.ParseBaseboardType(d.System.Baseboards)
	if err != nil {
		return nil, err
	}
	infiltration, err := d.Envelope.infiltrationCase()
	if err != nil {
		return nil, err
	}

	m := model.New(d.Name, model.WithCurveSource(std.Store()))
	zones := make([]*model.ThermalZone, 0, len(d.Zones))
	var subs []ZoneSubSurface
	for _, zd := range d.Zones {
		z := addZone(m, zd)
		zones = append(zones, z)
		for _, sd := range zd.SubSurfaces {
			sub, err := sd.build()
			if err != nil {
				return nil, fmt.Errorf("zone %s: %w", zd.Name, err)
			}
			subs = append(subs, ZoneSubSurface{Zone: z, SubSurface: &sub})
		}
	}

	var hw *model.PlantLoop
	if d.Plant.BoilerFuel != "" {
		hw = m.AddPlantLoop("Hot Water Loop")
		systems.SetupHotWaterLoop(m, hw, d.Plant.BoilerFuel)
	}
	if d.Plant.ChillerCompressor != "" {
		chw := m.AddPlantLoop("Chilled Water Loop")
		chillers := systems.SetupChilledWaterLoop(m, chw, d.Plant.ChillerCompressor)
		systems.SetupCondenserWaterLoop(m, m.AddPlantLoop("Condenser Water Loop"), chillers[0], chillers[1])
	}

	a := systems.New(std, systems.WithLogger(log))
	loops, err := a.AddSys3And8SingleSpeed(m, systems.SingleZoneSystem{
		Zones:           zones,
		HeatingCoilType: heating,
		BaseboardType:   baseboards,
		HotWaterLoop:    hw,
		AutoZoner:       d.System.AutoZoner,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	if d.System.PTAC {
		a.AddPTACDXCooling(m, zones, true)
	}

	log.Info("building assembled",
		zap.String("model", d.Name),
		zap.Int("zones", len(zones)),
		zap.Int("air_loops", len(loops)),
		zap.Int("plant_loops", len(m.PlantLoops())),
		zap.Int("sub_surfaces", len(subs)))

	return &Building{
		Model:                 m,
		Loops:                 loops,
		Results:               NewResults(d.Sizing),
		Weather:               Weather{temperature: d.HeatingDesignTemperature},
		SubSurfaces:           subs,
		Infiltration:          infiltration,
		FenestrationReduction: d.Envelope.FenestrationReduction,
	}, nil
}

func addZone(m *model.Model, zd Zone) *model.ThermalZone {
	space := &model.Space{Name: zd.Name + " Space", FloorArea: zd.FloorArea}
	if zd.OutdoorAirPerArea > 0 {
		space.OutdoorAir = &model.DesignSpecificationOutdoorAir{
			Name:                       zd.Name + " OA",
			OutdoorAirFlowPerFloorArea: zd.OutdoorAirPerArea,
		}
	}
	z := m.AddThermalZone(model.NewThermalZone(zd.Name, space))
	if zd.Multiplier > 0 {
		z.Multiplier = zd.Multiplier
	}
	if zd.HeatingSetpoint != nil {
		z.Thermostat = &model.Thermostat{
			Name: zd.Name + " Thermostat",
			Heating: &model.Schedule{
				Name:            zd.Name + " Heating Setpoint",
				Default:         *zd.HeatingSetpoint,
				WinterDesignDay: []float64{*zd.HeatingSetpoint},
			},
		}
	}
	return z
}
