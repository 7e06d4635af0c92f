package model

// SizingSystem holds the air loop sizing knobs.
type SizingSystem struct {
	TypeOfLoadToSizeOn                         string
	CentralCoolingDesignSupplyAirTemperature   float64
	CentralHeatingDesignSupplyAirTemperature   float64
	MinimumSystemAirFlowRatio                  float64
	PreheatDesignTemperature                   float64
	PreheatDesignHumidityRatio                 float64
	PrecoolDesignTemperature                   float64
	PrecoolDesignHumidityRatio                 float64
	SizingOption                               string
	AllOutdoorAirInCooling                     bool
	AllOutdoorAirInHeating                     bool
	CentralCoolingDesignSupplyAirHumidityRatio float64
	CentralHeatingDesignSupplyAirHumidityRatio float64
	CoolingDesignAirFlowMethod                 string
	HeatingDesignAirFlowMethod                 string
	SystemOutdoorAirMethod                     string
}

func defaultSizingSystem() SizingSystem {
	return SizingSystem{
		TypeOfLoadToSizeOn:                         "Sensible",
		CentralCoolingDesignSupplyAirTemperature:   12.8,
		CentralHeatingDesignSupplyAirTemperature:   16.7,
		MinimumSystemAirFlowRatio:                  0.3,
		PreheatDesignTemperature:                   7,
		PreheatDesignHumidityRatio:                 0.008,
		PrecoolDesignTemperature:                   12.8,
		PrecoolDesignHumidityRatio:                 0.008,
		SizingOption:                               "NonCoincident",
		CentralCoolingDesignSupplyAirHumidityRatio: 0.0085,
		CentralHeatingDesignSupplyAirHumidityRatio: 0.008,
		CoolingDesignAirFlowMethod:                 "DesignDay",
		HeatingDesignAirFlowMethod:                 "DesignDay",
		SystemOutdoorAirMethod:                     "ZoneSum",
	}
}

// AirLoop is an air distribution loop. Supply components are held in flow
// order, from the supply inlet to the supply outlet.
type AirLoop struct {
	name string

	Sizing                  SizingSystem
	DesignSupplyAirFlowRate Optional[float64] // m3/s
	Availability            *Schedule

	supply    []Component
	managers  []*SetpointManager
	zones     []*ThermalZone
	terminals []Component
}

func (l *AirLoop) Name() string        { return l.name }
func (l *AirLoop) SetName(name string) { l.name = name }

// AddToSupplyInlet inserts c at the supply inlet, upstream of every
// component already on the loop.
func (l *AirLoop) AddToSupplyInlet(c Component) {
	c.object().airLoop = l
	l.supply = append([]Component{c}, l.supply...)
}

func (l *AirLoop) SupplyComponents() []Component {
	return append([]Component(nil), l.supply...)
}

func (l *AirLoop) AddSetpointManagerToSupplyOutlet(spm *SetpointManager) {
	spm.airLoop = l
	l.managers = append(l.managers, spm)
}

func (l *AirLoop) SupplyOutletSetpointManagers() []*SetpointManager {
	return append([]*SetpointManager(nil), l.managers...)
}

// AddBranchForZone connects z to the loop through terminal.
func (l *AirLoop) AddBranchForZone(z *ThermalZone, terminal Component) {
	if terminal != nil {
		o := terminal.object()
		o.airLoop = l
		o.zone = z
		l.terminals = append(l.terminals, terminal)
	}
	l.zones = append(l.zones, z)
	z.airLoops = append(z.airLoops, l)
}

func (l *AirLoop) ThermalZones() []*ThermalZone {
	return append([]*ThermalZone(nil), l.zones...)
}

func (l *AirLoop) Terminals() []Component {
	return append([]Component(nil), l.terminals...)
}

// OutdoorAirSystem returns the loop's OA system, if it has one.
func (l *AirLoop) OutdoorAirSystem() Optional[*OutdoorAirSystem] {
	for _, c := range l.supply {
		if oa, ok := c.(*OutdoorAirSystem); ok {
			return Some(oa)
		}
	}
	return None[*OutdoorAirSystem]()
}

// SizingPlant holds the plant loop sizing knobs.
type SizingPlant struct {
	LoopType                        string
	DesignLoopExitTemperature       float64
	LoopDesignTemperatureDifference float64
}

// PlantLoop is a hydronic loop with a supply side (inlet, parallel
// branches, outlet) and a demand side of parallel branches.
type PlantLoop struct {
	name string

	Sizing                 SizingPlant
	FluidType              string
	MaximumLoopTemperature float64
	MinimumLoopTemperature float64

	supplyInlet  []Component
	supplyBranch []Component
	supplyOutlet []Component
	demand       []Component
	managers     []*SetpointManager
}

func (p *PlantLoop) Name() string        { return p.name }
func (p *PlantLoop) SetName(name string) { p.name = name }

func (p *PlantLoop) AddToSupplyInlet(c Component) {
	c.object().plantLoop = p
	p.supplyInlet = append(p.supplyInlet, c)
}

func (p *PlantLoop) AddSupplyBranch(c Component) {
	c.object().plantLoop = p
	p.supplyBranch = append(p.supplyBranch, c)
}

func (p *PlantLoop) AddToSupplyOutlet(c Component) {
	c.object().plantLoop = p
	p.supplyOutlet = append(p.supplyOutlet, c)
}

func (p *PlantLoop) AddDemandBranch(c Component) {
	c.object().demandLoop = p
	p.demand = append(p.demand, c)
}

func (p *PlantLoop) AddSetpointManagerToSupplyOutlet(spm *SetpointManager) {
	spm.plantLoop = p
	p.managers = append(p.managers, spm)
}

// SupplyComponents lists the inlet, branch and outlet components in order.
func (p *PlantLoop) SupplyComponents() []Component {
	out := make([]Component, 0, len(p.supplyInlet)+len(p.supplyBranch)+len(p.supplyOutlet))
	out = append(out, p.supplyInlet...)
	out = append(out, p.supplyBranch...)
	return append(out, p.supplyOutlet...)
}

func (p *PlantLoop) SupplyBranches() []Component {
	return append([]Component(nil), p.supplyBranch...)
}

func (p *PlantLoop) DemandComponents() []Component {
	return append([]Component(nil), p.demand...)
}

func (p *PlantLoop) SupplyOutletSetpointManagers() []*SetpointManager {
	return append([]*SetpointManager(nil), p.managers...)
}
