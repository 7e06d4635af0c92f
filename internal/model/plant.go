package model

type Boiler struct {
	Object

	Role                         EquipmentRole
	FuelType                     string
	NominalCapacity              Optional[float64] // W
	PlantCapacity                Optional[float64] // W, before the lead/lag split
	NominalThermalEfficiency     float64
	EfficiencyCurve              *Curve
	EfficiencyCurveTemperature   string
	DesignWaterOutletTemperature float64
	FlowMode                     string
	MinimumPartLoadRatio         float64
	MaximumPartLoadRatio         float64
	OptimumPartLoadRatio         float64
}

func NewBoiler(name, fuelType string) *Boiler {
	return &Boiler{
		Object:                       newObject(KindBoilerHotWater, name),
		FuelType:                     fuelType,
		NominalThermalEfficiency:     0.8,
		EfficiencyCurveTemperature:   "LeavingBoiler",
		DesignWaterOutletTemperature: 82,
		FlowMode:                     "ConstantFlow",
		MaximumPartLoadRatio:         1.2,
		OptimumPartLoadRatio:         1,
	}
}

func (b *Boiler) SetThermalEfficiency(v float64) { b.NominalThermalEfficiency = v }

func (b *Boiler) SetEfficiencyCurve(c *Curve) { b.EfficiencyCurve = c }

// EffectiveRole falls back to the legacy name convention when the role is
// not tagged.
func (b *Boiler) EffectiveRole() EquipmentRole {
	if b.Role != RoleUnset {
		return b.Role
	}
	return LegacyTagsFromName(b.Name()).Role
}

type Chiller struct {
	Object

	Role           EquipmentRole
	CondenserType  string // WaterCooled or AirCooled
	CondenserStyle string // WithCondenser or WithoutCondenser, air cooled only
	CompressorType string

	ReferenceCapacity Optional[float64] // W
	PlantCapacity     Optional[float64] // W, before the lead/lag split
	ReferenceCOP      float64

	CapacityFT *Curve
	EIRFT      *Curve
	EIRFPLR    *Curve

	ReferenceLeavingChilledWaterTemperature float64
	FlowMode                                string
	MinimumPartLoadRatio                    float64
	MinimumUnloadingRatio                   float64
}

func NewChiller(name, condenserType string) *Chiller {
	return &Chiller{
		Object:                                  newObject(KindChillerElectricEIR, name),
		CondenserType:                           condenserType,
		ReferenceCOP:                            5.5,
		ReferenceLeavingChilledWaterTemperature: 7,
		FlowMode:                                "NotModulated",
		MinimumPartLoadRatio:                    0.1,
		MinimumUnloadingRatio:                   0.2,
	}
}

func (c *Chiller) EffectiveRole() EquipmentRole {
	if c.Role != RoleUnset {
		return c.Role
	}
	return LegacyTagsFromName(c.Name()).Role
}

// EffectiveCondenserStyle and EffectiveCompressorType fall back to the
// legacy naming convention when the tags are not set.
func (c *Chiller) EffectiveCondenserStyle() string {
	if c.CondenserStyle != "" {
		return c.CondenserStyle
	}
	if c.CondenserType != "AirCooled" {
		return ""
	}
	return LegacyTagsFromName(c.Name()).ChillerCondenser
}

func (c *Chiller) EffectiveCompressorType() string {
	if c.CompressorType != "" {
		return c.CompressorType
	}
	if c.CondenserType != "WaterCooled" {
		return ""
	}
	return LegacyTagsFromName(c.Name()).ChillerCompressor
}

type CoolingTower struct {
	Object

	NumberOfCells               int
	FanPowerAtDesignAirFlowRate Optional[float64] // W
	DesignInletAirWetBulb       float64
	DesignInletAirDryBulb       float64
	DesignApproach              float64
	DesignRange                 float64
	PerformanceInputMethod      string
}

func NewCoolingTower(name string) *CoolingTower {
	return &CoolingTower{
		Object:                 newObject(KindCoolingTowerSingleSpeed, name),
		NumberOfCells:          1,
		PerformanceInputMethod: "UFactorTimesAreaAndDesignWaterFlowRate",
	}
}

type Pump struct {
	Object

	RatedPumpHead   float64 // Pa
	MotorEfficiency float64
}

// NewPump returns a variable speed pump when variable is true.
func NewPump(name string, variable bool) *Pump {
	kind := KindPumpConstantSpeed
	if variable {
		kind = KindPumpVariableSpeed
	}
	return &Pump{Object: newObject(kind, name), RatedPumpHead: 179352, MotorEfficiency: 0.9}
}

type Pipe struct {
	Object
}

func NewPipe(name string) *Pipe {
	return &Pipe{Object: newObject(KindPipeAdiabatic, name)}
}
