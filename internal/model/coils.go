package model

// Fan is any of the air-moving fan kinds.
type Fan struct {
	Object

	Duty                FanDuty
	PressureRise        float64 // Pa
	FanTotalEfficiency  float64
	MotorEfficiency     float64
	MaximumFlowRate     Optional[float64] // m3/s
	MinimumFlowFraction float64
	PowerCurve          *Curve
}

func NewFan(kind Kind, name string) *Fan {
	return &Fan{
		Object:             newObject(kind, name),
		PressureRise:       500,
		FanTotalEfficiency: 0.7,
		MotorEfficiency:    0.9,
	}
}

// EffectiveDuty returns the explicit duty, falling back to the legacy
// name convention.
func (f *Fan) EffectiveDuty() FanDuty {
	if f.Duty != FanDutyUnset {
		return f.Duty
	}
	return LegacyTagsFromName(f.Name()).FanDuty
}

// DXCoil is implemented by direct-expansion heating and cooling coils.
type DXCoil interface {
	Component
	DXSubcategory() Subcategory
	CondenserKind() string
}

// HeatingStage is one stage of a multistage gas coil.
type HeatingStage struct {
	NominalCapacity     Optional[float64] // W
	GasBurnerEfficiency float64
}

// HeatingCoil covers electric, fuel-fired, hydronic and DX heating coils.
type HeatingCoil struct {
	Object

	Subcategory     Subcategory
	NominalCapacity Optional[float64] // W
	Efficiency      float64
	RatedCOP        float64

	PartLoadFractionCurve *Curve
	Stages                []*HeatingStage

	MinimumOutdoorTemperatureForCompressor Optional[float64]
	Availability                           *Schedule
}

func NewHeatingCoil(kind Kind, name string) *HeatingCoil {
	c := &HeatingCoil{Object: newObject(kind, name), Efficiency: 1}
	switch kind {
	case KindCoilHeatingGas:
		c.Efficiency = 0.8
	case KindCoilHeatingGasMultiStage:
		c.Efficiency = 0.8
		c.Stages = make([]*HeatingStage, 4)
		for i := range c.Stages {
			c.Stages[i] = &HeatingStage{GasBurnerEfficiency: 0.8}
		}
	case KindCoilHeatingDXSingleSpeed, KindCoilHeatingDXMultiSpeed, KindCoilHeatingDXVariableSpeed:
		c.RatedCOP = 3
	}
	return c
}

func (c *HeatingCoil) SetThermalEfficiency(v float64) { c.Efficiency = v }

func (c *HeatingCoil) SetEfficiencyCurve(curve *Curve) { c.PartLoadFractionCurve = curve }

func (c *HeatingCoil) DXSubcategory() Subcategory { return c.Subcategory }

func (c *HeatingCoil) CondenserKind() string { return "AirCooled" }

// CoolingCurves are the performance curves of a DX cooling coil or stage.
type CoolingCurves struct {
	CapacityFT           *Curve
	CapacityFFlow        *Curve
	EIRFT                *Curve
	EIRFFlow             *Curve
	PartLoadFractionFPLR *Curve
}

// CoolingStage is one speed of a multi-speed DX cooling coil.
type CoolingStage struct {
	GrossRatedTotalCoolingCapacity Optional[float64] // W
	RatedAirFlowRate               Optional[float64] // m3/s
	GrossRatedCOP                  float64
	Curves                         CoolingCurves
}

// CoolingCoil covers single, two and multi-speed DX cooling coils.
type CoolingCoil struct {
	Object

	Subcategory        Subcategory
	CondenserType      string
	RatedTotalCapacity Optional[float64] // W
	RatedAirFlowRate   Optional[float64] // m3/s
	RatedCOP           float64
	Curves             CoolingCurves
	Stages             []*CoolingStage
}

func NewCoolingCoil(kind Kind, name string) *CoolingCoil {
	c := &CoolingCoil{
		Object:        newObject(kind, name),
		CondenserType: "AirCooled",
		RatedCOP:      3,
	}
	if kind == KindCoilCoolingDXMultiSpeed {
		c.Stages = make([]*CoolingStage, 4)
		for i := range c.Stages {
			c.Stages[i] = &CoolingStage{GrossRatedCOP: 3}
		}
	}
	return c
}

func (c *CoolingCoil) DXSubcategory() Subcategory { return c.Subcategory }

func (c *CoolingCoil) CondenserKind() string {
	if c.CondenserType == "" {
		return "AirCooled"
	}
	return c.CondenserType
}
