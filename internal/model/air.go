package model

// ControllerOutdoorAir holds the economizer and ventilation controls of an
// outdoor-air system.
type ControllerOutdoorAir struct {
	Name                          string
	MinimumOutdoorAirFlowRate     Optional[float64] // m3/s
	MaximumOutdoorAirFlowRate     Optional[float64] // m3/s
	EconomizerControlType         string
	LockoutType                   string
	HeatRecoveryBypassControlType string
	DemandControlledVentilation   bool
}

type OutdoorAirSystem struct {
	Object

	Controller    *ControllerOutdoorAir
	HeatExchanger *HeatExchanger
	Pretreat      *SetpointManager
}

func NewOutdoorAirSystem(name string) *OutdoorAirSystem {
	return &OutdoorAirSystem{
		Object: newObject(KindOutdoorAirSystem, name),
		Controller: &ControllerOutdoorAir{
			Name:                          name + " Controller",
			EconomizerControlType:         "NoEconomizer",
			LockoutType:                   "NoLockout",
			HeatRecoveryBypassControlType: "BypassWhenOAFlowGreaterThanMinimum",
		},
	}
}

// Effectiveness lists the sensible and latent effectiveness of an air to
// air heat exchanger at 100% and 75% airflow.
type Effectiveness struct {
	Sensible100Heating float64
	Latent100Heating   float64
	Sensible75Heating  float64
	Latent75Heating    float64
	Sensible100Cooling float64
	Latent100Cooling   float64
	Sensible75Cooling  float64
	Latent75Cooling    float64
}

// Uniform returns an Effectiveness with every field set to v.
func Uniform(v float64) Effectiveness {
	return Effectiveness{v, v, v, v, v, v, v, v}
}

type HeatExchanger struct {
	Object

	Effectiveness                     Effectiveness
	HeatExchangerType                 string
	SupplyAirOutletTemperatureControl bool
	FrostControlType                  string
	ThresholdTemperature              float64
	InitialDefrostTimeFraction        float64
	RateOfDefrostTimeFractionIncrease float64
	EconomizerLockout                 bool
}

func NewHeatExchanger(name string) *HeatExchanger {
	return &HeatExchanger{
		Object:            newObject(KindHeatExchangerAirToAir, name),
		Effectiveness:     Uniform(0.7),
		HeatExchangerType: "Plate",
		FrostControlType:  "None",
		EconomizerLockout: true,
	}
}

type SetpointManager struct {
	Object

	ControlVariable string
	ControlZone     *ThermalZone
	Schedule        *Schedule

	MinimumSupplyAirTemperature float64
	MaximumSupplyAirTemperature float64

	SetpointAtOutdoorLowTemperature  float64
	OutdoorLowTemperature            float64
	SetpointAtOutdoorHighTemperature float64
	OutdoorHighTemperature           float64

	MinimumSetpointTemperature float64
	MaximumSetpointTemperature float64
}

func NewSetpointManager(kind Kind, name string) *SetpointManager {
	return &SetpointManager{Object: newObject(kind, name), ControlVariable: "Temperature"}
}

// AirTerminal is a single duct terminal unit serving one zone.
type AirTerminal struct {
	Object

	Fan                             *Fan
	ReheatCoil                      *HeatingCoil
	MaximumAirFlowRate              Optional[float64]
	DamperHeatingAction             string
	MaximumFlowFractionDuringReheat Optional[float64]
	ZoneMinimumAirFlowInputMethod   string
	Availability                    *Schedule
}

func NewAirTerminal(kind Kind, name string, fan *Fan, reheat *HeatingCoil) *AirTerminal {
	t := &AirTerminal{Object: newObject(kind, name), Fan: fan, ReheatCoil: reheat}
	if kind == KindAirTerminalVAVReheat {
		t.DamperHeatingAction = "Single Maximum"
		t.ZoneMinimumAirFlowInputMethod = "Constant"
	}
	if fan != nil {
		setContainer(t, fan)
	}
	if reheat != nil {
		setContainer(t, reheat)
	}
	return t
}
