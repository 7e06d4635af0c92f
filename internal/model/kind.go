package model

// Kind discriminates component types. It is set once at construction and
// never inferred from names.
type Kind int

const (
	KindUnknown Kind = iota

	KindFanConstantVolume
	KindFanVariableVolume
	KindFanOnOff
	KindFanZoneExhaust

	KindCoilHeatingElectric
	KindCoilHeatingGas
	KindCoilHeatingGasMultiStage
	KindCoilHeatingWater
	KindCoilHeatingWaterBaseboard
	KindCoilHeatingDXSingleSpeed
	KindCoilHeatingDXMultiSpeed
	KindCoilHeatingDXVariableSpeed
	KindCoilHeatingDesuperheater
	KindCoilHeatingWaterToAirHeatPump

	KindCoilCoolingDXSingleSpeed
	KindCoilCoolingDXTwoSpeed
	KindCoilCoolingDXMultiSpeed

	KindBoilerHotWater
	KindChillerElectricEIR
	KindCoolingTowerSingleSpeed
	KindPumpConstantSpeed
	KindPumpVariableSpeed
	KindPipeAdiabatic

	KindOutdoorAirSystem
	KindHeatExchangerAirToAir

	KindUnitaryHeatPumpAirToAir
	KindUnitaryHeatPumpAirToAirMultiSpeed
	KindUnitarySystem

	KindPTAC
	KindPTHP
	KindFourPipeFanCoil
	KindBaseboardElectric
	KindBaseboardWater

	KindAirTerminalUncontrolled
	KindAirTerminalVAVReheat
	KindAirTerminalSeriesPIU
	KindAirTerminalParallelPIU

	KindSetpointManagerSingleZoneReheat
	KindSetpointManagerOutdoorAirReset
	KindSetpointManagerScheduled
	KindSetpointManagerOutdoorAirPretreat

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown: "Unknown",

	KindFanConstantVolume: "Fan:ConstantVolume",
	KindFanVariableVolume: "Fan:VariableVolume",
	KindFanOnOff:          "Fan:OnOff",
	KindFanZoneExhaust:    "Fan:ZoneExhaust",

	KindCoilHeatingElectric:           "Coil:Heating:Electric",
	KindCoilHeatingGas:                "Coil:Heating:Gas",
	KindCoilHeatingGasMultiStage:      "Coil:Heating:Gas:MultiStage",
	KindCoilHeatingWater:              "Coil:Heating:Water",
	KindCoilHeatingWaterBaseboard:     "Coil:Heating:Water:Baseboard",
	KindCoilHeatingDXSingleSpeed:      "Coil:Heating:DX:SingleSpeed",
	KindCoilHeatingDXMultiSpeed:       "Coil:Heating:DX:MultiSpeed",
	KindCoilHeatingDXVariableSpeed:    "Coil:Heating:DX:VariableSpeed",
	KindCoilHeatingDesuperheater:      "Coil:Heating:Desuperheater",
	KindCoilHeatingWaterToAirHeatPump: "Coil:Heating:WaterToAirHeatPump:EquationFit",

	KindCoilCoolingDXSingleSpeed: "Coil:Cooling:DX:SingleSpeed",
	KindCoilCoolingDXTwoSpeed:    "Coil:Cooling:DX:TwoSpeed",
	KindCoilCoolingDXMultiSpeed:  "Coil:Cooling:DX:MultiSpeed",

	KindBoilerHotWater:          "Boiler:HotWater",
	KindChillerElectricEIR:      "Chiller:Electric:EIR",
	KindCoolingTowerSingleSpeed: "CoolingTower:SingleSpeed",
	KindPumpConstantSpeed:       "Pump:ConstantSpeed",
	KindPumpVariableSpeed:       "Pump:VariableSpeed",
	KindPipeAdiabatic:           "Pipe:Adiabatic",

	KindOutdoorAirSystem:      "AirLoopHVAC:OutdoorAirSystem",
	KindHeatExchangerAirToAir: "HeatExchanger:AirToAir:SensibleAndLatent",

	KindUnitaryHeatPumpAirToAir:           "AirLoopHVAC:UnitaryHeatPump:AirToAir",
	KindUnitaryHeatPumpAirToAirMultiSpeed: "AirLoopHVAC:UnitaryHeatPump:AirToAir:MultiSpeed",
	KindUnitarySystem:                     "AirLoopHVAC:UnitarySystem",

	KindPTAC:              "ZoneHVAC:PackagedTerminalAirConditioner",
	KindPTHP:              "ZoneHVAC:PackagedTerminalHeatPump",
	KindFourPipeFanCoil:   "ZoneHVAC:FourPipeFanCoil",
	KindBaseboardElectric: "ZoneHVAC:Baseboard:Convective:Electric",
	KindBaseboardWater:    "ZoneHVAC:Baseboard:Convective:Water",

	KindAirTerminalUncontrolled: "AirTerminal:SingleDuct:Uncontrolled",
	KindAirTerminalVAVReheat:    "AirTerminal:SingleDuct:VAV:Reheat",
	KindAirTerminalSeriesPIU:    "AirTerminal:SingleDuct:SeriesPIU:Reheat",
	KindAirTerminalParallelPIU:  "AirTerminal:SingleDuct:ParallelPIU:Reheat",

	KindSetpointManagerSingleZoneReheat:   "SetpointManager:SingleZone:Reheat",
	KindSetpointManagerOutdoorAirReset:    "SetpointManager:OutdoorAirReset",
	KindSetpointManagerScheduled:          "SetpointManager:Scheduled",
	KindSetpointManagerOutdoorAirPretreat: "SetpointManager:OutdoorAirPretreat",
}

func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindCount
}

// String returns the simulation object type, which is also the key used
// when querying sizing results.
func (k Kind) String() string {
	if !k.Valid() {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

func (k Kind) IsFan() bool {
	return k >= KindFanConstantVolume && k <= KindFanZoneExhaust
}

func (k Kind) IsHeatingCoil() bool {
	return k >= KindCoilHeatingElectric && k <= KindCoilHeatingWaterToAirHeatPump
}

func (k Kind) IsCoolingCoil() bool {
	return k >= KindCoilCoolingDXSingleSpeed && k <= KindCoilCoolingDXMultiSpeed
}

func (k Kind) IsDXHeatingCoil() bool {
	return k == KindCoilHeatingDXSingleSpeed || k == KindCoilHeatingDXMultiSpeed || k == KindCoilHeatingDXVariableSpeed
}

func (k Kind) IsUnitaryHeatPump() bool {
	return k == KindUnitaryHeatPumpAirToAir || k == KindUnitaryHeatPumpAirToAirMultiSpeed
}

func (k Kind) IsPIUTerminal() bool {
	return k == KindAirTerminalSeriesPIU || k == KindAirTerminalParallelPIU
}

func (k Kind) IsSetpointManager() bool {
	return k >= KindSetpointManagerSingleZoneReheat && k <= KindSetpointManagerOutdoorAirPretreat
}

// NonElectricHeating reports heating coil kinds that rate a packaged unit
// as "All Other" rather than "Electric Resistance or None".
func (k Kind) NonElectricHeating() bool {
	switch k {
	case KindCoilHeatingGas,
		KindCoilHeatingGasMultiStage,
		KindCoilHeatingWater,
		KindCoilHeatingDXSingleSpeed,
		KindCoilHeatingDXMultiSpeed,
		KindCoilHeatingDXVariableSpeed,
		KindCoilHeatingDesuperheater,
		KindCoilHeatingWaterToAirHeatPump:
		return true
	}
	return false
}
