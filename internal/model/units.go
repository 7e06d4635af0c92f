package model

// UnitaryHeatPump is an air-to-air heat pump assembly on an air loop.
type UnitaryHeatPump struct {
	Object

	Fan                     *Fan
	HeatingCoil             *HeatingCoil
	CoolingCoil             *CoolingCoil
	SupplementalHeatingCoil *HeatingCoil
	ControllingZone         *ThermalZone

	MaximumSupplyAirTemperature                     float64
	MaximumOutdoorDryBulbForSupplementalHeater      float64
	SupplyAirFlowRateDuringCooling                  Optional[float64]
	SupplyAirFlowRateDuringHeating                  Optional[float64]
	SupplyAirFlowRateWhenNoCoolingOrHeatingIsNeeded Optional[float64]
}

// NewUnitaryHeatPump wires the four members into the assembly. multiSpeed
// selects the multi-speed variant.
func NewUnitaryHeatPump(name string, multiSpeed bool, fan *Fan, heating *HeatingCoil, cooling *CoolingCoil, supplemental *HeatingCoil) *UnitaryHeatPump {
	kind := KindUnitaryHeatPumpAirToAir
	if multiSpeed {
		kind = KindUnitaryHeatPumpAirToAirMultiSpeed
	}
	u := &UnitaryHeatPump{
		Object:                                     newObject(kind, name),
		Fan:                                        fan,
		HeatingCoil:                                heating,
		CoolingCoil:                                cooling,
		SupplementalHeatingCoil:                    supplemental,
		MaximumSupplyAirTemperature:                50,
		MaximumOutdoorDryBulbForSupplementalHeater: 21,
	}
	setContainer(u, fan, heating, cooling, supplemental)
	return u
}

// UnitarySystem is the generic unitary assembly. Minisplit marks ductless
// split equipment.
type UnitarySystem struct {
	Object

	Minisplit   bool
	Fan         *Fan
	HeatingCoil *HeatingCoil
	CoolingCoil *CoolingCoil
}

func NewUnitarySystem(name string, fan *Fan, heating *HeatingCoil, cooling *CoolingCoil) *UnitarySystem {
	u := &UnitarySystem{Object: newObject(KindUnitarySystem, name), Fan: fan, HeatingCoil: heating, CoolingCoil: cooling}
	setContainer(u, fan, heating, cooling)
	return u
}

func (u *UnitarySystem) IsMinisplit() bool {
	return u.Minisplit || LegacyTagsFromName(u.Name()).Minisplit
}

// PackagedTerminalUnit is a PTAC or PTHP.
type PackagedTerminalUnit struct {
	Object

	Availability *Schedule
	Fan          *Fan
	HeatingCoil  *HeatingCoil
	CoolingCoil  *CoolingCoil

	SupplyAirFlowRateWhenNoCoolingOrHeatingIsNeeded  Optional[float64]
	OutdoorAirFlowRateDuringCooling                  Optional[float64]
	OutdoorAirFlowRateDuringHeating                  Optional[float64]
	OutdoorAirFlowRateWhenNoCoolingOrHeatingIsNeeded Optional[float64]
}

// NewPackagedTerminalUnit builds a PTHP when heatPump is true, else a PTAC.
func NewPackagedTerminalUnit(name string, heatPump bool, fan *Fan, heating *HeatingCoil, cooling *CoolingCoil) *PackagedTerminalUnit {
	kind := KindPTAC
	if heatPump {
		kind = KindPTHP
	}
	u := &PackagedTerminalUnit{Object: newObject(kind, name), Fan: fan, HeatingCoil: heating, CoolingCoil: cooling}
	setZoneContainer(u, fan, heating, cooling)
	return u
}

type FourPipeFanCoil struct {
	Object

	Fan         *Fan
	HeatingCoil *HeatingCoil
	CoolingCoil *CoolingCoil
}

func NewFourPipeFanCoil(name string, fan *Fan, heating *HeatingCoil, cooling *CoolingCoil) *FourPipeFanCoil {
	u := &FourPipeFanCoil{Object: newObject(KindFourPipeFanCoil, name), Fan: fan, HeatingCoil: heating, CoolingCoil: cooling}
	setZoneContainer(u, fan, heating, cooling)
	return u
}

// Baseboard is a convective baseboard. Water baseboards carry a coil on
// the hot water loop demand side.
type Baseboard struct {
	Object

	Coil         *HeatingCoil
	Availability *Schedule
}

func NewBaseboard(name string, water bool) *Baseboard {
	if !water {
		return &Baseboard{Object: newObject(KindBaseboardElectric, name)}
	}
	b := &Baseboard{Object: newObject(KindBaseboardWater, name)}
	b.Coil = NewHeatingCoil(KindCoilHeatingWaterBaseboard, name+" Coil")
	setZoneContainer(b, b.Coil)
	return b
}
