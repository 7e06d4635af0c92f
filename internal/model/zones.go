package model

import "slices"

// Schedule is reduced to what configuration needs: a default value and
// the design day profiles.
type Schedule struct {
	Name            string
	Default         float64
	WinterDesignDay []float64
	SummerDesignDay []float64
}

// WinterDesignDayMax returns the largest winter design day value.
func (s *Schedule) WinterDesignDayMax() Optional[float64] {
	if s == nil || len(s.WinterDesignDay) == 0 {
		return None[float64]()
	}
	return Some(slices.Max(s.WinterDesignDay))
}

type Thermostat struct {
	Name    string
	Heating *Schedule
	Cooling *Schedule
}

// DesignSpecificationOutdoorAir is the ventilation requirement of a space.
type DesignSpecificationOutdoorAir struct {
	Name                       string
	OutdoorAirFlowPerFloorArea float64 // m3/s-m2
}

type Space struct {
	Name       string
	FloorArea  float64 // m2
	OutdoorAir *DesignSpecificationOutdoorAir
}

// SizingZone holds the zone sizing knobs.
type SizingZone struct {
	ZoneCoolingDesignSupplyAirTemperature   float64
	ZoneHeatingDesignSupplyAirTemperature   float64
	ZoneCoolingDesignSupplyAirHumidityRatio float64
	ZoneHeatingDesignSupplyAirHumidityRatio float64
	ZoneCoolingSizingFactor                 float64
	ZoneHeatingSizingFactor                 float64
}

type ThermalZone struct {
	name string

	Multiplier int
	Thermostat *Thermostat
	Sizing     SizingZone
	// m3/s leaking through the doors, windows and skylights of the zone
	ComponentInfiltration float64

	spaces    []*Space
	equipment []Component
	airLoops  []*AirLoop
}

func NewThermalZone(name string, spaces ...*Space) *ThermalZone {
	return &ThermalZone{
		name:       name,
		Multiplier: 1,
		spaces:     spaces,
		Sizing: SizingZone{
			ZoneCoolingDesignSupplyAirTemperature:   14,
			ZoneHeatingDesignSupplyAirTemperature:   40,
			ZoneCoolingDesignSupplyAirHumidityRatio: 0.0085,
			ZoneHeatingDesignSupplyAirHumidityRatio: 0.008,
			ZoneCoolingSizingFactor:                 1,
			ZoneHeatingSizingFactor:                 1,
		},
	}
}

func (z *ThermalZone) Name() string { return z.name }

func (z *ThermalZone) AddSpace(s *Space) { z.spaces = append(z.spaces, s) }

func (z *ThermalZone) Spaces() []*Space { return append([]*Space(nil), z.spaces...) }

// FloorArea is the sum of space floor areas, not multiplied.
func (z *ThermalZone) FloorArea() float64 {
	var a float64
	for _, s := range z.spaces {
		a += s.FloorArea
	}
	return a
}

// EffectiveMultiplier treats an unset multiplier as 1.
func (z *ThermalZone) EffectiveMultiplier() float64 {
	if z.Multiplier < 1 {
		return 1
	}
	return float64(z.Multiplier)
}

// MultipliedFloorArea is FloorArea times the zone multiplier.
func (z *ThermalZone) MultipliedFloorArea() float64 {
	return z.FloorArea() * z.EffectiveMultiplier()
}

// AddEquipment attaches zone equipment such as baseboards or a PTAC.
func (z *ThermalZone) AddEquipment(c Component) {
	c.object().zone = z
	z.equipment = append(z.equipment, c)
}

func (z *ThermalZone) Equipment() []Component {
	return append([]Component(nil), z.equipment...)
}

func (z *ThermalZone) AirLoops() []*AirLoop {
	return append([]*AirLoop(nil), z.airLoops...)
}
