package systems

import "github.com/Agrid-Dev/hvacstandards/internal/model"

// SystemParameters is the sizing and control record of a system template.
// A nil field leaves the model default untouched.
type SystemParameters struct {
	Name string

	CentralCoolingDesignSupplyAirTemperature   *float64
	CentralHeatingDesignSupplyAirTemperature   *float64
	CentralCoolingDesignSupplyAirHumidityRatio *float64
	CentralHeatingDesignSupplyAirHumidityRatio *float64
	TypeOfLoadToSizeOn                         *string
	MinimumSystemAirFlowRatio                  *float64
	PreheatDesignTemperature                   *float64
	PreheatDesignHumidityRatio                 *float64
	PrecoolDesignTemperature                   *float64
	PrecoolDesignHumidityRatio                 *float64
	SizingOption                               *string
	AllOutdoorAirInCooling                     *bool
	AllOutdoorAirInHeating                     *bool
	CoolingDesignAirFlowMethod                 *string
	HeatingDesignAirFlowMethod                 *string
	SystemOutdoorAirMethod                     *string

	ZoneCoolingDesignSupplyAirTemperature *float64
	ZoneHeatingDesignSupplyAirTemperature *float64
	ZoneCoolingSizingFactor               *float64
	ZoneHeatingSizingFactor               *float64
	ZoneDXCoolingSizingFactor             *float64
	ZoneDXHeatingSizingFactor             *float64

	ReheatMinimumSupplyAirTemperature      *float64
	ReheatMaximumSupplyAirTemperature      *float64
	MinimumOutdoorTemperatureForCompressor *float64
}

func ptr[T any](v T) *T { return &v }

// Sys3Parameters returns the record of the single zone packaged rooftop
// system (systems 3 and 8).
func Sys3Parameters() SystemParameters {
	return SystemParameters{
		Name: "Sys_3_PSZ",

		CentralCoolingDesignSupplyAirTemperature:   ptr(13.0),
		CentralHeatingDesignSupplyAirTemperature:   ptr(43.0),
		CentralCoolingDesignSupplyAirHumidityRatio: ptr(0.0085),
		CentralHeatingDesignSupplyAirHumidityRatio: ptr(0.008),
		TypeOfLoadToSizeOn:                         ptr("Sensible"),
		MinimumSystemAirFlowRatio:                  ptr(1.0),
		PreheatDesignTemperature:                   ptr(7.0),
		PreheatDesignHumidityRatio:                 ptr(0.008),
		PrecoolDesignTemperature:                   ptr(13.0),
		PrecoolDesignHumidityRatio:                 ptr(0.008),
		SizingOption:                               ptr("NonCoincident"),
		AllOutdoorAirInCooling:                     ptr(false),
		AllOutdoorAirInHeating:                     ptr(false),
		CoolingDesignAirFlowMethod:                 ptr("DesignDay"),
		HeatingDesignAirFlowMethod:                 ptr("DesignDay"),
		SystemOutdoorAirMethod:                     ptr("ZoneSum"),

		ZoneCoolingDesignSupplyAirTemperature: ptr(13.0),
		ZoneHeatingDesignSupplyAirTemperature: ptr(43.0),
		ZoneCoolingSizingFactor:               ptr(1.1),
		ZoneHeatingSizingFactor:               ptr(1.3),
		ZoneDXCoolingSizingFactor:             ptr(1.0),
		ZoneDXHeatingSizingFactor:             ptr(1.3),

		ReheatMinimumSupplyAirTemperature:      ptr(13.0),
		ReheatMaximumSupplyAirTemperature:      ptr(43.0),
		MinimumOutdoorTemperatureForCompressor: ptr(-10.0),
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ApplyLoopSizing copies the non-nil central fields onto s.
func (p SystemParameters) ApplyLoopSizing(s *model.SizingSystem) {
	set(&s.CentralCoolingDesignSupplyAirTemperature, p.CentralCoolingDesignSupplyAirTemperature)
	set(&s.CentralHeatingDesignSupplyAirTemperature, p.CentralHeatingDesignSupplyAirTemperature)
	set(&s.CentralCoolingDesignSupplyAirHumidityRatio, p.CentralCoolingDesignSupplyAirHumidityRatio)
	set(&s.CentralHeatingDesignSupplyAirHumidityRatio, p.CentralHeatingDesignSupplyAirHumidityRatio)
	set(&s.TypeOfLoadToSizeOn, p.TypeOfLoadToSizeOn)
	set(&s.MinimumSystemAirFlowRatio, p.MinimumSystemAirFlowRatio)
	set(&s.PreheatDesignTemperature, p.PreheatDesignTemperature)
	set(&s.PreheatDesignHumidityRatio, p.PreheatDesignHumidityRatio)
	set(&s.PrecoolDesignTemperature, p.PrecoolDesignTemperature)
	set(&s.PrecoolDesignHumidityRatio, p.PrecoolDesignHumidityRatio)
	set(&s.SizingOption, p.SizingOption)
	set(&s.AllOutdoorAirInCooling, p.AllOutdoorAirInCooling)
	set(&s.AllOutdoorAirInHeating, p.AllOutdoorAirInHeating)
	set(&s.CoolingDesignAirFlowMethod, p.CoolingDesignAirFlowMethod)
	set(&s.HeatingDesignAirFlowMethod, p.HeatingDesignAirFlowMethod)
	set(&s.SystemOutdoorAirMethod, p.SystemOutdoorAirMethod)
}

// ApplyZoneSizing writes the zone supply temperatures and sizing factors.
// DX heated systems use the DX factors where they are set.
func (p SystemParameters) ApplyZoneSizing(s *model.SizingZone, dx bool) {
	set(&s.ZoneCoolingDesignSupplyAirTemperature, p.ZoneCoolingDesignSupplyAirTemperature)
	set(&s.ZoneHeatingDesignSupplyAirTemperature, p.ZoneHeatingDesignSupplyAirTemperature)
	set(&s.ZoneCoolingSizingFactor, p.ZoneCoolingSizingFactor)
	set(&s.ZoneHeatingSizingFactor, p.ZoneHeatingSizingFactor)
	if dx {
		set(&s.ZoneCoolingSizingFactor, p.ZoneDXCoolingSizingFactor)
		set(&s.ZoneHeatingSizingFactor, p.ZoneDXHeatingSizingFactor)
	}
}
