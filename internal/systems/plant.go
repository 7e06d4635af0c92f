package systems

import "github.com/Agrid-Dev/hvacstandards/internal/model"

// Loop temperatures, in degrees C.
const (
	hotWaterExitTemperature       = 82.0
	hotWaterDeltaT                = 16.0
	chilledWaterExitTemperature   = 7.0
	chilledWaterDeltaT            = 6.0
	condenserWaterExitTemperature = 29.0
	condenserWaterDeltaT          = 6.0
)

// SetupHotWaterLoop turns loop into a boiler plant with a variable speed
// pump, a primary and a secondary boiler burning fuel, and an outdoor air
// reset of the supply temperature.
func SetupHotWaterLoop(m *model.Model, loop *model.PlantLoop, fuel string) [2]*model.Boiler {
	loop.Sizing = model.SizingPlant{
		LoopType:                        "Heating",
		DesignLoopExitTemperature:       hotWaterExitTemperature,
		LoopDesignTemperatureDifference: hotWaterDeltaT,
	}
	loop.AddToSupplyInlet(model.Add(m, model.NewPump(loop.Name()+" Supply Pump", true)))

	primary := model.Add(m, model.NewBoiler("Primary Boiler", fuel))
	primary.Role = model.RolePrimary
	secondary := model.Add(m, model.NewBoiler("Secondary Boiler", fuel))
	secondary.Role = model.RoleSecondary
	loop.AddSupplyBranch(primary)
	loop.AddSupplyBranch(secondary)
	addBypassAndOutlet(m, loop)

	reset := model.Add(m, model.NewSetpointManager(model.KindSetpointManagerOutdoorAirReset, loop.Name()+" Setpoint Manager"))
	reset.SetpointAtOutdoorLowTemperature = hotWaterExitTemperature
	reset.OutdoorLowTemperature = -16
	reset.SetpointAtOutdoorHighTemperature = 60
	reset.OutdoorHighTemperature = 0
	loop.AddSetpointManagerToSupplyOutlet(reset)

	return [2]*model.Boiler{primary, secondary}
}

// SetupChilledWaterLoop turns loop into a water cooled chiller plant with
// a constant speed pump and a fixed 7 C supply setpoint.
func SetupChilledWaterLoop(m *model.Model, loop *model.PlantLoop, compressor string) [2]*model.Chiller {
	loop.Sizing = model.SizingPlant{
		LoopType:                        "Cooling",
		DesignLoopExitTemperature:       chilledWaterExitTemperature,
		LoopDesignTemperatureDifference: chilledWaterDeltaT,
	}
	loop.AddToSupplyInlet(model.Add(m, model.NewPump(loop.Name()+" Supply Pump", false)))

	var chillers [2]*model.Chiller
	for i, role := range []model.EquipmentRole{model.RolePrimary, model.RoleSecondary} {
		prefix := "Primary"
		if role == model.RoleSecondary {
			prefix = "Secondary"
		}
		c := model.Add(m, model.NewChiller(prefix+" Chiller WaterCooled "+compressor, "WaterCooled"))
		c.Role = role
		c.CompressorType = compressor
		loop.AddSupplyBranch(c)
		chillers[i] = c
	}
	addBypassAndOutlet(m, loop)
	addScheduledSetpoint(m, loop, "CHW Temp", chilledWaterExitTemperature)
	return chillers
}

// SetupCondenserWaterLoop turns loop into a cooling tower loop serving the
// condensers of chillers.
func SetupCondenserWaterLoop(m *model.Model, loop *model.PlantLoop, chillers ...*model.Chiller) *model.CoolingTower {
	loop.Sizing = model.SizingPlant{
		LoopType:                        "Condenser",
		DesignLoopExitTemperature:       condenserWaterExitTemperature,
		LoopDesignTemperatureDifference: condenserWaterDeltaT,
	}
	loop.AddToSupplyInlet(model.Add(m, model.NewPump(loop.Name()+" Supply Pump", false)))

	tower := model.Add(m, model.NewCoolingTower(loop.Name()+" Cooling Tower"))
	tower.DesignInletAirWetBulb = 24
	tower.DesignInletAirDryBulb = 35
	tower.DesignApproach = 5
	tower.DesignRange = 6
	loop.AddSupplyBranch(tower)
	addBypassAndOutlet(m, loop)

	for _, c := range chillers {
		loop.AddDemandBranch(c)
	}
	addScheduledSetpoint(m, loop, "CW Temp", condenserWaterExitTemperature)
	return tower
}

func addBypassAndOutlet(m *model.Model, loop *model.PlantLoop) {
	loop.AddSupplyBranch(model.Add(m, model.NewPipe(loop.Name()+" Supply Bypass Pipe")))
	loop.AddToSupplyOutlet(model.Add(m, model.NewPipe(loop.Name()+" Supply Outlet Pipe")))
}

func addScheduledSetpoint(m *model.Model, loop *model.PlantLoop, schedule string, v float64) {
	spm := model.Add(m, model.NewSetpointManager(model.KindSetpointManagerScheduled, loop.Name()+" Setpoint Manager"))
	spm.Schedule = m.Schedule(schedule, v)
	loop.AddSetpointManagerToSupplyOutlet(spm)
}
