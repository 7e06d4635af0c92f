package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/testutil"
)

func newTestAssembler(t *testing.T) (*Assembler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	std := testutil.NewStandard(t, zap.New(core))
	return New(std), logs
}

func addZone(m *model.Model, name string, area float64, multiplier int) *model.ThermalZone {
	z := m.AddThermalZone(model.NewThermalZone(name, &model.Space{Name: name + " Space", FloorArea: area}))
	z.Multiplier = multiplier
	return z
}

func kinds(cs []model.Component) []model.Kind {
	out := make([]model.Kind, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Kind())
	}
	return out
}

func TestSys3SupplyOrder(t *testing.T) {
	a, _ := newTestAssembler(t)
	m := model.New("test")
	z := addZone(m, "Zone 1", 50, 1)

	loops, err := a.AddSys3And8SingleSpeed(m, SingleZoneSystem{
		Zones:           []*model.ThermalZone{z},
		HeatingCoilType: HeatingCoilGas,
		BaseboardType:   BaseboardNone,
	})
	require.NoError(t, err)
	require.Len(t, loops, 1)
	loop := loops[0]

	assert.Equal(t, "Sys_3_PSZ Zone 1", loop.Name())
	assert.Equal(t, []model.Kind{
		model.KindOutdoorAirSystem,
		model.KindCoilCoolingDXSingleSpeed,
		model.KindCoilHeatingGas,
		model.KindFanConstantVolume,
	}, kinds(loop.SupplyComponents()))

	assert.Equal(t, 13.0, loop.Sizing.CentralCoolingDesignSupplyAirTemperature)
	assert.Equal(t, 43.0, loop.Sizing.CentralHeatingDesignSupplyAirTemperature)
	assert.Equal(t, 1.0, loop.Sizing.MinimumSystemAirFlowRatio)
	assert.Equal(t, 13.0, loop.Sizing.PrecoolDesignTemperature)

	spms := loop.SupplyOutletSetpointManagers()
	require.Len(t, spms, 1)
	assert.Equal(t, model.KindSetpointManagerSingleZoneReheat, spms[0].Kind())
	assert.Same(t, z, spms[0].ControlZone)
	assert.Equal(t, 13.0, spms[0].MinimumSupplyAirTemperature)
	assert.Equal(t, 43.0, spms[0].MaximumSupplyAirTemperature)

	assert.Equal(t, 1.1, z.Sizing.ZoneCoolingSizingFactor)
	assert.Equal(t, 1.3, z.Sizing.ZoneHeatingSizingFactor)
	assert.Equal(t, 13.0, z.Sizing.ZoneCoolingDesignSupplyAirTemperature)
	assert.Equal(t, 43.0, z.Sizing.ZoneHeatingDesignSupplyAirTemperature)

	terminals := loop.Terminals()
	require.Len(t, terminals, 1)
	assert.Equal(t, model.KindAirTerminalUncontrolled, terminals[0].Kind())
	zone, ok := model.ZoneOf(terminals[0]).Get()
	require.True(t, ok)
	assert.Same(t, z, zone)
	assert.Equal(t, []*model.AirLoop{loop}, z.AirLoops())
	assert.Empty(t, z.Equipment())
}

func TestSys3HeatPump(t *testing.T) {
	a, _ := newTestAssembler(t)
	m := model.New("test")
	z := addZone(m, "Zone 1", 50, 1)

	loops, err := a.AddSys3And8SingleSpeed(m, SingleZoneSystem{
		Zones:           []*model.ThermalZone{z},
		HeatingCoilType: HeatingCoilDX,
		BaseboardType:   BaseboardElectric,
	})
	require.NoError(t, err)
	supply := loops[0].SupplyComponents()
	require.Equal(t, []model.Kind{model.KindOutdoorAirSystem, model.KindUnitaryHeatPumpAirToAir}, kinds(supply))

	hp := supply[1].(*model.UnitaryHeatPump)
	assert.Equal(t, "Zone 1 ASHP", hp.Name())
	assert.Same(t, z, hp.ControllingZone)
	assert.Equal(t, model.KindFanOnOff, hp.Fan.Kind())
	assert.Equal(t, model.KindCoilHeatingElectric, hp.SupplementalHeatingCoil.Kind())
	assert.Equal(t, -10.0, hp.HeatingCoil.MinimumOutdoorTemperatureForCompressor.OrElse(0))

	container, ok := model.ContainingHVAC(hp.CoolingCoil).Get()
	require.True(t, ok)
	assert.Same(t, hp, container)

	assert.Equal(t, 1.0, z.Sizing.ZoneCoolingSizingFactor)
	assert.Equal(t, 1.3, z.Sizing.ZoneHeatingSizingFactor)

	require.Len(t, z.Equipment(), 1)
	assert.Equal(t, model.KindBaseboardElectric, z.Equipment()[0].Kind())
}

func TestSys3InvalidSystemLeavesModelUntouched(t *testing.T) {
	tests := []struct {
		name string
		sys  func(z *model.ThermalZone) SingleZoneSystem
		want error
	}{
		{
			name: "heating coil",
			sys: func(z *model.ThermalZone) SingleZoneSystem {
				return SingleZoneSystem{Zones: []*model.ThermalZone{z}, BaseboardType: BaseboardNone}
			},
			want: ErrInvalidHeatingCoilType,
		},
		{
			name: "baseboard",
			sys: func(z *model.ThermalZone) SingleZoneSystem {
				return SingleZoneSystem{Zones: []*model.ThermalZone{z}, HeatingCoilType: HeatingCoilElectric}
			},
			want: ErrInvalidBaseboardType,
		},
		{
			name: "no zones",
			sys: func(*model.ThermalZone) SingleZoneSystem {
				return SingleZoneSystem{HeatingCoilType: HeatingCoilElectric, BaseboardType: BaseboardNone}
			},
			want: ErrNoZones,
		},
		{
			name: "hot water without loop",
			sys: func(z *model.ThermalZone) SingleZoneSystem {
				return SingleZoneSystem{Zones: []*model.ThermalZone{z}, HeatingCoilType: HeatingCoilElectric, BaseboardType: BaseboardHotWater}
			},
			want: ErrMissingHotWaterLoop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAssembler(t)
			m := model.New("test")
			z := addZone(m, "Zone 1", 50, 1)

			loops, err := a.AddSys3And8SingleSpeed(m, tt.sys(z))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, loops)
			assert.Empty(t, m.Components())
			assert.Empty(t, m.AirLoops())
			assert.Empty(t, z.AirLoops())
		})
	}
}

func TestSys3AutoZoner(t *testing.T) {
	a, _ := newTestAssembler(t)
	m := model.New("test")
	z1 := addZone(m, "Zone 1", 50, 1)
	z2 := addZone(m, "Zone 2", 30, 3)

	loops, err := a.AddSys3And8SingleSpeed(m, SingleZoneSystem{
		Zones:           []*model.ThermalZone{z1, z2},
		HeatingCoilType: HeatingCoilElectric,
		BaseboardType:   BaseboardNone,
		AutoZoner:       true,
	})
	require.NoError(t, err)
	require.Len(t, loops, 1)
	loop := loops[0]
	assert.Equal(t, "Sys_3_PSZ Zone 2", loop.Name())
	assert.Equal(t, []*model.ThermalZone{z1, z2}, loop.ThermalZones())
	assert.Len(t, loop.Terminals(), 2)
	assert.Same(t, z2, loop.SupplyOutletSetpointManagers()[0].ControlZone)
	assert.Equal(t, 1.1, z1.Sizing.ZoneCoolingSizingFactor)
}

func TestSys3LoopPerZone(t *testing.T) {
	a, logs := newTestAssembler(t)
	m := model.New("test")
	z1 := addZone(m, "Zone 1", 50, 1)
	z2 := addZone(m, "Zone 2", 30, 1)

	loops, err := a.AddSys3And8SingleSpeed(m, SingleZoneSystem{
		Zones:           []*model.ThermalZone{z1, z2},
		HeatingCoilType: HeatingCoilElectric,
		BaseboardType:   BaseboardNone,
	})
	require.NoError(t, err)
	require.Len(t, loops, 2)
	assert.Equal(t, "Sys_3_PSZ Zone 1", loops[0].Name())
	assert.Equal(t, "Sys_3_PSZ Zone 2", loops[1].Name())
	assert.Equal(t, []*model.ThermalZone{z2}, loops[1].ThermalZones())
	assert.Equal(t, 2, logs.FilterMessage("air loop assembled").Len())
}

func TestControlZone(t *testing.T) {
	m := model.New("test")
	z1 := addZone(m, "Zone 1", 60, 1)
	z2 := addZone(m, "Zone 2", 30, 2)
	z3 := addZone(m, "Zone 3", 40, 1)

	assert.Same(t, z1, ControlZone([]*model.ThermalZone{z1, z2, z3}))
	assert.Same(t, z2, ControlZone([]*model.ThermalZone{z2, z1, z3}))
	assert.Nil(t, ControlZone(nil))
}

func TestSys3HotWaterBaseboards(t *testing.T) {
	a, _ := newTestAssembler(t)
	m := model.New("test")
	z := addZone(m, "Zone 1", 50, 1)
	hw := m.AddPlantLoop("Hot Water Loop")
	SetupHotWaterLoop(m, hw, "NaturalGas")

	_, err := a.AddSys3And8SingleSpeed(m, SingleZoneSystem{
		Zones:           []*model.ThermalZone{z},
		HeatingCoilType: HeatingCoilElectric,
		BaseboardType:   BaseboardHotWater,
		HotWaterLoop:    hw,
	})
	require.NoError(t, err)

	require.Len(t, z.Equipment(), 1)
	b := z.Equipment()[0].(*model.Baseboard)
	assert.Equal(t, model.KindBaseboardWater, b.Kind())
	demand, ok := model.DemandLoopOf(b.Coil).Get()
	require.True(t, ok)
	assert.Same(t, hw, demand)
	assert.Equal(t, []model.Component{b.Coil}, hw.DemandComponents())
}

func TestAddZoneBaseboards(t *testing.T) {
	m := model.New("test")
	z := addZone(m, "Zone 1", 50, 1)

	require.NoError(t, AddZoneBaseboards(m, z, BaseboardNone, nil))
	assert.Empty(t, z.Equipment())

	require.NoError(t, AddZoneBaseboards(m, z, BaseboardElectric, nil))
	require.Len(t, z.Equipment(), 1)
	b := z.Equipment()[0].(*model.Baseboard)
	assert.Equal(t, "Zone 1 Electric Baseboard", b.Name())
	assert.Same(t, m.AlwaysOn(), b.Availability)
	assert.Nil(t, b.Coil)

	assert.ErrorIs(t, AddZoneBaseboards(m, z, BaseboardHotWater, nil), ErrMissingHotWaterLoop)
	assert.ErrorIs(t, AddZoneBaseboards(m, z, BaseboardUnknown, nil), ErrInvalidBaseboardType)
	assert.Len(t, z.Equipment(), 1)
}

func TestSetupHotWaterLoop(t *testing.T) {
	m := model.New("test")
	loop := m.AddPlantLoop("Hot Water Loop")
	boilers := SetupHotWaterLoop(m, loop, "NaturalGas")

	assert.Equal(t, model.SizingPlant{LoopType: "Heating", DesignLoopExitTemperature: 82, LoopDesignTemperatureDifference: 16}, loop.Sizing)
	assert.Equal(t, []model.Kind{
		model.KindPumpVariableSpeed,
		model.KindBoilerHotWater,
		model.KindBoilerHotWater,
		model.KindPipeAdiabatic,
		model.KindPipeAdiabatic,
	}, kinds(loop.SupplyComponents()))

	assert.Equal(t, "Primary Boiler", boilers[0].Name())
	assert.Equal(t, model.RolePrimary, boilers[0].Role)
	assert.Equal(t, "Secondary Boiler", boilers[1].Name())
	assert.Equal(t, model.RoleSecondary, boilers[1].Role)
	assert.Equal(t, "NaturalGas", boilers[1].FuelType)

	spms := loop.SupplyOutletSetpointManagers()
	require.Len(t, spms, 1)
	assert.Equal(t, model.KindSetpointManagerOutdoorAirReset, spms[0].Kind())
	assert.Equal(t, 82.0, spms[0].SetpointAtOutdoorLowTemperature)
	assert.Equal(t, -16.0, spms[0].OutdoorLowTemperature)
	assert.Equal(t, 60.0, spms[0].SetpointAtOutdoorHighTemperature)
	assert.Equal(t, 0.0, spms[0].OutdoorHighTemperature)
}

func TestChillerPlantLoops(t *testing.T) {
	m := model.New("test")
	chw := m.AddPlantLoop("Chilled Water Loop")
	chillers := SetupChilledWaterLoop(m, chw, "Centrifugal")

	assert.Equal(t, model.SizingPlant{LoopType: "Cooling", DesignLoopExitTemperature: 7, LoopDesignTemperatureDifference: 6}, chw.Sizing)
	assert.Equal(t, model.KindPumpConstantSpeed, chw.SupplyComponents()[0].Kind())
	assert.Equal(t, "Primary Chiller WaterCooled Centrifugal", chillers[0].Name())
	assert.Equal(t, "Secondary Chiller WaterCooled Centrifugal", chillers[1].Name())
	assert.Equal(t, model.RoleSecondary, chillers[1].Role)
	assert.Equal(t, "Centrifugal", chillers[0].CompressorType)
	supply, ok := model.PlantLoopOf(chillers[0]).Get()
	require.True(t, ok)
	assert.Same(t, chw, supply)

	chwSPM := chw.SupplyOutletSetpointManagers()[0]
	assert.Equal(t, model.KindSetpointManagerScheduled, chwSPM.Kind())
	assert.Equal(t, "CHW Temp", chwSPM.Schedule.Name)
	assert.Equal(t, 7.0, chwSPM.Schedule.Default)

	cw := m.AddPlantLoop("Condenser Water Loop")
	tower := SetupCondenserWaterLoop(m, cw, chillers[0], chillers[1])

	assert.Equal(t, model.SizingPlant{LoopType: "Condenser", DesignLoopExitTemperature: 29, LoopDesignTemperatureDifference: 6}, cw.Sizing)
	assert.Equal(t, 24.0, tower.DesignInletAirWetBulb)
	assert.Equal(t, 35.0, tower.DesignInletAirDryBulb)
	assert.Equal(t, 5.0, tower.DesignApproach)
	assert.Equal(t, 6.0, tower.DesignRange)
	assert.Equal(t, []model.Kind{model.KindCoolingTowerSingleSpeed, model.KindPipeAdiabatic}, kinds(cw.SupplyBranches()))
	assert.Same(t, tower, cw.SupplyBranches()[0])
	assert.Equal(t, []model.Component{chillers[0], chillers[1]}, cw.DemandComponents())

	demand, ok := model.DemandLoopOf(chillers[1]).Get()
	require.True(t, ok)
	assert.Same(t, cw, demand)
	assert.Equal(t, 29.0, cw.SupplyOutletSetpointManagers()[0].Schedule.Default)
}

func TestAddPTACDXCooling(t *testing.T) {
	a, _ := newTestAssembler(t)
	m := model.New("test", model.WithCurveSource(a.std.Store()))
	z := addZone(m, "Zone 1", 50, 1)

	units := a.AddPTACDXCooling(m, []*model.ThermalZone{z}, true)
	require.Len(t, units, 1)
	u := units[0]

	assert.Equal(t, "Zone 1 PTAC", u.Name())
	assert.Equal(t, model.KindPTAC, u.Kind())
	assert.Same(t, m.AlwaysOff(), u.HeatingCoil.Availability)
	assert.Equal(t, model.KindCoilHeatingElectric, u.HeatingCoil.Kind())
	assert.Equal(t, 640.0, u.Fan.PressureRise)
	assert.Equal(t, model.SubcategoryPTAC, u.CoolingCoil.Subcategory)
	assert.Equal(t, 1e-5, u.OutdoorAirFlowRateDuringCooling.OrElse(0))
	assert.Equal(t, 1e-5, u.OutdoorAirFlowRateDuringHeating.OrElse(0))
	assert.Equal(t, 1e-5, u.OutdoorAirFlowRateWhenNoCoolingOrHeatingIsNeeded.OrElse(0))

	curves := u.CoolingCoil.Curves
	for name, c := range map[string]*model.Curve{
		"DXCOOL-NECB2011-REF-CAPFT":        curves.CapacityFT,
		"DXCOOL-NECB2011-REF-CAPFFLOW":     curves.CapacityFFlow,
		"DXCOOL-NECB2011-REF-COOLEIRFT":    curves.EIRFT,
		"DXCOOL-NECB2011-REF-COOLEIRFFLOW": curves.EIRFFlow,
		"DXCOOL-NECB2011-REF-COOLPLFFPLR":  curves.PartLoadFractionFPLR,
	} {
		if assert.NotNil(t, c, name) {
			assert.Equal(t, name, c.Name)
		}
	}

	container, ok := model.ContainingZoneHVAC(u.CoolingCoil).Get()
	require.True(t, ok)
	assert.Same(t, u, container)
	assert.Equal(t, []model.Component{u}, z.Equipment())
}

func TestAddPTACKeepsOutdoorAir(t *testing.T) {
	a, logs := newTestAssembler(t)
	m := model.New("test")
	z := addZone(m, "Zone 1", 50, 1)

	u := a.AddPTACDXCooling(m, []*model.ThermalZone{z}, false)[0]
	assert.False(t, u.OutdoorAirFlowRateDuringCooling.IsSet())

	// a model without a curve source misses every reference curve
	assert.Nil(t, u.CoolingCoil.Curves.CapacityFT)
	assert.Equal(t, 5, logs.FilterMessage("curve not found").Len())
}

func TestAssemblyTransitions(t *testing.T) {
	as := &assembly{}
	require.NoError(t, as.advance(stageCreated))

	err := as.advance(stageControlled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.EqualError(t, err, "invalid assembly transition: created to controlled")
	assert.ErrorIs(t, as.advance(stageCreated), ErrInvalidTransition)
	assert.Equal(t, stageCreated, as.stage)

	require.NoError(t, as.advance(stagePopulated))
	require.NoError(t, as.advance(stageControlled))
	require.NoError(t, as.advance(stageZoneWired))
	assert.ErrorIs(t, as.advance(stageZoneWired+1), ErrInvalidTransition)
}

func TestParseTypes(t *testing.T) {
	for in, want := range map[string]HeatingCoilType{
		"Electric": HeatingCoilElectric,
		"Gas":      HeatingCoilGas,
		"DX":       HeatingCoilDX,
	} {
		got, err := ParseHeatingCoilType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, in, got.String())
	}
	_, err := ParseHeatingCoilType("Steam")
	assert.ErrorIs(t, err, ErrInvalidHeatingCoilType)

	for in, want := range map[string]BaseboardType{
		"":          BaseboardNone,
		"None":      BaseboardNone,
		"Electric":  BaseboardElectric,
		"HotWater":  BaseboardHotWater,
		"Hot Water": BaseboardHotWater,
	} {
		got, err := ParseBaseboardType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ParseBaseboardType("Radiant")
	assert.ErrorIs(t, err, ErrInvalidBaseboardType)
}

func TestParametersLeaveUnsetFields(t *testing.T) {
	p := SystemParameters{CentralHeatingDesignSupplyAirTemperature: ptr(40.0)}
	s := model.SizingSystem{MinimumSystemAirFlowRatio: 0.3, CentralHeatingDesignSupplyAirTemperature: 16.7}
	p.ApplyLoopSizing(&s)
	assert.Equal(t, 40.0, s.CentralHeatingDesignSupplyAirTemperature)
	assert.Equal(t, 0.3, s.MinimumSystemAirFlowRatio)

	z := model.SizingZone{ZoneCoolingSizingFactor: 1, ZoneHeatingSizingFactor: 1}
	Sys3Parameters().ApplyZoneSizing(&z, false)
	assert.Equal(t, 1.1, z.ZoneCoolingSizingFactor)
	Sys3Parameters().ApplyZoneSizing(&z, true)
	assert.Equal(t, 1.0, z.ZoneCoolingSizingFactor)
	assert.Equal(t, 1.3, z.ZoneHeatingSizingFactor)
}
