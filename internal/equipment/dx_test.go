package equipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
	"github.com/Agrid-Dev/hvacstandards/internal/standards"
	"github.com/Agrid-Dev/hvacstandards/internal/testutil"
)

func loopCoil(m *model.Model, capacityW float64, withGas bool) *model.CoolingCoil {
	loop := m.AddAirLoop("Sys")
	c := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "Clg")
	c.RatedTotalCapacity = model.Some(capacityW)
	loop.AddToSupplyInlet(c)
	if withGas {
		loop.AddToSupplyInlet(model.NewHeatingCoil(model.KindCoilHeatingGas, "Htg"))
	}
	return c
}

func assertCoolingCurves(t *testing.T, cc model.CoolingCurves) {
	t.Helper()
	for name, c := range map[string]*model.Curve{
		"DXCOOL-NECB2011-REF-CAPFT":        cc.CapacityFT,
		"DXCOOL-NECB2011-REF-CAPFFLOW":     cc.CapacityFFlow,
		"DXCOOL-NECB2011-REF-COOLEIRFT":    cc.EIRFT,
		"DXCOOL-NECB2011-REF-COOLEIRFFLOW": cc.EIRFFlow,
		"DXCOOL-NECB2011-REF-COOLPLFFPLR":  cc.PartLoadFractionFPLR,
	} {
		if assert.NotNil(t, c, name) {
			assert.Equal(t, name, c.Name)
		}
	}
}

func TestDXCoilSmallUnitBySEER(t *testing.T) {
	a, m, _ := newTestApplier(t, nil)
	c := loopCoil(m, 10000, false)

	require.True(t, a.ApplyDXCoil(c))
	assert.InDelta(t, standards.SEERToCOP(13), c.RatedCOP, 1e-9)
	assert.Equal(t, "Clg 34kBtu/hr 13SEER", c.Name())
	assertCoolingCurves(t, c.Curves)
}

func TestDXCoilFollowsEffectiveDate(t *testing.T) {
	later := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	std, err := standards.New("NECB2011", testutil.NewTestStore(t),
		standards.WithClock(func() time.Time { return later }))
	require.NoError(t, err)
	m := model.New("test", model.WithCurveSource(std.Store()))
	c := loopCoil(m, 10000, false)

	require.True(t, New(std, m, nil).ApplyDXCoil(c))
	assert.InDelta(t, standards.SEERToCOP(14), c.RatedCOP, 1e-9)
	assert.Equal(t, "Clg 34kBtu/hr 14SEER", c.Name())
}

func TestDXCoilWithGasHeatByEER(t *testing.T) {
	a, m, _ := newTestApplier(t, nil)
	c := loopCoil(m, 20000, true)

	require.True(t, a.ApplyDXCoil(c))
	assert.InDelta(t, standards.EERToCOP(11), c.RatedCOP, 1e-9)
	assert.Equal(t, "Clg 68kBtu/hr 11EER", c.Name())
}

func TestDXCoilRenameIsIdempotent(t *testing.T) {
	a, m, _ := newTestApplier(t, nil)
	c := loopCoil(m, 10000, false)

	require.True(t, a.ApplyDXCoil(c))
	first := c.Name()
	require.True(t, a.ApplyDXCoil(c))
	assert.Equal(t, first, c.Name())
}

func TestMultiSpeedCoilIsStaged(t *testing.T) {
	a, m, _ := newTestApplier(t, nil)
	loop := m.AddAirLoop("Sys")
	c := model.NewCoolingCoil(model.KindCoilCoolingDXMultiSpeed, "Staged Clg")
	last := c.Stages[3]
	last.GrossRatedTotalCoolingCapacity = model.Some(200000.0)
	last.RatedAirFlowRate = model.Some(10.0)
	loop.AddToSupplyInlet(c)

	require.True(t, a.ApplyDXCoil(c))

	wantCap := []float64{66000, 132000, 198000, 198000.1}
	wantFlow := []float64{3.3, 6.6, 9.9, 9.900005}
	for i, s := range c.Stages {
		assert.InDelta(t, wantCap[i], s.GrossRatedTotalCoolingCapacity.OrElse(0), 1e-6, "stage %d", i+1)
		assert.InDelta(t, wantFlow[i], s.RatedAirFlowRate.OrElse(0), 1e-9, "stage %d", i+1)
		assert.InDelta(t, standards.EERToCOP(10), s.GrossRatedCOP, 1e-9)
		assertCoolingCurves(t, s.Curves)
	}
	assert.Equal(t, "Staged Clg 682kBtu/hr 10EER", c.Name())
}

func TestMultiSpeedCoilWithoutFlowIsPartial(t *testing.T) {
	a, m, logs := newTestApplier(t, nil)
	loop := m.AddAirLoop("Sys")
	c := model.NewCoolingCoil(model.KindCoilCoolingDXMultiSpeed, "Staged Clg")
	c.Stages[3].GrossRatedTotalCoolingCapacity = model.Some(200000.0)
	loop.AddToSupplyInlet(c)

	assert.False(t, a.ApplyDXCoil(c))
	assert.False(t, c.Stages[0].RatedAirFlowRate.IsSet())
	assert.InDelta(t, 66000, c.Stages[0].GrossRatedTotalCoolingCapacity.OrElse(0), 1e-9)
	assert.InDelta(t, standards.EERToCOP(10), c.RatedCOP, 1e-9)
	assert.Equal(t, 1, logs.FilterMessage("sizing data not available").Len())
}

func TestMultiSpeedCoilLookupMissKeepsStages(t *testing.T) {
	a, m, logs := newTestApplier(t, nil)
	loop := m.AddAirLoop("Sys")
	c := model.NewCoolingCoil(model.KindCoilCoolingDXMultiSpeed, "Staged Clg")
	c.CondenserType = "EvaporativelyCooled"
	c.Stages[3].GrossRatedTotalCoolingCapacity = model.Some(200000.0)
	c.Stages[3].RatedAirFlowRate = model.Some(10.0)
	loop.AddToSupplyInlet(c)

	assert.False(t, a.ApplyDXCoil(c))
	assert.Equal(t, 1, logs.FilterMessage("no reference record matches").Len())
	for _, s := range c.Stages[:3] {
		assert.False(t, s.GrossRatedTotalCoolingCapacity.IsSet())
		assert.False(t, s.RatedAirFlowRate.IsSet())
	}
	assert.Equal(t, 200000.0, c.Stages[3].GrossRatedTotalCoolingCapacity.OrElse(0))
	assert.Equal(t, 10.0, c.Stages[3].RatedAirFlowRate.OrElse(0))
}

func TestPTACCoefficients(t *testing.T) {
	a, _, _ := newTestApplier(t, nil)
	clg := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "PTAC Clg")
	clg.RatedTotalCapacity = model.Some(3000.0)
	htg := model.NewHeatingCoil(model.KindCoilHeatingElectric, "PTAC Htg")
	model.NewPackagedTerminalUnit("PTAC", false, model.NewFan(model.KindFanConstantVolume, "PTAC Fan"), htg, clg)

	require.True(t, a.ApplyDXCoil(clg))
	eer := 13.8 - 0.0003*standards.WToBtuPerHour(3000)
	assert.InDelta(t, standards.EERToCOP(eer), clg.RatedCOP, 1e-9)
	assert.Equal(t, "PTAC Clg 10kBtu/hr 10.729EER", clg.Name())
}

func TestPTACCoefficientsClampCapacity(t *testing.T) {
	a, _, _ := newTestApplier(t, nil)
	clg := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "PTAC Clg")
	clg.RatedTotalCapacity = model.Some(1000.0)
	model.NewPackagedTerminalUnit("PTAC", false, nil, nil, clg)

	require.True(t, a.ApplyDXCoil(clg))
	assert.InDelta(t, standards.EERToCOP(13.8-0.0003*7000), clg.RatedCOP, 1e-9)
}

func TestUnitaryHeatPumpCoils(t *testing.T) {
	a, _, _ := newTestApplier(t, nil)
	clg := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "HP Clg")
	clg.RatedTotalCapacity = model.Some(15000.0)
	htg := model.NewHeatingCoil(model.KindCoilHeatingDXSingleSpeed, "HP Htg")
	supp := model.NewHeatingCoil(model.KindCoilHeatingElectric, "HP Supp")
	model.NewUnitaryHeatPump("HP", false, model.NewFan(model.KindFanOnOff, "HP Fan"), htg, clg, supp)

	require.True(t, a.ApplyDXCoil(clg))
	assert.InDelta(t, standards.SEERToCOP(13), clg.RatedCOP, 1e-9)
	assert.Equal(t, "HP Clg 51kBtu/hr 13SEER", clg.Name())

	ok, err := a.Apply(htg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, standards.HSPFToCOP(7.7), htg.RatedCOP, 1e-9)
	assert.Equal(t, "HP Htg 51kBtu/hr 7.7HSPF", htg.Name())
}

func TestPTHPHeatingCoefficients(t *testing.T) {
	a, _, _ := newTestApplier(t, nil)
	clg := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "PTHP Clg")
	clg.RatedTotalCapacity = model.Some(3000.0)
	htg := model.NewHeatingCoil(model.KindCoilHeatingDXSingleSpeed, "PTHP Htg")
	model.NewPackagedTerminalUnit("PTHP", true, nil, htg, clg)

	require.True(t, a.ApplyDXCoil(clg))
	assert.InDelta(t, standards.EERToCOP(14.0-0.0003*standards.WToBtuPerHour(3000)), clg.RatedCOP, 1e-9)

	require.True(t, a.ApplyDXHeatingCoil(htg))
	assert.InDelta(t, 2.9-0.000026*standards.WToBtuPerHour(3000), htg.RatedCOP, 1e-9)
	assert.Equal(t, "PTHP Htg 10kBtu/hr 2.634COP", htg.Name())
}

func TestDXHeatingCoilAutosizedFromCoolingCoil(t *testing.T) {
	results := testutil.NewFakeSizingResults()
	results.Set("HP Clg", "Gross Rated Total Cooling Capacity", 40000)
	a, _, _ := newTestApplier(t, results)

	clg := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "HP Clg")
	htg := model.NewHeatingCoil(model.KindCoilHeatingDXSingleSpeed, "HP Htg")
	model.NewUnitaryHeatPump("HP", false, nil, htg, clg, nil)

	// 40 kW is 136 kBtu/hr
	require.True(t, a.ApplyDXHeatingCoil(htg))
	assert.Equal(t, 3.2, htg.RatedCOP)
	assert.Equal(t, "HP Htg 136kBtu/hr 3.2COP", htg.Name())
}

func TestDXCoilWithoutCapacity(t *testing.T) {
	a, m, logs := newTestApplier(t, nil)
	loop := m.AddAirLoop("Sys")
	c := model.NewCoolingCoil(model.KindCoilCoolingDXSingleSpeed, "Clg")
	loop.AddToSupplyInlet(c)

	assert.False(t, a.ApplyDXCoil(c))
	assert.Equal(t, "Clg", c.Name())
	assert.Equal(t, 3.0, c.RatedCOP)
	assert.Equal(t, 1, logs.FilterMessage("sizing data not available").Len())
}
