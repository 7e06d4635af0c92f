package staging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageCount(t *testing.T) {
	cases := []struct {
		total float64
		want  int
	}{
		{1000, 1},
		{99000, 2}, // 1.5 rounds up
		{98999, 1},
		{132000, 2},
		{200000, 3},
		{264000, 4},
		{2e6, 4},
		{0, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StageCount(tc.total, DefaultMaxStages, DefaultUnitStep), "total=%v", tc.total)
	}
}

func TestCapacitiesSingleStage(t *testing.T) {
	got, err := Capacities(50000, DefaultMaxStages, DefaultUnitStep)
	require.NoError(t, err)
	want := []float64{25000, 50000, 50000.1, 50000.2}
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}
}

func TestCapacitiesMultiStage(t *testing.T) {
	cases := []struct {
		total float64
		want  []float64
	}{
		{132000, []float64{66000, 132000, 132000.1, 132000.2}},
		{200000, []float64{66000, 132000, 198000, 198000.1}},
		{300000, []float64{66000, 132000, 198000, 264000}},
	}
	for _, tc := range cases {
		got, err := Capacities(tc.total, DefaultMaxStages, DefaultUnitStep)
		require.NoError(t, err)
		require.Len(t, got, len(tc.want))
		for i := range tc.want {
			assert.InDelta(t, tc.want[i], got[i], 1e-6, "total=%v stage=%d", tc.total, i)
		}
	}
}

func TestCapacitiesAlwaysStrictlyIncreasing(t *testing.T) {
	for total := 100.0; total < 1e6; total *= 1.37 {
		got, err := Capacities(total, DefaultMaxStages, DefaultUnitStep)
		require.NoError(t, err)
		require.Len(t, got, DefaultMaxStages)

		n := StageCount(total, DefaultMaxStages, DefaultUnitStep)
		assert.Equal(t, max(1, min(4, int(math.Round(total/66000)))), n)
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i], got[i-1], "total=%v", total)
		}
		assert.Greater(t, got[0], 0.0)
	}
}

func TestCapacitiesErrors(t *testing.T) {
	_, err := Capacities(1000, 1, DefaultUnitStep)
	assert.ErrorIs(t, err, ErrInvalidStageCount)
	_, err = Capacities(0, 4, DefaultUnitStep)
	assert.ErrorIs(t, err, ErrNonPositiveCapacity)
	_, err = Capacities(1000, 4, 0)
	assert.ErrorIs(t, err, ErrInvalidUnitStep)
}

func TestFlows(t *testing.T) {
	caps := []float64{25, 50, 50.1, 50.2}
	got := Flows(caps, 50, 2)
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 2.0, got[1], 1e-9)

	assert.Equal(t, []float64{0, 0, 0, 0}, Flows(caps, 0, 2))
}
