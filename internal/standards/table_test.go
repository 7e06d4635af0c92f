package standards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(idx int, app map[string]string, lo, hi float64) *Record {
	return &Record{
		Table:         "t",
		Index:         idx,
		Applicability: app,
		Capacity:      &Range{Min: lo, Max: hi},
		Payload:       map[string]float64{},
		Curves:        map[string]string{},
	}
}

func TestFindBestMatch_MostSpecificWins(t *testing.T) {
	a := rec(0, map[string]string{"fuel_type": "Gas", "subcategory": Wildcard}, 0, 100000)
	b := rec(1, map[string]string{"fuel_type": "Gas", "subcategory": "Single Package"}, 0, 100000)
	tbl := &Table{Name: "t", Records: []*Record{a, b}}

	key := SearchKey{"fuel_type": "Gas", "subcategory": "Single Package"}
	got, ok := tbl.FindBestMatch(key, 50000)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestFindBestMatch_MissingFieldActsAsWildcard(t *testing.T) {
	a := rec(0, map[string]string{"fuel_type": "Gas"}, 0, 100)
	tbl := &Table{Name: "t", Records: []*Record{a}}

	got, ok := tbl.FindBestMatch(SearchKey{"fuel_type": "Gas", "heating_type": "All Other"}, 10)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = tbl.FindBestMatch(SearchKey{"fuel_type": "Oil"}, 10)
	assert.False(t, ok)
}

func TestFindBestMatch_RangeBounds(t *testing.T) {
	a := rec(0, map[string]string{"fuel_type": "Gas"}, 0, 100)
	tbl := &Table{Name: "t", Records: []*Record{a}}
	key := SearchKey{"fuel_type": "Gas"}

	cases := []struct {
		name   string
		sizing float64
		want   bool
	}{
		{"lower bound inclusive", 0, true},
		{"just below upper", 99.999, true},
		{"upper bound exclusive", 100, false},
		{"below lowest clamps", -5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tbl.FindBestMatch(key, tc.sizing)
			assert.Equal(t, tc.want, ok)
			if tc.want {
				assert.Same(t, a, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFindBestMatch_ClampsToLowestRange(t *testing.T) {
	low := rec(0, nil, 10, 20)
	high := rec(1, nil, 20, 30)
	tbl := &Table{Name: "t", Records: []*Record{high, low}}

	got, ok := tbl.FindBestMatch(SearchKey{}, 0.001)
	require.True(t, ok)
	assert.Same(t, low, got)
}

func TestFindBestMatch_TieGoesToFirstInTable(t *testing.T) {
	first := rec(0, map[string]string{"fuel_type": "Gas"}, 0, 100)
	second := rec(1, map[string]string{"fuel_type": "Gas"}, 0, 100)
	tbl := &Table{Name: "t", Records: []*Record{first, second}}

	for range 3 {
		got, ok := tbl.FindBestMatch(SearchKey{"fuel_type": "Gas"}, 50)
		require.True(t, ok)
		assert.Same(t, first, got)
	}
}

func TestFindBestMatch_NoRows(t *testing.T) {
	tbl := &Table{Name: "t"}
	got, ok := tbl.FindBestMatch(SearchKey{"template": "X"}, 1)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFindBestMatch_AsOf(t *testing.T) {
	cutover := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	old := rec(0, nil, 0, 100)
	old.Effective = &DateRange{To: cutover}
	next := rec(1, nil, 0, 100)
	next.Effective = &DateRange{From: cutover}
	tbl := &Table{Name: "t", Records: []*Record{old, next}}

	got, _ := tbl.FindBestMatch(SearchKey{}, 10, AsOf(cutover.AddDate(0, 0, -1)))
	assert.Same(t, old, got)

	got, _ = tbl.FindBestMatch(SearchKey{}, 10, AsOf(cutover))
	assert.Same(t, next, got)

	// without a date both survive and the first wins
	got, _ = tbl.FindBestMatch(SearchKey{}, 10)
	assert.Same(t, old, got)
}

func TestFindBestMatch_UnboundedCapacity(t *testing.T) {
	r := &Record{Table: "t", Applicability: map[string]string{"type": "Enclosed"}}
	tbl := &Table{Name: "t", Records: []*Record{r}}

	got, ok := tbl.FindBestMatch(SearchKey{"type": "Enclosed"}, 1e9)
	require.True(t, ok)
	assert.Same(t, r, got)
}

func TestSearchKey(t *testing.T) {
	k := NewSearchKey("NECB2011").
		Set(FieldFuelType, "Gas").
		Set(FieldHeatingType, "All Other")
	assert.Equal(t, "{fuel_type=Gas, heating_type=All Other, template=NECB2011}", k.String())

	k.Set(FieldHeatingType, "")
	_, ok := k.Get(FieldHeatingType)
	assert.False(t, ok)

	c := k.Clone().Delete(FieldFuelType)
	assert.Len(t, c, 1)
	assert.Len(t, k, 2)
}

func TestRecordFuelEfficiencyPrecedence(t *testing.T) {
	r := &Record{Payload: map[string]float64{FieldAFUE: 0.8, FieldCombustionEfficiency: 0.82}}
	v, unit, ok := r.FuelEfficiency()
	require.True(t, ok)
	assert.Equal(t, EfficiencyCombustion, unit)
	assert.Equal(t, 0.82, v)

	r.Payload[FieldThermalEfficiency] = 0.81
	_, unit, _ = r.FuelEfficiency()
	assert.Equal(t, EfficiencyThermal, unit)

	_, _, ok = (&Record{}).FuelEfficiency()
	assert.False(t, ok)
}
