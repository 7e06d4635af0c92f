package standards

import (
	"fmt"
	"time"
)

// Wildcard in an applicability field matches any search value.
const Wildcard = "*"

// Range is a half-open numeric interval [Min, Max).
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// DateRange is a half-open interval [From, To). A zero bound is open.
type DateRange struct {
	From, To time.Time
}

func (d DateRange) Contains(t time.Time) bool {
	if !d.From.IsZero() && t.Before(d.From) {
		return false
	}
	if !d.To.IsZero() && !t.Before(d.To) {
		return false
	}
	return true
}

// Record is one immutable row of a reference table.
type Record struct {
	Table         string
	Index         int
	Applicability map[string]string
	Capacity      *Range
	Effective     *DateRange
	Payload       map[string]float64
	Curves        map[string]string
}

// ID identifies the record as table[index].
func (r *Record) ID() string {
	return fmt.Sprintf("%s[%d]", r.Table, r.Index)
}

func (r *Record) Value(name string) (float64, bool) {
	v, ok := r.Payload[name]
	return v, ok
}

func (r *Record) Curve(role string) (string, bool) {
	v, ok := r.Curves[role]
	return v, ok && v != ""
}

// matches reports whether every key field is satisfied and how many were
// satisfied by an exact, non-wildcard value.
func (r *Record) matches(key SearchKey) (bool, int) {
	specific := 0
	for f, want := range key {
		have, ok := r.Applicability[f]
		if !ok || have == Wildcard {
			continue
		}
		if have != want {
			return false, 0
		}
		specific++
	}
	return true, specific
}

// Fuel efficiency payload fields. A well-formed record carries at most one.
const (
	FieldAFUE                 = "minimum_annual_fuel_utilization_efficiency"
	FieldThermalEfficiency    = "minimum_thermal_efficiency"
	FieldCombustionEfficiency = "minimum_combustion_efficiency"
)

// EfficiencyUnit names the metric a fuel efficiency was published in.
type EfficiencyUnit int

const (
	EfficiencyNone EfficiencyUnit = iota
	EfficiencyThermal
	EfficiencyCombustion
	EfficiencyAFUE
)

// Label is the suffix used in rated equipment names.
func (u EfficiencyUnit) Label() string {
	switch u {
	case EfficiencyThermal:
		return " Thermal Eff"
	case EfficiencyCombustion:
		return " Combustion Eff"
	case EfficiencyAFUE:
		return " AFUE"
	default:
		return ""
	}
}

func (u EfficiencyUnit) String() string {
	switch u {
	case EfficiencyThermal:
		return "thermal"
	case EfficiencyCombustion:
		return "combustion"
	case EfficiencyAFUE:
		return "afue"
	default:
		return "none"
	}
}

// FuelEfficiency returns the published fuel efficiency of r. If a record
// somehow holds several, thermal wins over combustion over AFUE.
func (r *Record) FuelEfficiency() (float64, EfficiencyUnit, bool) {
	if v, ok := r.Payload[FieldThermalEfficiency]; ok {
		return v, EfficiencyThermal, true
	}
	if v, ok := r.Payload[FieldCombustionEfficiency]; ok {
		return v, EfficiencyCombustion, true
	}
	if v, ok := r.Payload[FieldAFUE]; ok {
		return v, EfficiencyAFUE, true
	}
	return 0, EfficiencyNone, false
}

func (r *Record) efficiencyFieldCount() int {
	n := 0
	for _, f := range []string{FieldAFUE, FieldThermalEfficiency, FieldCombustionEfficiency} {
		if _, ok := r.Payload[f]; ok {
			n++
		}
	}
	return n
}
