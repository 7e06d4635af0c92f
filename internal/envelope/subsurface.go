// Package envelope holds the sub-surface rules: component infiltration and
// the window and door area reductions.
package envelope

import (
	"fmt"

	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// SubSurfaceType is the kind of a door, window or skylight.
type SubSurfaceType int

const (
	SubSurfaceUnknown SubSurfaceType = iota
	SubSurfaceDoor
	SubSurfaceGlassDoor
	SubSurfaceOverheadDoor
	SubSurfaceFixedWindow
	SubSurfaceOperableWindow
	SubSurfaceSkylight
	SubSurfaceTubularDaylightDome
	SubSurfaceTubularDaylightDiffuser
)

var subSurfaceNames = map[SubSurfaceType]string{
	SubSurfaceDoor:                    "Door",
	SubSurfaceGlassDoor:               "GlassDoor",
	SubSurfaceOverheadDoor:            "OverheadDoor",
	SubSurfaceFixedWindow:             "FixedWindow",
	SubSurfaceOperableWindow:          "OperableWindow",
	SubSurfaceSkylight:                "Skylight",
	SubSurfaceTubularDaylightDome:     "TubularDaylightDome",
	SubSurfaceTubularDaylightDiffuser: "TubularDaylightDiffuser",
}

func (t SubSurfaceType) Valid() bool {
	_, ok := subSurfaceNames[t]
	return ok
}

func (t SubSurfaceType) String() string {
	if n, ok := subSurfaceNames[t]; ok {
		return n
	}
	return "unknown"
}

func ParseSubSurfaceType(s string) (SubSurfaceType, error) {
	for t, n := range subSurfaceNames {
		if n == s {
			return t, nil
		}
	}
	return SubSurfaceUnknown, fmt.Errorf("%w: %q", ErrInvalidSubSurfaceType, s)
}

// InfiltrationCase selects the baseline or the advanced component
// infiltration rates.
type InfiltrationCase int

const (
	InfiltrationUnknown InfiltrationCase = iota
	InfiltrationBaseline
	InfiltrationAdvanced
)

func (c InfiltrationCase) String() string {
	switch c {
	case InfiltrationBaseline:
		return "baseline"
	case InfiltrationAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

func ParseInfiltrationCase(s string) (InfiltrationCase, error) {
	switch s {
	case "baseline":
		return InfiltrationBaseline, nil
	case "advanced":
		return InfiltrationAdvanced, nil
	default:
		return InfiltrationUnknown, fmt.Errorf("invalid infiltration case: %q", s)
	}
}

// component infiltration rates in cfm/ft2
var infiltrationRates = map[InfiltrationCase]map[SubSurfaceType]float64{
	InfiltrationBaseline: {
		SubSurfaceDoor:                    0.40,
		SubSurfaceOverheadDoor:            0.40,
		SubSurfaceGlassDoor:               1.0,
		SubSurfaceFixedWindow:             0.40,
		SubSurfaceOperableWindow:          0.40,
		SubSurfaceSkylight:                0.40,
		SubSurfaceTubularDaylightDome:     0.40,
		SubSurfaceTubularDaylightDiffuser: 0.40,
	},
	InfiltrationAdvanced: {
		SubSurfaceDoor:                    0.20,
		SubSurfaceOverheadDoor:            0.20,
		SubSurfaceGlassDoor:               1.0,
		SubSurfaceFixedWindow:             0.20,
		SubSurfaceOperableWindow:          0.20,
		SubSurfaceSkylight:                0.20,
		SubSurfaceTubularDaylightDome:     0.20,
		SubSurfaceTubularDaylightDiffuser: 0.20,
	},
}

// InfiltrationRatePerArea returns the component infiltration rate of t in
// cfm/ft2.
func InfiltrationRatePerArea(t SubSurfaceType, c InfiltrationCase) (float64, bool) {
	r, ok := infiltrationRates[c][t]
	return r, ok
}

// SubSurface is a door, window or skylight polygon.
type SubSurface struct {
	Name                     string
	Type                     SubSurfaceType
	OutsideBoundaryCondition string
	Vertices                 []Point
}

// NetArea returns the polygon area in m2.
func (s SubSurface) NetArea() float64 { return Area(s.Vertices) }

// ComponentInfiltrationRate returns the infiltration through sub in m3/s.
// Only sub-surfaces facing the outdoors leak. It reports false when the
// type has no rate.
func ComponentInfiltrationRate(sub SubSurface, c InfiltrationCase) (float64, bool) {
	if sub.OutsideBoundaryCondition != "Outdoors" {
		return 0, true
	}
	rate, ok := InfiltrationRatePerArea(sub.Type, c)
	if !ok {
		return 0, false
	}
	cfm := standards.M2ToFt2(sub.NetArea()) * rate
	return standards.CFMToM3s(cfm), true
}

// ReduceAreaByShrinking shrinks sub toward its centroid by fraction of its
// area.
func (s *SubSurface) ReduceAreaByShrinking(fraction float64) error {
	v, err := ShrinkTowardCentroid(s.Vertices, fraction)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	s.Vertices = v
	return nil
}

// ReduceAreaByRaisingSill raises the sill of sub to remove fraction of its
// area.
func (s *SubSurface) ReduceAreaByRaisingSill(fraction float64) error {
	v, err := RaiseSill(s.Vertices, fraction)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Name, err)
	}
	s.Vertices = v
	return nil
}
