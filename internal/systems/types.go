package systems

import "fmt"

// HeatingCoilType selects the central heating coil of a packaged system.
type HeatingCoilType int

const (
	HeatingCoilUnknown HeatingCoilType = iota
	HeatingCoilElectric
	HeatingCoilGas
	HeatingCoilDX
)

func (h HeatingCoilType) Valid() bool {
	return h == HeatingCoilElectric || h == HeatingCoilGas || h == HeatingCoilDX
}

func (h HeatingCoilType) String() string {
	switch h {
	case HeatingCoilElectric:
		return "Electric"
	case HeatingCoilGas:
		return "Gas"
	case HeatingCoilDX:
		return "DX"
	default:
		return "unknown"
	}
}

func ParseHeatingCoilType(s string) (HeatingCoilType, error) {
	switch s {
	case "Electric":
		return HeatingCoilElectric, nil
	case "Gas":
		return HeatingCoilGas, nil
	case "DX":
		return HeatingCoilDX, nil
	default:
		return HeatingCoilUnknown, fmt.Errorf("%w: %q", ErrInvalidHeatingCoilType, s)
	}
}

// BaseboardType selects the zone baseboards. BaseboardNone is a valid
// choice, unlike the zero value.
type BaseboardType int

const (
	BaseboardUnknown BaseboardType = iota
	BaseboardNone
	BaseboardElectric
	BaseboardHotWater
)

func (b BaseboardType) Valid() bool {
	return b == BaseboardNone || b == BaseboardElectric || b == BaseboardHotWater
}

func (b BaseboardType) String() string {
	switch b {
	case BaseboardNone:
		return "None"
	case BaseboardElectric:
		return "Electric"
	case BaseboardHotWater:
		return "Hot Water"
	default:
		return "unknown"
	}
}

func ParseBaseboardType(s string) (BaseboardType, error) {
	switch s {
	case "None", "":
		return BaseboardNone, nil
	case "Electric":
		return BaseboardElectric, nil
	case "Hot Water", "HotWater":
		return BaseboardHotWater, nil
	default:
		return BaseboardUnknown, fmt.Errorf("%w: %q", ErrInvalidBaseboardType, s)
	}
}
