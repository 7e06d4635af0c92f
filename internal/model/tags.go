package model

import "fmt"

// Subcategory is the rating subcategory of packaged DX equipment.
type Subcategory string

const (
	SubcategoryUnset         Subcategory = ""
	SubcategorySinglePackage Subcategory = "Single Package"
	SubcategorySplitSystem   Subcategory = "Split System"
	SubcategoryCRAC          Subcategory = "CRAC"
	SubcategoryPTAC          Subcategory = "PTAC"
	SubcategoryPTHP          Subcategory = "PTHP"
)

func (s Subcategory) Valid() bool {
	switch s {
	case SubcategorySinglePackage, SubcategorySplitSystem, SubcategoryCRAC, SubcategoryPTAC, SubcategoryPTHP:
		return true
	}
	return false
}

// EquipmentRole marks the lead/lag position of plant equipment that is
// installed in pairs.
type EquipmentRole int

const (
	RoleUnset EquipmentRole = iota
	RolePrimary
	RoleSecondary
)

func (r EquipmentRole) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "unset"
	}
}

func ParseEquipmentRole(s string) (EquipmentRole, error) {
	switch s {
	case "primary":
		return RolePrimary, nil
	case "secondary":
		return RoleSecondary, nil
	case "", "unset":
		return RoleUnset, nil
	default:
		return RoleUnset, fmt.Errorf("invalid equipment role: %q", s)
	}
}

// FanDuty distinguishes supply from return fans for motor selection.
type FanDuty int

const (
	FanDutyUnset FanDuty = iota
	FanDutySupply
	FanDutyReturn
)

func (d FanDuty) String() string {
	switch d {
	case FanDutySupply:
		return "supply"
	case FanDutyReturn:
		return "return"
	default:
		return "unset"
	}
}
