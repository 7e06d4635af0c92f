package model

import "strings"

// LegacyTags are capability tags recovered from an object's name. Models
// built by older tooling encode these only in names; new code sets the
// explicit fields instead.
type LegacyTags struct {
	Subcategory       Subcategory
	Role              EquipmentRole
	FanDuty           FanDuty
	Minisplit         bool
	ChillerCondenser  string
	ChillerCompressor string
}

// LegacyTagsFromName is the only place where names are inspected to infer
// equipment capabilities.
func LegacyTagsFromName(name string) LegacyTags {
	var t LegacyTags

	switch {
	case strings.Contains(name, "Single Package"):
		t.Subcategory = SubcategorySinglePackage
	case strings.Contains(name, "Split System"), strings.Contains(name, "Minisplit"):
		t.Subcategory = SubcategorySplitSystem
	case strings.Contains(name, "CRAC"):
		t.Subcategory = SubcategoryCRAC
	}
	t.Minisplit = strings.Contains(name, "Minisplit")

	switch {
	case strings.Contains(name, "Primary"):
		t.Role = RolePrimary
	case strings.Contains(name, "Secondary"):
		t.Role = RoleSecondary
	}

	switch {
	case strings.Contains(name, "Supply"):
		t.FanDuty = FanDutySupply
	case strings.Contains(name, "Return"):
		t.FanDuty = FanDutyReturn
	}

	switch {
	case strings.Contains(name, "AirCooled"):
		if strings.Contains(name, "WithoutCondenser") {
			t.ChillerCondenser = "WithoutCondenser"
		} else if strings.Contains(name, "WithCondenser") {
			t.ChillerCondenser = "WithCondenser"
		}
	case strings.Contains(name, "WaterCooled"):
		for _, c := range []string{"Reciprocating", "Rotary Screw", "Scroll", "Centrifugal"} {
			if strings.Contains(name, c) {
				t.ChillerCompressor = c
				break
			}
		}
	}
	return t
}
