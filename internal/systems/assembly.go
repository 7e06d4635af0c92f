package systems

import (
	"fmt"

	"github.com/Agrid-Dev/hvacstandards/internal/model"
)

// stage is the progress of one air loop through assembly.
type stage int

const (
	stageNone stage = iota
	stageCreated
	stagePopulated
	stageControlled
	stageZoneWired
)

func (s stage) String() string {
	switch s {
	case stageNone:
		return "none"
	case stageCreated:
		return "created"
	case stagePopulated:
		return "populated"
	case stageControlled:
		return "controlled"
	case stageZoneWired:
		return "zone wired"
	default:
		return "unknown"
	}
}

type assembly struct {
	stage   stage
	loop    *model.AirLoop
	zones   []*model.ThermalZone
	control *model.ThermalZone
}

// advance moves to the next stage. Stages cannot be skipped or repeated.
func (a *assembly) advance(to stage) error {
	if to != a.stage+1 || to > stageZoneWired {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, a.stage, to)
	}
	a.stage = to
	return nil
}
