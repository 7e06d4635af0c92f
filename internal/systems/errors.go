package systems

import "errors"

var (
	ErrInvalidHeatingCoilType = errors.New("invalid heating coil type")
	ErrInvalidBaseboardType   = errors.New("invalid baseboard type")
	ErrMissingHotWaterLoop    = errors.New("hot water baseboards need a hot water loop")
	ErrNoZones                = errors.New("system serves no zones")
	ErrInvalidTransition      = errors.New("invalid assembly transition")
)
