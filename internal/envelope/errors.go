package envelope

import "errors"

var (
	ErrInvalidSubSurfaceType = errors.New("invalid sub-surface type")
	ErrInvalidFraction       = errors.New("area reduction must be in [0, 1)")
)
