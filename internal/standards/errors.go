package standards

import "errors"

var (
	ErrUnknownTable        = errors.New("unknown reference table")
	ErrUnknownFormat       = errors.New("unknown reference data format")
	ErrInvalidRange        = errors.New("invalid capacity range")
	ErrInvalidDate         = errors.New("invalid effective date range")
	ErrDuplicateEfficiency = errors.New("record carries more than one fuel efficiency field")
	ErrInvalidCurve        = errors.New("invalid curve definition")
	ErrInvalidEfficiency   = errors.New("chiller full load efficiency must be positive")
	ErrEmptyStandardID     = errors.New("standard id is required")
	ErrNilStore            = errors.New("reference data store is required")
)
