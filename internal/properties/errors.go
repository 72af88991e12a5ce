package properties

import "errors"

var (
	ErrNameRequired        = errors.New("Property name is required")
	ErrInvalidPropertyType = errors.New("Invalid property type (must be shop, flat or plot)")
	ErrNegativeAmount      = errors.New("Charge amounts cannot be negative")
	ErrPropertyNotFound    = errors.New("Property not found")
	ErrReadingBelowLast    = errors.New("Meter reading cannot be below the last recorded unit")
)
