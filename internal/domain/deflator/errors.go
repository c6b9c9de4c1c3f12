package deflator

import "errors"

var (
	// ErrMissingBaseYear is returned when the price index has no level for the base year.
	ErrMissingBaseYear = errors.New("missing deflator base year")
	// ErrMissingYear marks a conversion that fell back to nominal dollars.
	ErrMissingYear = errors.New("missing deflator year")
)
