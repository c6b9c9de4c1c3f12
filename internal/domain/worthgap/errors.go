package worthgap

import "errors"

var (
	// ErrInvalidWage is returned for a non-positive or non-finite current wage.
	ErrInvalidWage = errors.New("current wage must be positive")
	// ErrInvalidFrequency is returned for an unknown pay frequency.
	ErrInvalidFrequency = errors.New("invalid pay frequency")
	// ErrInvalidExperience is returned for negative experience or a start year in the future.
	ErrInvalidExperience = errors.New("invalid experience")
)
