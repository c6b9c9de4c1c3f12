package negotiation

import "errors"

// ErrInvalidInput is returned when salaries are not positive or tenure is negative.
var ErrInvalidInput = errors.New("invalid negotiation input")
