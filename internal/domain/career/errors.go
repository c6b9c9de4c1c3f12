package career

import "errors"

// ErrInvalidRange is returned when years or salaries are outside the
// supported bounds.
var ErrInvalidRange = errors.New("invalid range")
