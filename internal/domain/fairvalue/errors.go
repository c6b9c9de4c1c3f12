package fairvalue

import "errors"

// ErrInvalidInput is returned for an empty income path or a non-positive
// salary.
var ErrInvalidInput = errors.New("invalid fair value input")
